package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"

	"taskhub/internal/adapter/database/sqlite"
	"taskhub/internal/adapter/database/sqlite/repository"
	"taskhub/internal/adapter/http/middleware"
	"taskhub/internal/core/service"
	"taskhub/pkg/auth"
	"taskhub/pkg/logging"
	"taskhub/pkg/test"
)

const testSecret = "handler-test-secret"

// testEnv wires handlers to a real sqlite database through the same
// routes the server mounts, without importing the router package.
type testEnv struct {
	db     *sqlite.DB
	router *gin.Engine
	tokens *auth.TokenManager
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	db := test.InitTestDB()

	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	lists := repository.NewListRepository(db)

	tokens := auth.NewTokenManager(testSecret, time.Hour)
	authSvc := service.NewAuthService(users, service.DefaultLockThreshold)
	userSvc := service.NewUserService(users)
	taskSvc := service.NewTaskService(tasks, lists)
	listSvc := service.NewListService(lists)

	authHandler := NewAuthHandler(authSvc, tokens)
	userHandler := NewUserHandler(userSvc, authSvc)
	taskHandler := NewTaskHandler(taskSvc, logging.NewNop(), nil)
	listHandler := NewListHandler(listSvc, nil)

	router := gin.New()

	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)

	protected := router.Group("/", middleware.AuthMiddleware(tokens))
	protected.GET("/profile", userHandler.GetProfile)
	protected.PATCH("/profile", userHandler.UpdateProfile)
	protected.PATCH("/profile/password", userHandler.ChangePassword)
	protected.POST("/tasks", taskHandler.Create)
	protected.GET("/tasks", taskHandler.List)
	protected.GET("/tasks/:id", taskHandler.Get)
	protected.PATCH("/tasks/:id", taskHandler.Update)
	protected.DELETE("/tasks/:id", taskHandler.Delete)
	protected.GET("/tasks/:id/history", taskHandler.History)
	protected.GET("/search", taskHandler.Search)
	protected.POST("/lists", listHandler.Create)
	protected.GET("/lists", listHandler.List)
	protected.PATCH("/lists/:id", listHandler.Update)
	protected.DELETE("/lists/:id", listHandler.Delete)

	return &testEnv{db: db, router: router, tokens: tokens}
}

func (e *testEnv) request(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		Expect(err).ToNot(HaveOccurred())

		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)

	return recorder
}

// registerUser runs the real register/login flow and returns a usable
// bearer token.
func (e *testEnv) registerUser(email string) string {
	recorder := e.request(http.MethodPost, "/auth/register", "", gin.H{
		"email":        email,
		"password":     "secret123",
		"display_name": "Frodo",
	})

	Expect(recorder.Code).To(Equal(http.StatusCreated))

	recorder = e.request(http.MethodPost, "/auth/login", "", gin.H{
		"email":    email,
		"password": "secret123",
	})

	Expect(recorder.Code).To(Equal(http.StatusOK))

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}

	Expect(json.Unmarshal(recorder.Body.Bytes(), &envelope)).To(Succeed())
	Expect(envelope.Data.Token).ToNot(BeEmpty())

	return envelope.Data.Token
}

func decodeEnvelope(recorder *httptest.ResponseRecorder) map[string]any {
	var envelope map[string]any

	Expect(json.Unmarshal(recorder.Body.Bytes(), &envelope)).To(Succeed())

	return envelope
}

func errorCode(envelope map[string]any) string {
	errBody, ok := envelope["error"].(map[string]any)

	if !ok {
		return ""
	}

	code, _ := errBody["code"].(string)

	return code
}

func dataField(envelope map[string]any) map[string]any {
	data, _ := envelope["data"].(map[string]any)

	return data
}
