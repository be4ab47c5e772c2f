package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerSuite struct {
	suite.Suite
	env *testEnv
}

func (s *AuthHandlerSuite) SetupTest() {
	s.env = newTestEnv()
}

func (s *AuthHandlerSuite) TearDownTest() {
	s.env.db.Close()
}

func TestAuthHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) TestRegister() {
	recorder := s.env.request(http.MethodPost, "/auth/register", "", gin.H{
		"email":        "frodo@shire.me",
		"password":     "precious1",
		"display_name": "Frodo",
	})

	Expect(recorder.Code).To(Equal(http.StatusCreated))

	envelope := decodeEnvelope(recorder)
	Expect(envelope["success"]).To(BeTrue())

	data := dataField(envelope)
	Expect(data["email"]).To(Equal("frodo@shire.me"))
	Expect(data["display_name"]).To(Equal("Frodo"))
	Expect(data["id"]).ToNot(BeEmpty())
	Expect(data).ToNot(HaveKey("password"))
	Expect(data).ToNot(HaveKey("encrypted_password"))
}

func (s *AuthHandlerSuite) TestRegisterDuplicateEmail() {
	payload := gin.H{
		"email":        "frodo@shire.me",
		"password":     "precious1",
		"display_name": "Frodo",
	}

	recorder := s.env.request(http.MethodPost, "/auth/register", "", payload)
	Expect(recorder.Code).To(Equal(http.StatusCreated))

	recorder = s.env.request(http.MethodPost, "/auth/register", "", payload)

	Expect(recorder.Code).To(Equal(http.StatusBadRequest))
	Expect(errorCode(decodeEnvelope(recorder))).To(Equal("DUPLICATE_EMAIL"))
}

func (s *AuthHandlerSuite) TestRegisterValidation() {
	recorder := s.env.request(http.MethodPost, "/auth/register", "", gin.H{
		"email":        "not-an-email",
		"password":     "123",
		"display_name": "",
	})

	Expect(recorder.Code).To(Equal(http.StatusBadRequest))

	envelope := decodeEnvelope(recorder)
	Expect(envelope["success"]).To(BeFalse())
	Expect(errorCode(envelope)).To(Equal("VALIDATION_ERROR"))
}

func (s *AuthHandlerSuite) TestLogin() {
	token := s.env.registerUser("frodo@shire.me")

	Expect(token).ToNot(BeEmpty())

	claims, err := s.env.tokens.VerifyToken(token)
	Expect(err).ToNot(HaveOccurred())
	Expect(claims.Email).To(Equal("frodo@shire.me"))
}

func (s *AuthHandlerSuite) TestLoginWrongPassword() {
	s.env.registerUser("frodo@shire.me")

	recorder := s.env.request(http.MethodPost, "/auth/login", "", gin.H{
		"email":    "frodo@shire.me",
		"password": "wrong1234",
	})

	Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
	Expect(errorCode(decodeEnvelope(recorder))).To(Equal("INVALID_CREDENTIALS"))
}

func (s *AuthHandlerSuite) TestLoginLockout() {
	s.env.registerUser("frodo@shire.me")

	wrong := gin.H{"email": "frodo@shire.me", "password": "wrong1234"}

	for i := 0; i < 2; i++ {
		recorder := s.env.request(http.MethodPost, "/auth/login", "", wrong)
		Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
	}

	// Third failure locks the account.
	recorder := s.env.request(http.MethodPost, "/auth/login", "", wrong)
	Expect(recorder.Code).To(Equal(http.StatusLocked))
	Expect(errorCode(decodeEnvelope(recorder))).To(Equal("ACCOUNT_LOCKED"))

	// Correct credentials no longer help.
	recorder = s.env.request(http.MethodPost, "/auth/login", "", gin.H{
		"email":    "frodo@shire.me",
		"password": "secret123",
	})
	Expect(recorder.Code).To(Equal(http.StatusLocked))
}

func (s *AuthHandlerSuite) TestProfileFlow() {
	token := s.env.registerUser("frodo@shire.me")

	recorder := s.env.request(http.MethodGet, "/profile", token, nil)
	Expect(recorder.Code).To(Equal(http.StatusOK))
	Expect(dataField(decodeEnvelope(recorder))["email"]).To(Equal("frodo@shire.me"))

	recorder = s.env.request(http.MethodPatch, "/profile", token, gin.H{
		"display_name": "Mr. Underhill",
	})
	Expect(recorder.Code).To(Equal(http.StatusOK))
	Expect(dataField(decodeEnvelope(recorder))["display_name"]).To(Equal("Mr. Underhill"))
}

func (s *AuthHandlerSuite) TestChangePassword() {
	token := s.env.registerUser("frodo@shire.me")

	recorder := s.env.request(http.MethodPatch, "/profile/password", token, gin.H{
		"old_password": "wrong-old",
		"new_password": "newsecret1",
	})
	Expect(recorder.Code).To(Equal(http.StatusBadRequest))
	Expect(errorCode(decodeEnvelope(recorder))).To(Equal("WRONG_PASSWORD"))

	recorder = s.env.request(http.MethodPatch, "/profile/password", token, gin.H{
		"old_password": "secret123",
		"new_password": "newsecret1",
	})
	Expect(recorder.Code).To(Equal(http.StatusOK))

	// The old token still authenticates until it expires.
	recorder = s.env.request(http.MethodGet, "/profile", token, nil)
	Expect(recorder.Code).To(Equal(http.StatusOK))

	recorder = s.env.request(http.MethodPost, "/auth/login", "", gin.H{
		"email":    "frodo@shire.me",
		"password": "newsecret1",
	})
	Expect(recorder.Code).To(Equal(http.StatusOK))
}
