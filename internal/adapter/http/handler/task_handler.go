package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"taskhub/internal/adapter/http/helper"
	"taskhub/internal/adapter/http/middleware"
	"taskhub/internal/adapter/http/validation"
	"taskhub/internal/core/model/request"
	"taskhub/internal/core/model/response"
	"taskhub/internal/core/port"
	"taskhub/internal/core/util"
	"taskhub/pkg/logging"
	"taskhub/pkg/metrics"
	"taskhub/pkg/tracing"
)

type TaskHandler struct {
	svc     port.TaskService
	logger  *logging.AppLogger
	metrics *metrics.AppMetrics
}

func NewTaskHandler(svc port.TaskService, logger *logging.AppLogger, appMetrics *metrics.AppMetrics) *TaskHandler {
	return &TaskHandler{
		svc:     svc,
		logger:  logger,
		metrics: appMetrics,
	}
}

func (t *TaskHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	current := middleware.CurrentUser(c)

	params, err := util.ParamsToMap[request.CreateTaskRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	task, err := t.svc.Create(ctx, current.ID, &params)

	if err != nil {
		t.logger.ErrorCtx(ctx, "Failed to create task",
			zap.Error(err),
			zap.Int("user_id", current.ID),
		)

		helper.SendDomainError(c, err)
		return
	}

	if t.metrics != nil {
		t.metrics.RecordTaskOperation(ctx, "create")
	}

	helper.SendSuccess(c, http.StatusCreated, response.TaskFromDomain(task))
}

func (t *TaskHandler) List(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.task.List", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	current := middleware.CurrentUser(c)

	var query request.ListTasksQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		helper.SendBadRequestError(c, "Invalid query parameters")
		return
	}

	span.SetAttributes(
		attribute.Int("user.id", current.ID),
		attribute.Int("page", query.Page),
	)

	page, err := t.svc.List(ctx, current.ID, &query)

	if err != nil {
		tracing.AddSpanError(span, err)

		t.logger.ErrorCtx(ctx, "Failed to list tasks",
			zap.Error(err),
			zap.Int("user_id", current.ID),
		)

		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, page)
}

func (t *TaskHandler) Get(c *gin.Context) {
	current := middleware.CurrentUser(c)

	task, err := t.svc.Get(c.Request.Context(), current.ID, c.Param("id"))

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.TaskFromDomain(task))
}

func (t *TaskHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	current := middleware.CurrentUser(c)

	params, err := util.ParamsToMap[request.UpdateTaskRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	task, err := t.svc.Update(ctx, current.ID, c.Param("id"), &params)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	if t.metrics != nil {
		t.metrics.RecordTaskOperation(ctx, "update")
	}

	helper.SendSuccess(c, http.StatusOK, response.TaskFromDomain(task))
}

func (t *TaskHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	current := middleware.CurrentUser(c)

	if err := t.svc.Delete(ctx, current.ID, c.Param("id")); err != nil {
		helper.SendDomainError(c, err)
		return
	}

	if t.metrics != nil {
		t.metrics.RecordTaskOperation(ctx, "delete")
	}

	helper.SendSuccess(c, http.StatusOK, gin.H{"message": "Task deleted"})
}

// Search returns a flat result set: no pagination, no counters. The
// listing endpoint is the one that carries those.
func (t *TaskHandler) Search(c *gin.Context) {
	current := middleware.CurrentUser(c)
	keyword := c.Query("q")

	tasks, err := t.svc.Search(c.Request.Context(), current.ID, keyword)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.SearchResponse{
		Keyword: keyword,
		Tasks:   response.TasksFromDomain(tasks),
	})
}

func (t *TaskHandler) History(c *gin.Context) {
	current := middleware.CurrentUser(c)

	entries, err := t.svc.History(c.Request.Context(), current.ID, c.Param("id"))

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.HistoryFromDomain(entries))
}
