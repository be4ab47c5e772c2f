package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/adapter/http/helper"
	"taskhub/internal/adapter/http/middleware"
	"taskhub/internal/adapter/http/validation"
	"taskhub/internal/core/model/request"
	"taskhub/internal/core/model/response"
	"taskhub/internal/core/port"
	"taskhub/internal/core/util"
	"taskhub/pkg/metrics"
)

type ListHandler struct {
	svc     port.ListService
	metrics *metrics.AppMetrics
}

func NewListHandler(svc port.ListService, appMetrics *metrics.AppMetrics) *ListHandler {
	return &ListHandler{
		svc:     svc,
		metrics: appMetrics,
	}
}

func (l *ListHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	current := middleware.CurrentUser(c)

	params, err := util.ParamsToMap[request.CreateListRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	list, err := l.svc.Create(ctx, current.ID, &params)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	if l.metrics != nil {
		l.metrics.RecordListOperation(ctx, "create")
	}

	helper.SendSuccess(c, http.StatusCreated, response.ListDetailFromDomain(list))
}

func (l *ListHandler) List(c *gin.Context) {
	current := middleware.CurrentUser(c)

	lists, err := l.svc.List(c.Request.Context(), current.ID)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	out := make([]response.ListResponse, 0, len(lists))

	for _, list := range lists {
		out = append(out, response.ListFromDomain(list.List, list.TaskCount))
	}

	helper.SendSuccess(c, http.StatusOK, out)
}

func (l *ListHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	current := middleware.CurrentUser(c)

	params, err := util.ParamsToMap[request.UpdateListRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	list, err := l.svc.Update(ctx, current.ID, c.Param("id"), &params)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	if l.metrics != nil {
		l.metrics.RecordListOperation(ctx, "update")
	}

	helper.SendSuccess(c, http.StatusOK, response.ListDetailFromDomain(list))
}

// Delete removes the list; its tasks survive with their list cleared.
func (l *ListHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	current := middleware.CurrentUser(c)

	if err := l.svc.Delete(ctx, current.ID, c.Param("id")); err != nil {
		helper.SendDomainError(c, err)
		return
	}

	if l.metrics != nil {
		l.metrics.RecordListOperation(ctx, "delete")
	}

	helper.SendSuccess(c, http.StatusOK, gin.H{"message": "List deleted"})
}
