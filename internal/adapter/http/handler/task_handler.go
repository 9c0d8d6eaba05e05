package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"taskapp/internal/adapter/http/helper"
	"taskapp/internal/adapter/http/middleware"
	"taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
	"taskapp/pkg/auth"
	"taskapp/pkg/config"
	"taskapp/pkg/tracing"
)

type TaskHandler struct {
	svc     port.TaskService
	guard   *auth.Guard
	logger  *config.AppLogger
	metrics *config.AppMetrics
}

func NewTaskHandler(svc port.TaskService, guard *auth.Guard, logger *config.AppLogger, metrics *config.AppMetrics) *TaskHandler {
	return &TaskHandler{
		svc:     svc,
		guard:   guard,
		logger:  logger,
		metrics: metrics,
	}
}

func (t *TaskHandler) countOperation(operation string) {
	if t.metrics != nil {
		t.metrics.RecordTaskOperation(operation)
	}
}

func (t *TaskHandler) ListTasks(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.task.ListTasks", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	identity, ok := t.authorize(c)

	if !ok {
		return
	}

	status, ok := domain.ParseStatusFilter(c.Query("status"))

	if !ok {
		helper.SendBadRequestError(c, "status", fmt.Sprintf("Invalid status %q: must be one of all, pending, completed", c.Query("status")))
		return
	}

	sort, ok := domain.ParseSortOrder(c.Query("sort"))

	if !ok {
		helper.SendBadRequestError(c, "sort", fmt.Sprintf("Invalid sort %q: must be one of created, title, updated", c.Query("sort")))
		return
	}

	tasks, err := t.svc.List(ctx, identity.ID, domain.ListOptions{Status: status, Sort: sort})

	if err != nil {
		tracing.AddSpanError(span, err)

		t.logger.Logger.Ctx(ctx).Error("failed to list tasks",
			zap.Error(err),
			zap.String("user_id", identity.ID.String()),
		)

		helper.SendDomainError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("task.count", len(tasks)))
	t.countOperation("list")

	c.JSON(http.StatusOK, response.NewTaskListResponse(tasks))
}

func (t *TaskHandler) GetTask(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := t.authorize(c)

	if !ok {
		return
	}

	taskID, ok := pathTaskID(c)

	if !ok {
		return
	}

	task, err := t.svc.Get(ctx, taskID, identity.ID)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewTaskResponse(task))
}

func (t *TaskHandler) CreateTask(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.task.CreateTask", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	identity, ok := t.authorize(c)

	if !ok {
		return
	}

	req, err := util.BindBody[request.TaskCreateRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "body", "Invalid request body")
		return
	}

	if err := validation.Validator.Struct(req); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	description := ""

	if req.Description != nil {
		description = *req.Description
	}

	task, err := t.svc.Create(ctx, identity.ID, req.Title, description)

	if err != nil {
		tracing.AddSpanError(span, err)

		t.logger.Logger.Ctx(ctx).Error("failed to create task",
			zap.Error(err),
			zap.String("user_id", identity.ID.String()),
		)

		helper.SendDomainError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("task.id", task.ID))
	t.countOperation("create")

	c.JSON(http.StatusCreated, response.NewTaskResponse(task))
}

func (t *TaskHandler) UpdateTask(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := t.authorize(c)

	if !ok {
		return
	}

	taskID, ok := pathTaskID(c)

	if !ok {
		return
	}

	req, err := util.BindBody[request.TaskUpdateRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "body", "Invalid request body")
		return
	}

	if err := validation.Validator.Struct(req); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
	}

	task, err := t.svc.Update(ctx, taskID, identity.ID, patch)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	t.countOperation("update")

	c.JSON(http.StatusOK, response.NewTaskResponse(task))
}

func (t *TaskHandler) ToggleComplete(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := t.authorize(c)

	if !ok {
		return
	}

	taskID, ok := pathTaskID(c)

	if !ok {
		return
	}

	task, err := t.svc.ToggleComplete(ctx, taskID, identity.ID)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	t.countOperation("toggle_complete")

	c.JSON(http.StatusOK, response.NewTaskResponse(task))
}

func (t *TaskHandler) DeleteTask(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := t.authorize(c)

	if !ok {
		return
	}

	taskID, ok := pathTaskID(c)

	if !ok {
		return
	}

	if err := t.svc.Delete(ctx, taskID, identity.ID); err != nil {
		helper.SendDomainError(c, err)
		return
	}

	t.countOperation("delete")

	c.Status(http.StatusNoContent)
}

// authorize checks the verified caller against the owner named in the path.
// Every task route is owner-scoped, so this runs before any store access.
func (t *TaskHandler) authorize(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)

	if !ok {
		helper.SendDomainError(c, &domain.AuthenticationError{
			Kind:   domain.AuthenticationInvalid,
			Reason: "no verified identity on request",
		})
		return domain.Identity{}, false
	}

	if err := t.guard.Authorize(identity.ID, c.Param("user_id")); err != nil {
		helper.SendDomainError(c, err)
		return domain.Identity{}, false
	}

	return identity, true
}

func pathTaskID(c *gin.Context) (int, bool) {
	taskID, err := strconv.Atoi(c.Param("task_id"))

	if err != nil {
		helper.SendBadRequestError(c, "task_id", "Task id must be an integer")
		return 0, false
	}

	return taskID, true
}
