package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Manni1403/taskboard-assessment/internal/adapter/http/helper"
	"github.com/Manni1403/taskboard-assessment/internal/adapter/http/validation"
	"github.com/Manni1403/taskboard-assessment/internal/core/domain"
	"github.com/Manni1403/taskboard-assessment/internal/core/model/request"
	"github.com/Manni1403/taskboard-assessment/internal/core/model/response"
	"github.com/Manni1403/taskboard-assessment/internal/core/port"
	"github.com/Manni1403/taskboard-assessment/internal/core/util"
	"github.com/Manni1403/taskboard-assessment/pkg/logging"
)

type TodoHandler struct {
	svc    port.TodoService
	Logger *logging.Logger
}

func NewTodoHandler(svc port.TodoService, logger *logging.Logger) *TodoHandler {
	return &TodoHandler{
		svc:    svc,
		Logger: logger,
	}
}

// sendDomainError maps core failures onto the HTTP taxonomy.
func sendDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helper.SendBadRequestError(c, "request", err.Error())
	case errors.Is(err, domain.ErrTodoNotFound):
		helper.SendNotFoundError(c, "Todo not found")
	case errors.Is(err, domain.ErrForbidden):
		helper.SendForbiddenError(c, "Access denied")
	case errors.Is(err, domain.ErrVersionConflict):
		helper.SendConflictError(c, err.Error())
	default:
		helper.SendInternalError(c, "Unexpected error")
	}
}

func (t *TodoHandler) ListTodos(c *gin.Context) {
	ctx := c.Request.Context()
	userId := c.GetInt("x-user-id")

	filter := domain.TodoFilter(c.DefaultQuery("filter", string(domain.TodoFilterAll)))

	todos, err := t.svc.List(ctx, userId, filter)

	if err != nil {
		t.Logger.ErrorWithTrace(ctx, "Failed to list todos",
			zap.Error(err),
			zap.Int("user_id", userId),
		)

		helper.SendInternalError(c, "Error getting todos")
		return
	}

	data := response.NewTodoListResponse(todos)

	c.JSON(http.StatusOK, gin.H{
		"size": len(data),
		"data": data,
	})
}

func (t *TodoHandler) CreateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	userId := c.GetInt("x-user-id")

	params, err := util.ParamsToMap[request.CreateTodoRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	todo, err := t.svc.Create(ctx, userId, params)

	if err != nil {
		sendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusCreated, response.NewTodoResponse(todo))
}

func (t *TodoHandler) GetTodo(c *gin.Context) {
	ctx := c.Request.Context()
	userId := c.GetInt("x-user-id")

	todo, err := t.svc.Get(ctx, userId, c.Param("uuid"))

	if err != nil {
		sendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.NewTodoResponse(todo))
}

func (t *TodoHandler) UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	userId := c.GetInt("x-user-id")

	params, err := util.ParamsToMap[request.UpdateTodoRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	todo, err := t.svc.Update(ctx, userId, c.Param("uuid"), params)

	if err != nil {
		sendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.NewTodoResponse(todo))
}

func (t *TodoHandler) DeleteTodo(c *gin.Context) {
	ctx := c.Request.Context()
	userId := c.GetInt("x-user-id")

	if err := t.svc.Remove(ctx, userId, c.Param("uuid")); err != nil {
		sendDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (t *TodoHandler) BulkCreateTodos(c *gin.Context) {
	ctx := c.Request.Context()
	userId := c.GetInt("x-user-id")

	params, err := util.ParamsToMap[request.BulkCreateTodoRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	todos, err := t.svc.BulkCreate(ctx, userId, params.Todos)

	if err != nil {
		sendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusCreated, response.NewTodoListResponse(todos))
}

func (t *TodoHandler) BulkDeleteTodos(c *gin.Context) {
	ctx := c.Request.Context()
	userId := c.GetInt("x-user-id")

	params, err := util.ParamsToMap[request.BulkDeleteTodoRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	result, err := t.svc.BulkDelete(ctx, userId, params.Ids)

	if err != nil {
		sendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.BulkDeleteResponse{
		Deleted:  result.Deleted,
		NotFound: result.NotFound,
	})
}
