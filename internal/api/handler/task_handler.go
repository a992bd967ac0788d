package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
)

// TaskHandler handles task CRUD and the board's drag protocol.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=todo wip done"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeID  string     `json:"assignee_id"`
	OrderID     string     `json:"order_id"`
}

type updateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=todo wip done"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeID  string     `json:"assignee_id"`
}

type dragStartRequest struct {
	TaskID string `json:"task_id" validate:"required"`
}

type dropRequest struct {
	TargetColumn string `json:"target_column" validate:"required"`
}

type moveRequest struct {
	TaskID       string `json:"task_id" validate:"required"`
	TargetColumn string `json:"target_column" validate:"required"`
}

type moveResponse struct {
	Moved bool         `json:"moved"`
	Task  *domain.Task `json:"task"`
}

// Create handles POST /v1/tasks.
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		DueDate:     req.DueDate,
		AssigneeID:  req.AssigneeID,
		OrderID:     req.OrderID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// List handles GET /v1/tasks.
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

// Get handles GET /v1/tasks/:id.
func (h *TaskHandler) Get(c echo.Context) error {
	task, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Update handles PUT /v1/tasks/:id.
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		DueDate:     req.DueDate,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /v1/tasks/:id.
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Board handles GET /v1/board: the three columns with their tasks.
func (h *TaskHandler) Board(c echo.Context) error {
	columns, err := h.service.Board(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, columns)
}

// DragStart handles POST /v1/board/gesture: the caller lifts a task.
func (h *TaskHandler) DragStart(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req dragStartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.DragStart(c.Request().Context(), actor.ID, req.TaskID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DragCancel handles DELETE /v1/board/gesture: drop the gesture without
// committing.
func (h *TaskHandler) DragCancel(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	h.service.DragCancel(actor.ID)
	return c.NoContent(http.StatusNoContent)
}

// DragEnd handles POST /v1/board/gesture/drop: commit the gesture onto a
// target column. Unrecognised targets and same-column drops report
// moved=false and write nothing.
func (h *TaskHandler) DragEnd(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req dropRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.DragEnd(c.Request().Context(), actor.ID, req.TargetColumn)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, moveResponse{Moved: result.Moved, Task: result.Task})
}

// Move handles POST /v1/tasks/move: the gesture-free form used by clients
// that track the drag themselves.
func (h *TaskHandler) Move(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Move(c.Request().Context(), actor.ID, req.TaskID, req.TargetColumn)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, moveResponse{Moved: result.Moved, Task: result.Task})
}
