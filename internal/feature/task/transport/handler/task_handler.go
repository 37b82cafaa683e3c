// Package handler はtaskフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/task/domain/entity"
	"task_backend/internal/feature/task/usecase"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/shared/apperr"
)

// TaskUsecase はタスク操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TaskUsecase interface {
	Create(ctx context.Context, ownerID string, in usecase.CreateInput) (*entity.Task, error)
	Get(ctx context.Context, ownerID, id string) (*entity.Task, error)
	List(ctx context.Context, ownerID string, p usecase.ListParams) ([]entity.Task, error)
	Update(ctx context.Context, ownerID, id string, upd usecase.TaskUpdate) (*entity.Task, error)
	Delete(ctx context.Context, ownerID, id string) (*entity.Task, error)
}

// TaskHandler はタスクのHTTPリクエストを処理します。
// すべてのルートは AuthRequired の後段に登録します。
type TaskHandler struct {
	uc TaskUsecase
}

// NewTaskHandler は指定されたusecaseでTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(uc TaskUsecase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// ownerID returns the authenticated user's id, aborting with 401 when there is none.
func ownerID(c *gin.Context) (string, bool) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		api.RespondError(c, apperr.ErrUnauthorized)
		return "", false
	}
	return user.ID, true
}

// Create は POST /tasks を処理します。所有者は常にリクエストしたユーザーです。
func (h *TaskHandler) Create(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req api.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondError(c, api.BindError(err))
		return
	}
	task, err := h.uc.Create(c.Request.Context(), owner, usecase.CreateInput{
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.NewTaskResponse(task))
}

// List は GET /tasks を処理します。
//
// エンドポイント例:
// GET /tasks?completed=true&sortBy=createdAt:desc&limit=10&skip=20
func (h *TaskHandler) List(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	tasks, err := h.uc.List(c.Request.Context(), owner, usecase.ListParams{
		Completed: c.Query("completed"),
		SortBy:    c.Query("sortBy"),
		Limit:     c.Query("limit"),
		Skip:      c.Query("skip"),
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewTaskListResponse(tasks))
}

// Get は GET /tasks/:id を処理します。
func (h *TaskHandler) Get(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	task, err := h.uc.Get(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewTaskResponse(task))
}

// Update は PATCH /tasks/:id を処理します。
// description と completed 以外のキーを含むリクエストは全体を拒否します。
func (h *TaskHandler) Update(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req api.UpdateTaskRequest
	if err := api.DecodeStrict(c.Request.Body, &req); err != nil {
		api.RespondError(c, err)
		return
	}
	task, err := h.uc.Update(c.Request.Context(), owner, c.Param("id"), usecase.TaskUpdate{
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewTaskResponse(task))
}

// Delete は DELETE /tasks/:id を処理し、削除したタスクを返します。
func (h *TaskHandler) Delete(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	task, err := h.uc.Delete(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewTaskResponse(task))
}
