package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/HabitTracker/internal/models"
)

// TaskService defines the task operations required by TaskHandler.
type TaskService interface {
	Add(ctx context.Context, token string, in models.TaskInput) (*models.Task, error)
	Update(ctx context.Context, token, id string, patch models.TaskInput) error
	SetCompletion(ctx context.Context, token, id string, completed bool) error
	Remove(ctx context.Context, token, id string) error
	List(ctx context.Context, token string, raw map[string]any) ([]models.Task, error)
}

// TaskHandler handles the /task endpoints.
type TaskHandler struct {
	TaskService TaskService
	Logger      *zap.Logger
}

type taskRequest struct {
	Token  string `json:"token"`
	TaskID string `json:"taskId"`
	models.TaskInput
}

type listRequest struct {
	Token  string         `json:"token"`
	Filter map[string]any `json:"filter"`
}

// Add handles POST /task/add.
func (h *TaskHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	if _, err := h.TaskService.Add(r.Context(), req.Token, req.TaskInput); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Task added")
}

// Update handles POST /task/update. Only the supplied fields change.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	if err := h.TaskService.Update(r.Context(), req.Token, req.TaskID, req.TaskInput); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Task updated")
}

// Complete handles POST /task/complete.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.setCompletion(w, r, true, "Task completed")
}

// Incomplete handles POST /task/incomplete.
func (h *TaskHandler) Incomplete(w http.ResponseWriter, r *http.Request) {
	h.setCompletion(w, r, false, "Task incomplete")
}

func (h *TaskHandler) setCompletion(w http.ResponseWriter, r *http.Request, completed bool, msg string) {
	var req taskRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	if err := h.TaskService.SetCompletion(r.Context(), req.Token, req.TaskID, completed); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusOK, msg)
}

// Delete handles POST /task/delete.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	if err := h.TaskService.Remove(r.Context(), req.Token, req.TaskID); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Task deleted")
}

// Get handles POST /task/get and answers {"tasks": [...]}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	tasks, err := h.TaskService.List(r.Context(), req.Token, req.Filter)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}
