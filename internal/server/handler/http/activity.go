package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/HabitTracker/internal/models"
)

// ActivityService defines the activity operations required by ActivityHandler.
type ActivityService interface {
	Add(ctx context.Context, token string, in models.ActivityInput) (*models.Activity, error)
	Update(ctx context.Context, token, id string, patch models.ActivityInput) error
	Remove(ctx context.Context, token, id string) error
	List(ctx context.Context, token string, raw map[string]any) ([]models.Activity, error)
}

// ActivityHandler handles the /activity endpoints.
type ActivityHandler struct {
	ActivityService ActivityService
	Logger          *zap.Logger
}

type activityRequest struct {
	Token      string `json:"token"`
	ActivityID string `json:"activityId"`
	models.ActivityInput
}

// Add handles POST /activity/add.
func (h *ActivityHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	if _, err := h.ActivityService.Add(r.Context(), req.Token, req.ActivityInput); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Activity added successfully")
}

// Update handles POST /activity/update.
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	if err := h.ActivityService.Update(r.Context(), req.Token, req.ActivityID, req.ActivityInput); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Activity updated successfully")
}

// Delete handles POST /activity/delete.
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	if err := h.ActivityService.Remove(r.Context(), req.Token, req.ActivityID); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Activity deleted successfully")
}

// Get handles POST /activity/get and answers {"activities": [...]}.
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	activities, err := h.ActivityService.List(r.Context(), req.Token, req.Filter)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"activities": activities})
}
