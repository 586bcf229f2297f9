package service

import (
	"context"
	"time"

	"github.com/atinyakov/HabitTracker/internal/filter"
	"github.com/atinyakov/HabitTracker/internal/models"
	"github.com/atinyakov/HabitTracker/internal/validate"
)

const taskKind kind = "Task"

// TaskService manages a user's tasks.
type TaskService struct {
	tasks Collection[models.Task]
	auth  Verifier
	now   func() time.Time
}

// NewTaskService constructs a TaskService over the given store and verifier.
func NewTaskService(tasks Collection[models.Task], auth Verifier) *TaskService {
	return &TaskService{tasks: tasks, auth: auth, now: time.Now}
}

// Add validates in and stores it as a new task of the caller.
func (s *TaskService) Add(ctx context.Context, token string, in models.TaskInput) (*models.Task, error) {
	owner, err := s.auth.Verify(token)
	if err != nil {
		return nil, err
	}
	if err := validate.Task.Check(&in); err != nil {
		return nil, err
	}

	task := &models.Task{UserID: owner}
	in.Apply(task)
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies the supplied fields of patch to the caller's task id.
// The merged task must pass the full rule list or nothing is written.
func (s *TaskService) Update(ctx context.Context, token, id string, patch models.TaskInput) error {
	owner, err := s.auth.Verify(token)
	if err != nil {
		return err
	}
	if err := taskKind.requireID(id); err != nil {
		return err
	}

	task, err := s.tasks.FindOne(ctx, owner, id)
	if err != nil {
		return taskKind.notFound(err)
	}

	merged := models.TaskInputFrom(task).Overlay(patch)
	if err := validate.Task.Check(&merged); err != nil {
		return err
	}

	patch.Apply(task)
	return taskKind.notFound(s.tasks.Replace(ctx, task))
}

// SetCompletion marks the caller's task id completed or not. Completing an
// already completed task keeps its original completion date.
func (s *TaskService) SetCompletion(ctx context.Context, token, id string, completed bool) error {
	owner, err := s.auth.Verify(token)
	if err != nil {
		return err
	}
	if err := taskKind.requireID(id); err != nil {
		return err
	}

	task, err := s.tasks.FindOne(ctx, owner, id)
	if err != nil {
		return taskKind.notFound(err)
	}

	switch {
	case completed && task.CompletedDate == nil:
		now := s.now().UTC()
		task.CompletedDate = &now
	case !completed:
		task.CompletedDate = nil
	}
	task.Completed = completed

	return taskKind.notFound(s.tasks.Replace(ctx, task))
}

// Remove deletes the caller's task id.
func (s *TaskService) Remove(ctx context.Context, token, id string) error {
	owner, err := s.auth.Verify(token)
	if err != nil {
		return err
	}
	if err := taskKind.requireID(id); err != nil {
		return err
	}
	return taskKind.notFound(s.tasks.Delete(ctx, owner, id))
}

// List returns up to filter.MaxResults of the caller's tasks matching raw.
func (s *TaskService) List(ctx context.Context, token string, raw map[string]any) ([]models.Task, error) {
	owner, err := s.auth.Verify(token)
	if err != nil {
		return nil, err
	}
	q, err := filter.Compile(raw, owner, filter.Tasks)
	if err != nil {
		return nil, err
	}
	return s.tasks.Find(ctx, q)
}
