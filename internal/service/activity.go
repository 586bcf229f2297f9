package service

import (
	"context"

	"github.com/atinyakov/HabitTracker/internal/filter"
	"github.com/atinyakov/HabitTracker/internal/models"
	"github.com/atinyakov/HabitTracker/internal/validate"
)

const activityKind kind = "Activity"

// ActivityService manages a user's logged activities.
type ActivityService struct {
	activities Collection[models.Activity]
	auth       Verifier
}

// NewActivityService constructs an ActivityService over the given store and verifier.
func NewActivityService(activities Collection[models.Activity], auth Verifier) *ActivityService {
	return &ActivityService{activities: activities, auth: auth}
}

// Add validates in and stores it as a new activity of the caller.
func (s *ActivityService) Add(ctx context.Context, token string, in models.ActivityInput) (*models.Activity, error) {
	owner, err := s.auth.Verify(token)
	if err != nil {
		return nil, err
	}
	if err := validate.Activity.Check(&in); err != nil {
		return nil, err
	}

	activity := &models.Activity{UserID: owner}
	in.Apply(activity)
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// Update applies the supplied fields of patch to the caller's activity id.
func (s *ActivityService) Update(ctx context.Context, token, id string, patch models.ActivityInput) error {
	owner, err := s.auth.Verify(token)
	if err != nil {
		return err
	}
	if err := activityKind.requireID(id); err != nil {
		return err
	}

	activity, err := s.activities.FindOne(ctx, owner, id)
	if err != nil {
		return activityKind.notFound(err)
	}

	merged := models.ActivityInputFrom(activity).Overlay(patch)
	if err := validate.Activity.Check(&merged); err != nil {
		return err
	}

	patch.Apply(activity)
	return activityKind.notFound(s.activities.Replace(ctx, activity))
}

// Remove deletes the caller's activity id.
func (s *ActivityService) Remove(ctx context.Context, token, id string) error {
	owner, err := s.auth.Verify(token)
	if err != nil {
		return err
	}
	if err := activityKind.requireID(id); err != nil {
		return err
	}
	return activityKind.notFound(s.activities.Delete(ctx, owner, id))
}

// List returns up to filter.MaxResults of the caller's activities matching raw.
func (s *ActivityService) List(ctx context.Context, token string, raw map[string]any) ([]models.Activity, error) {
	owner, err := s.auth.Verify(token)
	if err != nil {
		return nil, err
	}
	q, err := filter.Compile(raw, owner, filter.Activities)
	if err != nil {
		return nil, err
	}
	return s.activities.Find(ctx, q)
}
