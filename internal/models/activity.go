package models

import "time"

// ActivityType is the kind of sport performed.
type ActivityType string

const (
	// ActivityRunning is a run.
	ActivityRunning ActivityType = "running"
	// ActivityCycling is a bike ride.
	ActivityCycling ActivityType = "cycling"
	// ActivitySwimming is a swim.
	ActivitySwimming ActivityType = "swimming"
	// ActivityWalking is a walk.
	ActivityWalking ActivityType = "walking"
	// ActivityHiking is a hike.
	ActivityHiking ActivityType = "hiking"
	// ActivityYoga is a yoga session.
	ActivityYoga ActivityType = "yoga"
	// ActivityWeightlifting is a strength session.
	ActivityWeightlifting ActivityType = "weightlifting"
	// ActivityOther is any other sport.
	ActivityOther ActivityType = "other"
)

// ActivityTypes lists the accepted activity types.
var ActivityTypes = []ActivityType{
	ActivityRunning, ActivityCycling, ActivitySwimming, ActivityWalking,
	ActivityHiking, ActivityYoga, ActivityWeightlifting, ActivityOther,
}

// DistanceActivities are the activity types that must report a distance.
var DistanceActivities = []ActivityType{ActivityRunning, ActivityCycling, ActivityWalking, ActivityHiking}

// Activity is a logged workout owned by a user.
type Activity struct {
	ID          string       `json:"id" bson:"_id"`
	UserID      string       `json:"userId" bson:"userId"`
	Name        string       `json:"name" bson:"name"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	DateAdded   time.Time    `json:"dateAdded" bson:"dateAdded"`
	Type        ActivityType `json:"activityType" bson:"activityType"`
	// Duration is in seconds.
	Duration float64 `json:"duration" bson:"duration"`
	// Distance is in kilometres.
	Distance *float64 `json:"distance,omitempty" bson:"distance,omitempty"`
	Calories *float64 `json:"calories,omitempty" bson:"calories,omitempty"`
	// ElevationGain is in metres.
	ElevationGain *float64 `json:"elevationGain,omitempty" bson:"elevationGain,omitempty"`
}

func (a *Activity) DocumentID() string      { return a.ID }
func (a *Activity) SetDocumentID(id string) { a.ID = id }
func (a *Activity) OwnerID() string         { return a.UserID }

func (a *Activity) StampCreated(now time.Time) {
	if a.DateAdded.IsZero() {
		a.DateAdded = now
	}
}

// ActivityInput carries client-supplied activity fields.
type ActivityInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	DateAdded     string `json:"dateAdded"`
	ActivityType  string `json:"activityType"`
	Duration      Number `json:"duration"`
	Distance      Number `json:"distance"`
	Calories      Number `json:"calories"`
	ElevationGain Number `json:"elevationGain"`
}

// ActivityInputFrom renders a stored activity as input fields.
func ActivityInputFrom(a *Activity) ActivityInput {
	return ActivityInput{
		Name:          a.Name,
		Description:   a.Description,
		DateAdded:     FormatDate(&a.DateAdded),
		ActivityType:  string(a.Type),
		Duration:      NumberOf(a.Duration),
		Distance:      NumberFrom(a.Distance),
		Calories:      NumberFrom(a.Calories),
		ElevationGain: NumberFrom(a.ElevationGain),
	}
}

// Overlay returns in with every supplied field of patch applied.
func (in ActivityInput) Overlay(patch ActivityInput) ActivityInput {
	if patch.Name != "" {
		in.Name = patch.Name
	}
	if patch.Description != "" {
		in.Description = patch.Description
	}
	if patch.DateAdded != "" {
		in.DateAdded = patch.DateAdded
	}
	if patch.ActivityType != "" {
		in.ActivityType = patch.ActivityType
	}
	if patch.Duration.Present() {
		in.Duration = patch.Duration
	}
	if patch.Distance.Present() {
		in.Distance = patch.Distance
	}
	if patch.Calories.Present() {
		in.Calories = patch.Calories
	}
	if patch.ElevationGain.Present() {
		in.ElevationGain = patch.ElevationGain
	}
	return in
}

// Apply copies every supplied field of in onto a. in must already be
// validated.
func (in ActivityInput) Apply(a *Activity) {
	if in.Name != "" {
		a.Name = in.Name
	}
	if in.Description != "" {
		a.Description = in.Description
	}
	if d, err := ParseDate(in.DateAdded); err == nil {
		a.DateAdded = d
	}
	if in.ActivityType != "" {
		a.Type = ActivityType(in.ActivityType)
	}
	if f, ok := in.Duration.Float(); ok {
		a.Duration = f
	}
	if p := in.Distance.Ptr(); p != nil {
		a.Distance = p
	}
	if p := in.Calories.Ptr(); p != nil {
		a.Calories = p
	}
	if p := in.ElevationGain.Ptr(); p != nil {
		a.ElevationGain = p
	}
}
