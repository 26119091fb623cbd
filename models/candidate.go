package models

// MeetingCandidate is one proposed meeting point, scored for fairness.
// Immutable once created; every negotiation produces a fresh set.
type MeetingCandidate struct {
	ID            string     `dynamodbav:"id" json:"id"`
	Name          string     `dynamodbav:"name" json:"name"`
	Address       string     `dynamodbav:"address,omitempty" json:"address,omitempty"`
	Coordinate    Coordinate `dynamodbav:"coordinate" json:"coordinate"`
	DistanceToA   float64    `dynamodbav:"distanceToA" json:"distanceToA"` // km
	DistanceToB   float64    `dynamodbav:"distanceToB" json:"distanceToB"` // km
	WalkTimeA     int        `dynamodbav:"walkTimeA" json:"walkTimeA"`     // minutes
	WalkTimeB     int        `dynamodbav:"walkTimeB" json:"walkTimeB"`     // minutes
	Rating        *float64   `dynamodbav:"rating,omitempty" json:"rating,omitempty"`
	IsOpenNow     *bool      `dynamodbav:"isOpenNow,omitempty" json:"isOpenNow,omitempty"`
	IsSynthetic   bool       `dynamodbav:"isSynthetic" json:"isSynthetic"`
	FairnessScore float64    `dynamodbav:"fairnessScore" json:"fairnessScore"`
}

// Place is a point-of-interest returned by the place-search collaborator
type Place struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	Coordinate Coordinate `json:"coordinate"`
	Rating     *float64   `json:"rating,omitempty"`
	IsOpenNow  *bool      `json:"isOpenNow,omitempty"`
}
