package models

import "time"

// UserPresence is a user's last-known location and online status
type UserPresence struct {
	UserID      string     `dynamodbav:"userId" json:"userId"`
	Coordinate  Coordinate `dynamodbav:"coordinate" json:"coordinate"`
	IsOnline    bool       `dynamodbav:"isOnline" json:"isOnline"`
	LastSeen    time.Time  `dynamodbav:"lastSeen" json:"lastSeen"`
	DisplayName string     `dynamodbav:"displayName,omitempty" json:"displayName,omitempty"`
	AvatarRef   string     `dynamodbav:"avatarRef,omitempty" json:"avatarRef,omitempty"`
}

// ProximityPair flags two users whose markers are close enough to overlap
// on screen. Recomputed on every detection pass, never persisted.
type ProximityPair struct {
	UserA          string  `json:"userA"`
	UserB          string  `json:"userB"`
	DistanceMeters float64 `json:"distanceMeters"`
}

// PresenceTable is the DynamoDB table name for presence snapshots
const PresenceTable = "Presence"
