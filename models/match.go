package models

import "time"

// Match is one meeting negotiation between two users
type Match struct {
	MatchID           string            `dynamodbav:"matchId" json:"matchId"`
	RequesterID       string            `dynamodbav:"requesterId" json:"requesterId"`
	TargetID          string            `dynamodbav:"targetId" json:"targetId"`
	Activity          string            `dynamodbav:"activity" json:"activity"`
	State             string            `dynamodbav:"state" json:"state"`
	SelectedCandidate *MeetingCandidate `dynamodbav:"selectedCandidate,omitempty" json:"selectedCandidate,omitempty"`
	CreatedAt         time.Time         `dynamodbav:"createdAt" json:"createdAt"`
	RespondedAt       *time.Time        `dynamodbav:"respondedAt,omitempty" json:"respondedAt,omitempty"`
	ConfirmedBy       []string          `dynamodbav:"confirmedBy,omitempty" json:"confirmedBy,omitempty"`
	ExpiresAt         time.Time         `dynamodbav:"expiresAt" json:"expiresAt"`
	TargetOnline      bool              `dynamodbav:"targetOnline" json:"targetOnline"`
}

// IsParty reports whether userID is the requester or the target
func (m Match) IsParty(userID string) bool {
	return userID == m.RequesterID || userID == m.TargetID
}

// HasConfirmed reports whether userID already confirmed arrival
func (m Match) HasConfirmed(userID string) bool {
	for _, id := range m.ConfirmedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// MatchesTable is the DynamoDB table name for match records
const MatchesTable = "Matches"
