package models

// Match states
const (
	MatchStatePending   = "pending"
	MatchStateAccepted  = "accepted"
	MatchStateRejected  = "rejected"
	MatchStateCompleted = "completed"
	MatchStateExpired   = "expired"
	MatchStateCancelled = "cancelled"
)

// Respond decisions
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)
