package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"midway_server/models"

	"github.com/google/uuid"
)

// MatchRequestWindow is how long a pending request stays answerable
const MatchRequestWindow = 24 * time.Hour

// MatchPersister writes match records through to durable storage and
// loads archived ones. Implemented by DynamoService; nil disables
// write-through.
type MatchPersister interface {
	SaveMatch(ctx context.Context, match models.Match) error
	LoadMatch(ctx context.Context, matchID string) (*models.Match, error)
}

// Notifier relays match events to the real-time transport. Delivery is
// best-effort: a failed notification never rolls back a local transition.
type Notifier interface {
	NotifyMatchRequested(match models.Match)
	NotifyMatchAccepted(match models.Match)
	NotifyMatchRejected(match models.Match)
	NotifyMatchCancelled(match models.Match)
	NotifyBothConfirmed(match models.Match)
}

// matchEntry serializes all transitions on one match record
type matchEntry struct {
	mu     sync.Mutex
	record models.Match
}

// MatchService owns the live match records and the state machine
// governing them: pending -> accepted -> completed, with rejected,
// expired and cancelled as terminal alternatives.
type MatchService struct {
	Persister MatchPersister
	Notify    Notifier
	Presence  *PresenceService

	mu      sync.RWMutex
	matches map[string]*matchEntry
}

// NewMatchService creates an empty match registry
func NewMatchService(persister MatchPersister, notify Notifier, presence *PresenceService) *MatchService {
	return &MatchService{
		Persister: persister,
		Notify:    notify,
		Presence:  presence,
		matches:   make(map[string]*matchEntry),
	}
}

// Create opens a new pending match from requester to target and notifies
// the target through the transport.
func (ms *MatchService) Create(ctx context.Context, requesterID, targetID, activity string) (models.Match, error) {
	if requesterID == "" || targetID == "" {
		return models.Match{}, fmt.Errorf("requesterId and targetId are required")
	}
	if requesterID == targetID {
		return models.Match{}, fmt.Errorf("cannot request a match with yourself")
	}

	now := time.Now().UTC()
	match := models.Match{
		MatchID:     uuid.NewString(),
		RequesterID: requesterID,
		TargetID:    targetID,
		Activity:    activity,
		State:       models.MatchStatePending,
		CreatedAt:   now,
		ExpiresAt:   now.Add(MatchRequestWindow),
	}
	if ms.Presence != nil {
		match.TargetOnline = ms.Presence.IsOnline(targetID, now)
	}

	ms.mu.Lock()
	ms.matches[match.MatchID] = &matchEntry{record: match}
	ms.mu.Unlock()

	log.Printf("✅ Match %s created: %s -> %s (%s)", match.MatchID, requesterID, targetID, activity)
	ms.persist(ctx, match)
	if ms.Notify != nil {
		ms.Notify.NotifyMatchRequested(match)
	}
	return copyMatch(match), nil
}

// AttachCandidate stores the selected meeting point on a pending match
func (ms *MatchService) AttachCandidate(ctx context.Context, matchID string, candidate models.MeetingCandidate) (models.Match, error) {
	entry, err := ms.entry(matchID)
	if err != nil {
		return models.Match{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.record.State != models.MatchStatePending {
		return models.Match{}, fmt.Errorf("cannot attach candidate in state %s: %w", entry.record.State, models.ErrInvalidStateTransition)
	}
	entry.record.SelectedCandidate = &candidate

	ms.persist(ctx, entry.record)
	return copyMatch(entry.record), nil
}

// Respond lets the target accept or reject a pending match before expiry
func (ms *MatchService) Respond(ctx context.Context, matchID, by, decision string) (models.Match, error) {
	entry, err := ms.entry(matchID)
	if err != nil {
		return models.Match{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.record.State != models.MatchStatePending {
		return models.Match{}, fmt.Errorf("cannot respond in state %s: %w", entry.record.State, models.ErrInvalidStateTransition)
	}
	if by != entry.record.TargetID {
		return models.Match{}, fmt.Errorf("only the target may respond: %w", models.ErrUnauthorized)
	}

	now := time.Now().UTC()
	if !now.Before(entry.record.ExpiresAt) {
		entry.record.State = models.MatchStateExpired
		ms.persist(ctx, entry.record)
		return models.Match{}, models.ErrMatchExpired
	}

	switch decision {
	case models.DecisionAccept:
		entry.record.State = models.MatchStateAccepted
	case models.DecisionReject:
		entry.record.State = models.MatchStateRejected
	default:
		return models.Match{}, fmt.Errorf("invalid decision %q", decision)
	}
	entry.record.RespondedAt = &now

	log.Printf("✅ Match %s %s by %s", matchID, entry.record.State, by)
	ms.persist(ctx, entry.record)
	if ms.Notify != nil {
		if entry.record.State == models.MatchStateAccepted {
			ms.Notify.NotifyMatchAccepted(entry.record)
		} else {
			ms.Notify.NotifyMatchRejected(entry.record)
		}
	}
	return copyMatch(entry.record), nil
}

// ConfirmArrival records that one party reached the meeting point. When
// both parties have confirmed, the match completes. Confirming twice is a
// no-op, not an error.
func (ms *MatchService) ConfirmArrival(ctx context.Context, matchID, by string) (models.Match, error) {
	entry, err := ms.entry(matchID)
	if err != nil {
		return models.Match{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if !entry.record.IsParty(by) {
		return models.Match{}, fmt.Errorf("user %s is not part of match %s: %w", by, matchID, models.ErrUnauthorized)
	}

	switch entry.record.State {
	case models.MatchStateAccepted:
		// fall through to record the confirmation
	case models.MatchStateCompleted:
		// Redundant confirmation after completion stays idempotent.
		if entry.record.HasConfirmed(by) {
			return copyMatch(entry.record), nil
		}
		return models.Match{}, fmt.Errorf("cannot confirm in state %s: %w", entry.record.State, models.ErrInvalidStateTransition)
	default:
		return models.Match{}, fmt.Errorf("cannot confirm in state %s: %w", entry.record.State, models.ErrInvalidStateTransition)
	}

	if !entry.record.HasConfirmed(by) {
		entry.record.ConfirmedBy = append(entry.record.ConfirmedBy, by)
	}

	if len(entry.record.ConfirmedBy) == 2 {
		entry.record.State = models.MatchStateCompleted
		log.Printf("🎉 Match %s completed, both parties arrived", matchID)
		ms.persist(ctx, entry.record)
		if ms.Notify != nil {
			ms.Notify.NotifyBothConfirmed(entry.record)
		}
	} else {
		ms.persist(ctx, entry.record)
	}
	return copyMatch(entry.record), nil
}

// Cancel lets the requester withdraw a match that is still pending
func (ms *MatchService) Cancel(ctx context.Context, matchID, by string) (models.Match, error) {
	entry, err := ms.entry(matchID)
	if err != nil {
		return models.Match{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if by != entry.record.RequesterID {
		return models.Match{}, fmt.Errorf("only the requester may cancel: %w", models.ErrUnauthorized)
	}
	if entry.record.State != models.MatchStatePending {
		return models.Match{}, fmt.Errorf("cannot cancel in state %s: %w", entry.record.State, models.ErrInvalidStateTransition)
	}

	entry.record.State = models.MatchStateCancelled
	log.Printf("✅ Match %s cancelled by %s", matchID, by)
	ms.persist(ctx, entry.record)
	if ms.Notify != nil {
		ms.Notify.NotifyMatchCancelled(entry.record)
	}
	return copyMatch(entry.record), nil
}

// ExpireIfDue transitions a pending match to expired once its window has
// passed. Returns the current record either way.
func (ms *MatchService) ExpireIfDue(ctx context.Context, matchID string, now time.Time) (models.Match, error) {
	entry, err := ms.entry(matchID)
	if err != nil {
		return models.Match{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.record.State == models.MatchStatePending && !now.Before(entry.record.ExpiresAt) {
		entry.record.State = models.MatchStateExpired
		log.Printf("⏰ Match %s expired", matchID)
		ms.persist(ctx, entry.record)
	}
	return copyMatch(entry.record), nil
}

// ExpireDue sweeps every live match and expires the overdue ones,
// returning how many it transitioned.
func (ms *MatchService) ExpireDue(ctx context.Context, now time.Time) int {
	ms.mu.RLock()
	ids := make([]string, 0, len(ms.matches))
	for id := range ms.matches {
		ids = append(ids, id)
	}
	ms.mu.RUnlock()

	expired := 0
	for _, id := range ids {
		before, err := ms.Get(ctx, id)
		if err != nil {
			continue
		}
		after, err := ms.ExpireIfDue(ctx, id, now)
		if err == nil && before.State != after.State {
			expired++
		}
	}
	return expired
}

// Get returns a copy of a match, falling back to the durable store for
// records no longer held in memory.
func (ms *MatchService) Get(ctx context.Context, matchID string) (models.Match, error) {
	ms.mu.RLock()
	entry, ok := ms.matches[matchID]
	ms.mu.RUnlock()
	if ok {
		entry.mu.Lock()
		defer entry.mu.Unlock()
		return copyMatch(entry.record), nil
	}

	if ms.Persister != nil {
		archived, err := ms.Persister.LoadMatch(ctx, matchID)
		if err == nil && archived != nil {
			return copyMatch(*archived), nil
		}
	}
	return models.Match{}, models.ErrMatchNotFound
}

// ActiveForUser returns the non-terminal matches the user is part of
func (ms *MatchService) ActiveForUser(ctx context.Context, userID string) []models.Match {
	ms.mu.RLock()
	entries := make([]*matchEntry, 0, len(ms.matches))
	for _, entry := range ms.matches {
		entries = append(entries, entry)
	}
	ms.mu.RUnlock()

	var active []models.Match
	for _, entry := range entries {
		entry.mu.Lock()
		record := entry.record
		entry.mu.Unlock()

		if !record.IsParty(userID) {
			continue
		}
		switch record.State {
		case models.MatchStatePending, models.MatchStateAccepted:
			active = append(active, copyMatch(record))
		}
	}
	return active
}

// Reset clears all live matches. Intended for tests.
func (ms *MatchService) Reset() {
	ms.mu.Lock()
	ms.matches = make(map[string]*matchEntry)
	ms.mu.Unlock()
}

func (ms *MatchService) entry(matchID string) (*matchEntry, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	entry, ok := ms.matches[matchID]
	if !ok {
		return nil, models.ErrMatchNotFound
	}
	return entry, nil
}

func (ms *MatchService) persist(ctx context.Context, match models.Match) {
	if ms.Persister == nil {
		return
	}
	if err := ms.Persister.SaveMatch(ctx, copyMatch(match)); err != nil {
		// Local state is the source of truth; persistence is best-effort.
		log.Printf("⚠️ Failed to persist match %s: %v", match.MatchID, err)
	}
}

// copyMatch returns a value copy that shares no mutable state with the
// live record
func copyMatch(m models.Match) models.Match {
	out := m
	if m.SelectedCandidate != nil {
		candidate := *m.SelectedCandidate
		out.SelectedCandidate = &candidate
	}
	if m.RespondedAt != nil {
		respondedAt := *m.RespondedAt
		out.RespondedAt = &respondedAt
	}
	if m.ConfirmedBy != nil {
		out.ConfirmedBy = append([]string(nil), m.ConfirmedBy...)
	}
	return out
}
