package services

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"midway_server/models"
)

// PresencePersister writes presence rows through to durable storage.
// Implemented by DynamoService; nil disables write-through.
type PresencePersister interface {
	SavePresence(ctx context.Context, presence models.UserPresence) error
}

// DefaultFreshnessWindow is how long a presence entry counts as active
// after its last update.
const DefaultFreshnessWindow = 2 * time.Minute

// PresenceService is the process-wide registry of last-known user
// locations and online status. All mutation goes through Upsert and
// MarkOffline; reads return copies, never live references.
type PresenceService struct {
	Persister PresencePersister
	Freshness time.Duration

	mu    sync.RWMutex
	users map[string]models.UserPresence
}

// NewPresenceService creates an empty registry
func NewPresenceService(persister PresencePersister) *PresenceService {
	return &PresenceService{
		Persister: persister,
		Freshness: DefaultFreshnessWindow,
		users:     make(map[string]models.UserPresence),
	}
}

// Upsert replaces or inserts the presence entry for a user. The last
// update to arrive wins; event timestamps are not compared, so an
// out-of-order transport can briefly regress an apparent location.
func (ps *PresenceService) Upsert(ctx context.Context, presence models.UserPresence) {
	ps.mu.Lock()
	if existing, ok := ps.users[presence.UserID]; ok {
		// Location events usually omit profile fields; keep the known ones.
		if presence.DisplayName == "" {
			presence.DisplayName = existing.DisplayName
		}
		if presence.AvatarRef == "" {
			presence.AvatarRef = existing.AvatarRef
		}
	}
	ps.users[presence.UserID] = presence
	ps.mu.Unlock()

	ps.writeThrough(ctx, presence)
}

// MarkOffline flips a user offline, preserving the last coordinate
func (ps *PresenceService) MarkOffline(ctx context.Context, userID string, lastSeen time.Time) {
	ps.mu.Lock()
	entry, ok := ps.users[userID]
	if ok {
		entry.IsOnline = false
		entry.LastSeen = lastSeen
		ps.users[userID] = entry
	}
	ps.mu.Unlock()

	if ok {
		ps.writeThrough(ctx, entry)
	}
}

// Get returns a copy of a user's presence entry
func (ps *PresenceService) Get(userID string) (models.UserPresence, bool) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	entry, ok := ps.users[userID]
	return entry, ok
}

// IsOnline reports whether a user is online and fresh as of now
func (ps *PresenceService) IsOnline(userID string, now time.Time) bool {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	entry, ok := ps.users[userID]
	return ok && entry.IsOnline && now.Sub(entry.LastSeen) <= ps.Freshness
}

// Snapshot returns a point-in-time copy of every known entry, ordered by
// user ID
func (ps *PresenceService) Snapshot() []models.UserPresence {
	ps.mu.RLock()
	snapshot := make([]models.UserPresence, 0, len(ps.users))
	for _, entry := range ps.users {
		snapshot = append(snapshot, entry)
	}
	ps.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].UserID < snapshot[j].UserID
	})
	return snapshot
}

// ActiveSnapshot returns the entries that are online and within the
// freshness window as of now. Stale entries stay in the registry but are
// excluded from active matching.
func (ps *PresenceService) ActiveSnapshot(now time.Time) []models.UserPresence {
	all := ps.Snapshot()
	active := make([]models.UserPresence, 0, len(all))
	for _, entry := range all {
		if entry.IsOnline && now.Sub(entry.LastSeen) <= ps.Freshness {
			active = append(active, entry)
		}
	}
	return active
}

// Reset clears the registry. Intended for tests.
func (ps *PresenceService) Reset() {
	ps.mu.Lock()
	ps.users = make(map[string]models.UserPresence)
	ps.mu.Unlock()
}

func (ps *PresenceService) writeThrough(ctx context.Context, presence models.UserPresence) {
	if ps.Persister == nil {
		return
	}
	if err := ps.Persister.SavePresence(ctx, presence); err != nil {
		// The registry stays authoritative; persistence is best-effort.
		log.Printf("⚠️ Failed to persist presence for %s: %v", presence.UserID, err)
	}
}
