package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"midway_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type fakePresencePersister struct {
	saved []models.UserPresence
	err   error
}

func (f *fakePresencePersister) SavePresence(ctx context.Context, presence models.UserPresence) error {
	f.saved = append(f.saved, presence)
	return f.err
}

func presenceAt(userID string, lat, lng float64, lastSeen time.Time) models.UserPresence {
	return models.UserPresence{
		UserID:     userID,
		Coordinate: models.Coordinate{Latitude: lat, Longitude: lng},
		IsOnline:   true,
		LastSeen:   lastSeen,
	}
}

// --- Tests ---

func TestPresenceService_UpsertAndGet(t *testing.T) {
	ps := NewPresenceService(nil)
	now := time.Now().UTC()

	ps.Upsert(context.Background(), presenceAt("alice", 35.68, 139.76, now))

	entry, ok := ps.Get("alice")
	require.True(t, ok)
	assert.Equal(t, 35.68, entry.Coordinate.Latitude)
	assert.True(t, entry.IsOnline)

	_, ok = ps.Get("nobody")
	assert.False(t, ok)
}

func TestPresenceService_LastArrivalWins(t *testing.T) {
	ps := NewPresenceService(nil)
	now := time.Now().UTC()

	ps.Upsert(context.Background(), presenceAt("alice", 35.68, 139.76, now))
	ps.Upsert(context.Background(), presenceAt("alice", 35.70, 139.80, now.Add(-time.Minute)))

	// Arrival order wins even when the second event carries an older
	// timestamp; the registry does not reorder by event time.
	entry, ok := ps.Get("alice")
	require.True(t, ok)
	assert.Equal(t, 35.70, entry.Coordinate.Latitude)
	assert.Equal(t, now.Add(-time.Minute), entry.LastSeen)
}

func TestPresenceService_UpsertKeepsProfileFields(t *testing.T) {
	ps := NewPresenceService(nil)
	now := time.Now().UTC()

	full := presenceAt("alice", 35.68, 139.76, now)
	full.DisplayName = "Alice"
	full.AvatarRef = "avatars/alice.jpg"
	ps.Upsert(context.Background(), full)

	// A bare location event should not wipe the known profile fields.
	ps.Upsert(context.Background(), presenceAt("alice", 35.69, 139.77, now))

	entry, _ := ps.Get("alice")
	assert.Equal(t, "Alice", entry.DisplayName)
	assert.Equal(t, "avatars/alice.jpg", entry.AvatarRef)
}

func TestPresenceService_MarkOfflinePreservesCoordinate(t *testing.T) {
	ps := NewPresenceService(nil)
	now := time.Now().UTC()

	ps.Upsert(context.Background(), presenceAt("bob", 35.65, 139.70, now))
	ps.MarkOffline(context.Background(), "bob", now.Add(time.Minute))

	entry, ok := ps.Get("bob")
	require.True(t, ok)
	assert.False(t, entry.IsOnline)
	assert.Equal(t, 35.65, entry.Coordinate.Latitude)
	assert.Equal(t, now.Add(time.Minute), entry.LastSeen)
}

func TestPresenceService_SnapshotIsSortedCopy(t *testing.T) {
	ps := NewPresenceService(nil)
	now := time.Now().UTC()

	ps.Upsert(context.Background(), presenceAt("carol", 1, 1, now))
	ps.Upsert(context.Background(), presenceAt("alice", 2, 2, now))
	ps.Upsert(context.Background(), presenceAt("bob", 3, 3, now))

	snapshot := ps.Snapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, []string{"alice", "bob", "carol"}, []string{snapshot[0].UserID, snapshot[1].UserID, snapshot[2].UserID})

	// Mutating the snapshot must not touch the registry.
	snapshot[0].Coordinate.Latitude = -45
	entry, _ := ps.Get("alice")
	assert.Equal(t, 2.0, entry.Coordinate.Latitude)
}

func TestPresenceService_ActiveSnapshotExcludesStaleAndOffline(t *testing.T) {
	ps := NewPresenceService(nil)
	now := time.Now().UTC()

	ps.Upsert(context.Background(), presenceAt("fresh", 1, 1, now.Add(-time.Minute)))
	ps.Upsert(context.Background(), presenceAt("stale", 2, 2, now.Add(-3*time.Minute)))
	offline := presenceAt("offline", 3, 3, now)
	offline.IsOnline = false
	ps.Upsert(context.Background(), offline)

	active := ps.ActiveSnapshot(now)
	require.Len(t, active, 1)
	assert.Equal(t, "fresh", active[0].UserID)
}

func TestPresenceService_IsOnline(t *testing.T) {
	ps := NewPresenceService(nil)
	now := time.Now().UTC()

	ps.Upsert(context.Background(), presenceAt("alice", 1, 1, now))
	assert.True(t, ps.IsOnline("alice", now))
	assert.False(t, ps.IsOnline("alice", now.Add(3*time.Minute)))
	assert.False(t, ps.IsOnline("nobody", now))
}

func TestPresenceService_WriteThroughBestEffort(t *testing.T) {
	persister := &fakePresencePersister{}
	ps := NewPresenceService(persister)
	now := time.Now().UTC()

	ps.Upsert(context.Background(), presenceAt("alice", 1, 1, now))
	ps.MarkOffline(context.Background(), "alice", now)
	require.Len(t, persister.saved, 2)
	assert.False(t, persister.saved[1].IsOnline)

	// Persistence failures must not disturb the registry.
	persister.err = errors.New("dynamo unavailable")
	ps.Upsert(context.Background(), presenceAt("alice", 9, 9, now))
	entry, _ := ps.Get("alice")
	assert.Equal(t, 9.0, entry.Coordinate.Latitude)
}

func TestPresenceService_Reset(t *testing.T) {
	ps := NewPresenceService(nil)
	ps.Upsert(context.Background(), presenceAt("alice", 1, 1, time.Now().UTC()))

	ps.Reset()
	assert.Empty(t, ps.Snapshot())
}
