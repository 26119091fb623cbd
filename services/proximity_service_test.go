package services

import (
	"context"
	"math"
	"testing"
	"time"

	"midway_server/models"
	"midway_server/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// metersToLatDegrees converts a north-south distance to degrees of latitude
func metersToLatDegrees(meters float64) float64 {
	return meters / (utils.EarthRadiusMeters * math.Pi / 180)
}

func TestDetectPairs_ThresholdBoundary(t *testing.T) {
	detector := &ProximityService{}
	now := time.Now().UTC()
	base := presenceAt("a", 35.0, 139.0, now)

	near := presenceAt("b", 35.0+metersToLatDegrees(999), 139.0, now)
	pairs := detector.DetectPairs([]models.UserPresence{base, near})
	require.Len(t, pairs, 1)
	assert.Equal(t, "a", pairs[0].UserA)
	assert.Equal(t, "b", pairs[0].UserB)
	assert.InDelta(t, 999, pairs[0].DistanceMeters, 1)

	far := presenceAt("b", 35.0+metersToLatDegrees(1001), 139.0, now)
	pairs = detector.DetectPairs([]models.UserPresence{base, far})
	assert.Empty(t, pairs)
}

func TestDetectPairs_AllClosePairsReported(t *testing.T) {
	detector := &ProximityService{}
	now := time.Now().UTC()

	// Three users within a few hundred meters of each other, one far away.
	cluster := []models.UserPresence{
		presenceAt("a", 35.0, 139.0, now),
		presenceAt("b", 35.0+metersToLatDegrees(300), 139.0, now),
		presenceAt("c", 35.0+metersToLatDegrees(600), 139.0, now),
		presenceAt("loner", 36.0, 139.0, now),
	}

	pairs := detector.DetectPairs(cluster)
	assert.Len(t, pairs, 3)
	for _, pair := range pairs {
		assert.Less(t, pair.UserA, pair.UserB)
		assert.Less(t, pair.DistanceMeters, ProximityThresholdMeters)
	}
}

func TestDetectPairs_EmptyAndSingle(t *testing.T) {
	detector := &ProximityService{}
	now := time.Now().UTC()

	assert.Empty(t, detector.DetectPairs(nil))
	assert.Empty(t, detector.DetectPairs([]models.UserPresence{presenceAt("a", 35, 139, now)}))
}

func TestDetectPairs_ToleratesChangingSnapshot(t *testing.T) {
	detector := &ProximityService{}
	ps := NewPresenceService(nil)
	now := time.Now().UTC()

	ps.Upsert(context.Background(), presenceAt("a", 35.0, 139.0, now))
	ps.Upsert(context.Background(), presenceAt("b", 35.0+metersToLatDegrees(500), 139.0, now))
	require.Len(t, detector.DetectPairs(ps.ActiveSnapshot(now)), 1)

	// A user dropping offline between passes just shrinks the next pass.
	ps.MarkOffline(context.Background(), "b", now)
	assert.Empty(t, detector.DetectPairs(ps.ActiveSnapshot(now)))
}
