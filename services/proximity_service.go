package services

import (
	"log"

	"midway_server/models"
	"midway_server/utils"
)

// ProximityThresholdMeters is the closeness threshold below which two
// on-screen markers need disambiguation. The boundary is exclusive.
const ProximityThresholdMeters = 1000.0

// ProximityService finds pairs of users close enough for their markers to
// overlap. Stateless: each call scans the snapshot it is given, so the
// active set may change freely between invocations. The marker-alternation
// timer lives with the caller, not here.
type ProximityService struct{}

// DetectPairs returns every unordered pair of presences strictly closer
// than the threshold. O(n²) over the snapshot, which is fine at the
// expected scale of tens of concurrent users.
func (d *ProximityService) DetectPairs(presences []models.UserPresence) []models.ProximityPair {
	var pairs []models.ProximityPair
	for i := 0; i < len(presences); i++ {
		for j := i + 1; j < len(presences); j++ {
			distance, err := utils.HaversineDistance(presences[i].Coordinate, presences[j].Coordinate)
			if err != nil {
				log.Printf("⚠️ Skipping pair %s/%s with invalid coordinate: %v", presences[i].UserID, presences[j].UserID, err)
				continue
			}
			if distance < ProximityThresholdMeters {
				userA, userB := presences[i].UserID, presences[j].UserID
				if userB < userA {
					userA, userB = userB, userA
				}
				pairs = append(pairs, models.ProximityPair{
					UserA:          userA,
					UserB:          userB,
					DistanceMeters: distance,
				})
			}
		}
	}
	return pairs
}
