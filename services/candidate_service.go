package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"midway_server/models"
	"midway_server/utils"
)

// CandidateService builds and fairness-scores meeting-point candidates
// between two users. When the place-search collaborator is missing or
// failing it degrades to a deterministic synthetic set, so callers always
// get at least five candidates.
type CandidateService struct {
	Places PlaceSearcher
}

const (
	defaultRating     = 3.0
	minSearchRadius   = 1000.0
	maxSearchRadius   = 10000.0
	candidateLimit    = 5
	minRealCandidates = 3
)

// syntheticOffsets are the fixed lat/lng offsets applied to the midpoint
// when generating fallback candidates. The first entry is the midpoint
// itself; the order encodes preference.
var syntheticOffsets = [5][2]float64{
	{0, 0},
	{0.002, 0.002},
	{-0.002, 0.002},
	{0.002, -0.002},
	{-0.002, -0.002},
}

// activityLabels names the synthetic candidates per activity
var activityLabels = map[string][5]string{
	"coffee":   {"Halfway Coffee House", "The Middle Ground Cafe", "Meet-Cute Espresso", "Two Roads Coffee", "Common Ground Roasters"},
	"lunch":    {"Midway Lunch Spot", "The Shared Table", "Halfway Deli", "Crossroads Kitchen", "Two Forks Diner"},
	"dinner":   {"The Meeting Point Bistro", "Halfway House Restaurant", "Middle Table Dining", "Crossroads Trattoria", "Two Plates Supper Club"},
	"drinks":   {"The Halfway Tavern", "Middle Ground Bar", "Meetup Lounge", "Crossroads Pub", "Two Glasses Wine Bar"},
	"walk":     {"Midpoint Park Entrance", "Halfway Promenade", "The Meeting Green", "Crossroads Trailhead", "Common Walkway Plaza"},
	"study":    {"Halfway Study Lounge", "The Quiet Middle", "Midpoint Library Corner", "Crossroads Reading Room", "Common Desk Cowork"},
	"workout":  {"Midway Fitness Spot", "Halfway Run Meetpoint", "The Middle Gym", "Crossroads Court", "Common Ground Track"},
	"shopping": {"Midpoint Market", "Halfway Shopping Corner", "The Meeting Mall", "Crossroads Arcade", "Common Goods Plaza"},
	"movie":    {"Midway Cinema", "Halfway Screening Room", "The Middle Theater", "Crossroads Picturehouse", "Common View Movieplex"},
	"brunch":   {"Halfway Brunch Club", "The Middle Griddle", "Midpoint Mimosa Bar", "Crossroads Breakfast Nook", "Two Spoons Brunchery"},
}

// genericLabels back any activity not in the table
var genericLabels = [5]string{"The Meeting Point", "Halfway Spot", "Middle Ground", "Crossroads Corner", "Common Place"}

// activityCategories maps an activity to the place categories searched
var activityCategories = map[string][3]string{
	"coffee":   {"cafe", "bakery", "tea_house"},
	"lunch":    {"restaurant", "deli", "food_court"},
	"dinner":   {"restaurant", "bistro", "steakhouse"},
	"drinks":   {"bar", "pub", "wine_bar"},
	"walk":     {"park", "plaza", "trail"},
	"study":    {"library", "cafe", "coworking_space"},
	"workout":  {"gym", "sports_center", "park"},
	"shopping": {"shopping_mall", "market", "department_store"},
	"movie":    {"movie_theater", "cinema", "arts_center"},
	"brunch":   {"brunch_restaurant", "cafe", "bakery"},
}

var genericCategories = [3]string{"cafe", "restaurant", "park"}

// GetCandidates returns 3-5 meeting-point candidates ordered best first.
// The degraded flag reports that the place-search collaborator was
// unavailable and only synthetic candidates were produced; the call still
// succeeds.
func (cs *CandidateService) GetCandidates(ctx context.Context, locationA, locationB models.Coordinate, activity string) ([]models.MeetingCandidate, bool, error) {
	interUserDistance, err := utils.HaversineDistance(locationA, locationB)
	if err != nil {
		return nil, false, err
	}
	mid := utils.Midpoint(locationA, locationB)

	fallback := cs.syntheticCandidates(mid, locationA, locationB, activity)

	if cs.Places == nil {
		return fallback, true, nil
	}

	radius := interUserDistance / 1000 * 500
	if radius < minSearchRadius {
		radius = minSearchRadius
	}
	if radius > maxSearchRadius {
		radius = maxSearchRadius
	}

	categories, ok := activityCategories[activity]
	if !ok {
		categories = genericCategories
	}

	seen := make(map[string]struct{})
	var real []models.MeetingCandidate
	for _, category := range categories {
		places, err := cs.Places.SearchNearby(ctx, mid, radius, category)
		if err != nil {
			log.Printf("⚠️ Place search failed for category %s, falling back to synthetic candidates: %v", category, err)
			return fallback, true, nil
		}
		for _, place := range places {
			if _, dup := seen[place.ID]; dup {
				continue
			}
			seen[place.ID] = struct{}{}

			candidate, err := cs.candidateFromPlace(place, locationA, locationB)
			if err != nil {
				log.Printf("⚠️ Skipping place %s with bad coordinate: %v", place.ID, err)
				continue
			}
			real = append(real, candidate)
		}
	}

	sort.SliceStable(real, func(i, j int) bool {
		return real[i].FairnessScore > real[j].FairnessScore
	})
	if len(real) > candidateLimit {
		real = real[:candidateLimit]
	}

	// Three or more real candidates fully replace the synthetic set;
	// fewer get padded with fallback entries in their own order.
	if len(real) >= minRealCandidates {
		return real, false, nil
	}
	pad := candidateLimit - len(real)
	if pad > len(fallback) {
		pad = len(fallback)
	}
	result := append(real, fallback[:pad]...)
	return result, false, nil
}

func (cs *CandidateService) candidateFromPlace(place models.Place, locationA, locationB models.Coordinate) (models.MeetingCandidate, error) {
	metersA, err := utils.HaversineDistance(locationA, place.Coordinate)
	if err != nil {
		return models.MeetingCandidate{}, err
	}
	metersB, err := utils.HaversineDistance(locationB, place.Coordinate)
	if err != nil {
		return models.MeetingCandidate{}, err
	}

	rating := defaultRating
	if place.Rating != nil {
		rating = *place.Rating
	}
	distanceToA := metersA / 1000
	distanceToB := metersB / 1000
	imbalance := distanceToA - distanceToB
	if imbalance < 0 {
		imbalance = -imbalance
	}
	score := 0.7*(1/(1+imbalance)) + 0.3*(rating/5)

	return models.MeetingCandidate{
		ID:            place.ID,
		Name:          place.Name,
		Address:       place.Address,
		Coordinate:    place.Coordinate,
		DistanceToA:   distanceToA,
		DistanceToB:   distanceToB,
		WalkTimeA:     utils.WalkingMinutes(metersA),
		WalkTimeB:     utils.WalkingMinutes(metersB),
		Rating:        place.Rating,
		IsOpenNow:     place.IsOpenNow,
		IsSynthetic:   false,
		FairnessScore: score,
	}, nil
}

// syntheticCandidates applies the fixed offsets to the midpoint and names
// the results from the activity's label table. Deterministic on purpose:
// the same inputs always produce the same fallback set.
func (cs *CandidateService) syntheticCandidates(mid, locationA, locationB models.Coordinate, activity string) []models.MeetingCandidate {
	labels, ok := activityLabels[activity]
	if !ok {
		labels = genericLabels
	}

	candidates := make([]models.MeetingCandidate, 0, len(syntheticOffsets))
	for i, offset := range syntheticOffsets {
		coord := models.Coordinate{
			Latitude:  mid.Latitude + offset[0],
			Longitude: mid.Longitude + offset[1],
		}
		metersA, errA := utils.HaversineDistance(locationA, coord)
		metersB, errB := utils.HaversineDistance(locationB, coord)
		if errA != nil || errB != nil {
			// Offsets near the poles or antimeridian can push a point out
			// of range; skip it rather than fail the whole set.
			continue
		}

		candidates = append(candidates, models.MeetingCandidate{
			ID:            fmt.Sprintf("synthetic-%s-%d", activity, i+1),
			Name:          labels[i],
			Coordinate:    coord,
			DistanceToA:   metersA / 1000,
			DistanceToB:   metersB / 1000,
			WalkTimeA:     utils.WalkingMinutes(metersA),
			WalkTimeB:     utils.WalkingMinutes(metersB),
			IsSynthetic:   true,
			FairnessScore: 0.5 - 0.1*float64(i),
		})
	}
	return candidates
}
