package services

import (
	"context"
	"fmt"
	"time"

	"midway_server/models"

	"github.com/go-resty/resty/v2"
)

// PlaceSearcher is the place-search collaborator. Implementations may be
// slow or unavailable; callers must treat any error as non-fatal.
type PlaceSearcher interface {
	SearchNearby(ctx context.Context, center models.Coordinate, radiusMeters float64, category string) ([]models.Place, error)
}

// PlaceService queries an external place-search API over HTTP
type PlaceService struct {
	client *resty.Client
	apiKey string
}

// NewPlaceService creates a place-search client with a bounded timeout so a
// slow provider can never block candidate generation indefinitely.
func NewPlaceService(baseURL, apiKey string, timeout time.Duration) *PlaceService {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	return &PlaceService{client: client, apiKey: apiKey}
}

type placeSearchResponse struct {
	Results []struct {
		ID        string   `json:"id"`
		Name      string   `json:"name"`
		Address   string   `json:"address"`
		Latitude  float64  `json:"latitude"`
		Longitude float64  `json:"longitude"`
		Rating    *float64 `json:"rating,omitempty"`
		OpenNow   *bool    `json:"openNow,omitempty"`
	} `json:"results"`
}

// SearchNearby returns points-of-interest of a category around a coordinate
func (ps *PlaceService) SearchNearby(ctx context.Context, center models.Coordinate, radiusMeters float64, category string) ([]models.Place, error) {
	var out placeSearchResponse
	resp, err := ps.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":      fmt.Sprintf("%f", center.Latitude),
			"lng":      fmt.Sprintf("%f", center.Longitude),
			"radius":   fmt.Sprintf("%.0f", radiusMeters),
			"category": category,
			"key":      ps.apiKey,
		}).
		SetResult(&out).
		Get("/places/nearby")
	if err != nil {
		return nil, fmt.Errorf("place search request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("place search returned status %d", resp.StatusCode())
	}

	places := make([]models.Place, 0, len(out.Results))
	for _, r := range out.Results {
		places = append(places, models.Place{
			ID:         r.ID,
			Name:       r.Name,
			Address:    r.Address,
			Coordinate: models.Coordinate{Latitude: r.Latitude, Longitude: r.Longitude},
			Rating:     r.Rating,
			IsOpenNow:  r.OpenNow,
		})
	}
	return places, nil
}
