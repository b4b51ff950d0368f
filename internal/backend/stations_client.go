package backend

import (
	"context"
	"fmt"
	"net/http"

	"evrental/internal/models"
)

// StationsClient talks to the backend's station and rating endpoints.
type StationsClient struct {
	base *BaseClient
}

// NewStationsClient returns client.
func NewStationsClient(baseURL string, httpClient HTTPDoer) *StationsClient {
	return &StationsClient{base: NewBaseClient(baseURL, httpClient)}
}

// RatingRequest is one user's review submission.
type RatingRequest struct {
	StationID int64   `json:"stationId"`
	Stars     int     `json:"stars"`
	Comment   *string `json:"comment"`
}

// List fetches all stations.
func (c *StationsClient) List(ctx context.Context) ([]models.Station, error) {
	var stations []models.Station
	if err := c.base.DoJSON(ctx, http.MethodGet, "/stations", "", nil, &stations, nil); err != nil {
		return nil, err
	}
	return stations, nil
}

// Get fetches one station.
func (c *StationsClient) Get(ctx context.Context, stationID int64) (*models.Station, error) {
	var station models.Station
	path := fmt.Sprintf("/stations/%d", stationID)
	if err := c.base.DoJSON(ctx, http.MethodGet, path, "", nil, &station, nil); err != nil {
		return nil, err
	}
	return &station, nil
}

// StationRatings fetches the per-station rating list. Satisfies
// rating.Fetcher.
func (c *StationsClient) StationRatings(ctx context.Context, stationID int64) ([]models.Rating, error) {
	var ratings []models.Rating
	path := fmt.Sprintf("/stations/%d/ratings", stationID)
	if err := c.base.DoJSON(ctx, http.MethodGet, path, "", nil, &ratings, nil); err != nil {
		return nil, err
	}
	return ratings, nil
}

// CreateRating submits a review for a station.
func (c *StationsClient) CreateRating(ctx context.Context, token string, req RatingRequest) (*models.Rating, error) {
	var created models.Rating
	path := fmt.Sprintf("/stations/%d/ratings", req.StationID)
	if err := c.base.DoJSON(ctx, http.MethodPost, path, token, req, &created, nil); err != nil {
		return nil, err
	}
	return &created, nil
}
