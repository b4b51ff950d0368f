package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"evrental/internal/catalog"
	"evrental/internal/models"
)

// VehiclesClient talks to the backend's catalog and availability endpoints.
type VehiclesClient struct {
	base *BaseClient
}

// NewVehiclesClient returns client.
func NewVehiclesClient(baseURL string, httpClient HTTPDoer) *VehiclesClient {
	return &VehiclesClient{base: NewBaseClient(baseURL, httpClient)}
}

// StationModels fetches the full catalog for a station, unconstrained by
// time. This is the feed the local filter runs over.
func (c *VehiclesClient) StationModels(ctx context.Context, stationID int64) ([]models.VehicleModel, error) {
	var ms []models.VehicleModel
	path := fmt.Sprintf("/stations/%d/models", stationID)
	if err := c.base.DoJSON(ctx, http.MethodGet, path, "", nil, &ms, nil); err != nil {
		return nil, err
	}
	return ms, nil
}

// Search runs the backend availability search; only the backend can see
// cross-booking overlap for a time window.
func (c *VehiclesClient) Search(ctx context.Context, stationID int64, q catalog.Query) ([]models.VehicleModel, error) {
	values := q.Values()
	values.Set("stationId", strconv.FormatInt(stationID, 10))

	var ms []models.VehicleModel
	path := "/vehicles/search?" + values.Encode()
	if err := c.base.DoJSON(ctx, http.MethodGet, path, "", nil, &ms, nil); err != nil {
		return nil, err
	}
	return ms, nil
}
