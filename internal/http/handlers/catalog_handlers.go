package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"evrental/internal/catalog"
	"evrental/internal/models"
)

type vehiclesAPI interface {
	StationModels(ctx context.Context, stationID int64) ([]models.VehicleModel, error)
	Search(ctx context.Context, stationID int64, q catalog.Query) ([]models.VehicleModel, error)
}

var errModelNotFound = errors.New("model not found")

type catalogCache interface {
	Get(ctx context.Context, stationID int64) ([]models.VehicleModel, bool)
	Put(ctx context.Context, stationID int64, ms []models.VehicleModel)
}

// catalogSource answers model lookups, reusing the last full catalog fetch
// when it is still fresh.
type catalogSource struct {
	vehicles vehiclesAPI
	cache    catalogCache
}

func (s *catalogSource) fullCatalog(ctx context.Context, stationID int64) ([]models.VehicleModel, error) {
	if ms, ok := s.cache.Get(ctx, stationID); ok {
		return ms, nil
	}
	ms, err := s.vehicles.StationModels(ctx, stationID)
	if err != nil {
		return nil, err
	}
	s.cache.Put(ctx, stationID, ms)
	return ms, nil
}

func (s *catalogSource) findModel(ctx context.Context, stationID, modelID int64) (*models.VehicleModel, error) {
	ms, err := s.fullCatalog(ctx, stationID)
	if err != nil {
		return nil, err
	}
	for i := range ms {
		if ms[i].ID == modelID {
			return &ms[i], nil
		}
	}
	return nil, fmt.Errorf("%w: model %d at station %d", errModelNotFound, modelID, stationID)
}

// CatalogHandlers serves the vehicle-model browsing flow.
type CatalogHandlers struct {
	source *catalogSource
	filter *catalog.Filter
	logger *zap.Logger
}

// NewCatalogHandlers returns handler.
func NewCatalogHandlers(vehicles vehiclesAPI, cache catalogCache, filter *catalog.Filter, logger *zap.Logger) *CatalogHandlers {
	return &CatalogHandlers{
		source: &catalogSource{vehicles: vehicles, cache: cache},
		filter: filter,
		logger: logger,
	}
}

type modelView struct {
	models.VehicleModel
	MostRented bool `json:"mostRented"`
}

// Models handles GET /api/stations/{id}/models. With a time window the
// backend performs the availability search; without one the last full
// catalog fetch is filtered and sorted locally, saving the round trip.
func (h *CatalogHandlers) Models(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	q, err := catalog.ParseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var ms []models.VehicleModel
	if q.HasWindow() {
		ms, err = h.source.vehicles.Search(r.Context(), stationID, q)
		if err != nil {
			writeBackendError(r.Context(), w, h.logger, nil, "", err)
			return
		}
	} else {
		ms, err = h.source.fullCatalog(r.Context(), stationID)
		if err != nil {
			writeBackendError(r.Context(), w, h.logger, nil, "", err)
			return
		}
		ms = h.filter.Apply(ms, q)
	}

	// Badge is relative to what is actually displayed, not the full fleet.
	flagged := catalog.MostRented(ms)
	views := make([]modelView, len(ms))
	for i, m := range ms {
		views[i] = modelView{VehicleModel: m, MostRented: flagged[m.ID]}
	}
	writeJSON(w, http.StatusOK, views)
}
