package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"evrental/internal/backend"
	"evrental/internal/http/middleware"
	"evrental/internal/models"
	"evrental/internal/rating"
)

type stationsAPI interface {
	List(ctx context.Context) ([]models.Station, error)
	Get(ctx context.Context, stationID int64) (*models.Station, error)
	StationRatings(ctx context.Context, stationID int64) ([]models.Rating, error)
	CreateRating(ctx context.Context, token string, req backend.RatingRequest) (*models.Rating, error)
}

type ratingAggregator interface {
	Summaries(ctx context.Context, stationIDs []int64) map[int64]rating.Summary
}

type ratedHints interface {
	MarkRated(ctx context.Context, userID, bookingID int64) error
}

// StationsHandlers serves station browsing and rating flows.
type StationsHandlers struct {
	stations stationsAPI
	ratings  ratingAggregator
	hints    ratedHints
	sessions sessionStore
	logger   *zap.Logger
}

// NewStationsHandlers returns handler.
func NewStationsHandlers(stations stationsAPI, ratings ratingAggregator, hints ratedHints, sessions sessionStore, logger *zap.Logger) *StationsHandlers {
	return &StationsHandlers{stations: stations, ratings: ratings, hints: hints, sessions: sessions, logger: logger}
}

type stationView struct {
	models.Station
	Rating rating.Summary `json:"rating"`
}

// List handles GET /api/stations: stations with their rating aggregates
// merged in.
func (h *StationsHandlers) List(w http.ResponseWriter, r *http.Request) {
	stations, err := h.stations.List(r.Context())
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, nil, "", err)
		return
	}

	ids := make([]int64, len(stations))
	for i, s := range stations {
		ids[i] = s.ID
	}
	summaries := h.ratings.Summaries(r.Context(), ids)

	views := make([]stationView, len(stations))
	for i, s := range stations {
		views[i] = stationView{Station: s, Rating: summaries[s.ID]}
	}
	writeJSON(w, http.StatusOK, views)
}

// Get handles GET /api/stations/{id}.
func (h *StationsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	station, err := h.stations.Get(r.Context(), stationID)
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, nil, "", err)
		return
	}
	summaries := h.ratings.Summaries(r.Context(), []int64{stationID})
	writeJSON(w, http.StatusOK, stationView{Station: *station, Rating: summaries[stationID]})
}

// Ratings handles GET /api/stations/{id}/ratings.
func (h *StationsHandlers) Ratings(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ratings, err := h.stations.StationRatings(r.Context(), stationID)
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, nil, "", err)
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}

type rateRequest struct {
	Stars     int     `json:"stars"`
	Comment   *string `json:"comment"`
	BookingID int64   `json:"bookingId,omitempty"`
}

// Rate handles POST /api/stations/{id}/ratings. A missing star selection is
// rejected here; no request is issued.
func (h *StationsHandlers) Rate(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	stationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Stars < 1 || req.Stars > 5 {
		writeError(w, http.StatusBadRequest, "please select a rating from 1 to 5 stars")
		return
	}

	created, err := h.stations.CreateRating(r.Context(), sess.Token, backend.RatingRequest{
		StationID: stationID,
		Stars:     req.Stars,
		Comment:   req.Comment,
	})
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, h.sessions, sess.ID, err)
		return
	}

	if req.BookingID > 0 {
		// Soft hint only; losing it just re-offers the rating prompt.
		if err := h.hints.MarkRated(r.Context(), sess.User.ID, req.BookingID); err != nil {
			h.logger.Warn("failed to record rated-booking hint", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusCreated, created)
}

// pathID parses a numeric {name} path variable, answering 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
