package rating

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"evrental/internal/models"
)

// defaultAverage is shown when a station has no ratings at all; the summary
// carries NoRatings so the UI can render "no ratings yet" instead of a score.
const defaultAverage = 5.0

// Fetcher loads the per-station rating list, typically from the backend.
type Fetcher interface {
	StationRatings(ctx context.Context, stationID int64) ([]models.Rating, error)
}

// Summary is the aggregate a station card displays.
type Summary struct {
	StationID int64   `json:"stationId"`
	Average   float64 `json:"average"`
	Count     int     `json:"count"`
	NoRatings bool    `json:"noRatings"`
}

// Aggregator fans out one ratings fetch per station and derives averages.
type Aggregator struct {
	fetcher Fetcher
	logger  *zap.Logger
	limit   int
}

// NewAggregator builds an aggregator with a bound on in-flight fetches.
func NewAggregator(fetcher Fetcher, logger *zap.Logger, limit int) *Aggregator {
	if limit <= 0 {
		limit = 8
	}
	return &Aggregator{fetcher: fetcher, logger: logger, limit: limit}
}

// Summaries fetches ratings for every station concurrently, with no
// ordering requirement among the requests. A station whose fetch fails
// contributes zero ratings instead of aborting the whole computation.
func (a *Aggregator) Summaries(ctx context.Context, stationIDs []int64) map[int64]Summary {
	out := make(map[int64]Summary, len(stationIDs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.limit)

	for _, id := range stationIDs {
		id := id
		g.Go(func() error {
			ratings, err := a.fetcher.StationRatings(ctx, id)
			if err != nil {
				a.logger.Warn("ratings fetch failed, treating as unrated",
					zap.Int64("station_id", id), zap.Error(err))
				ratings = nil
			}
			summary := Summarize(id, ratings)
			mu.Lock()
			out[id] = summary
			mu.Unlock()
			return nil
		})
	}

	// Tasks never return errors; Wait only synchronizes.
	_ = g.Wait()
	return out
}

// Summarize computes the plain mean of stars. Zero ratings yields the
// default score with the explicit no-ratings indicator.
func Summarize(stationID int64, ratings []models.Rating) Summary {
	if len(ratings) == 0 {
		return Summary{StationID: stationID, Average: defaultAverage, NoRatings: true}
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Stars
	}
	return Summary{
		StationID: stationID,
		Average:   float64(sum) / float64(len(ratings)),
		Count:     len(ratings),
	}
}
