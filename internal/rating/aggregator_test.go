package rating

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"evrental/internal/models"
)

type fakeFetcher struct {
	ratings map[int64][]models.Rating
	fail    map[int64]bool
}

func (f *fakeFetcher) StationRatings(_ context.Context, stationID int64) ([]models.Rating, error) {
	if f.fail[stationID] {
		return nil, errors.New("upstream down")
	}
	return f.ratings[stationID], nil
}

func stars(values ...int) []models.Rating {
	out := make([]models.Rating, len(values))
	for i, v := range values {
		out[i] = models.Rating{Stars: v}
	}
	return out
}

func TestSummarizeMean(t *testing.T) {
	s := Summarize(1, stars(5, 4, 3))
	if s.Average != 4.0 || s.Count != 3 || s.NoRatings {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestSummarizeEmptyDefaultsToFive(t *testing.T) {
	s := Summarize(1, nil)
	if s.Average != 5.0 || s.Count != 0 || !s.NoRatings {
		t.Fatalf("unexpected empty summary: %+v", s)
	}
}

func TestSummariesToleratesPartialFailure(t *testing.T) {
	fetcher := &fakeFetcher{
		ratings: map[int64][]models.Rating{
			1: stars(5, 4, 3),
			3: stars(2),
		},
		fail: map[int64]bool{2: true},
	}
	agg := NewAggregator(fetcher, zap.NewNop(), 4)

	got := agg.Summaries(context.Background(), []int64{1, 2, 3})
	if len(got) != 3 {
		t.Fatalf("want 3 summaries, got %d", len(got))
	}
	if got[1].Average != 4.0 || got[1].Count != 3 {
		t.Fatalf("station 1: %+v", got[1])
	}
	// Failed station contributes zero ratings, not an abort.
	if !got[2].NoRatings || got[2].Average != 5.0 {
		t.Fatalf("station 2: %+v", got[2])
	}
	if got[3].Average != 2.0 || got[3].Count != 1 {
		t.Fatalf("station 3: %+v", got[3])
	}
}
