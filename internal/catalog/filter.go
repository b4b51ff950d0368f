package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"evrental/internal/models"
)

// Filter applies a Query to an already-fetched model list, sparing a backend
// round trip when no time window constrains availability.
type Filter struct {
	coll *collate.Collator
}

// NewFilter builds a filter whose modelName ordering follows the given
// locale (BCP 47 tag). An unparseable tag falls back to the unmarked locale.
func NewFilter(locale string) *Filter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return &Filter{coll: collate.New(tag)}
}

// Apply filters conjunctively, sorts by the query's key and order, and
// returns a new slice; the input is never reordered.
func (f *Filter) Apply(ms []models.VehicleModel, q Query) []models.VehicleModel {
	out := make([]models.VehicleModel, 0, len(ms))
	for _, m := range ms {
		if matches(m, q) {
			out = append(out, m)
		}
	}
	f.sortModels(out, q.SortBy, q.SortOrder)
	return out
}

func matches(m models.VehicleModel, q Query) bool {
	if q.SeatCount != nil && m.SeatCount != *q.SeatCount {
		return false
	}
	if q.VehicleType != "" && m.Type != q.VehicleType {
		return false
	}
	if q.MinPrice != nil && m.PricePerHour < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && m.PricePerHour > *q.MaxPrice {
		return false
	}
	return true
}

// sortModels sorts stably; descending negates the ascending comparator's
// sign instead of swapping arguments, so equal keys keep insertion order in
// both directions.
func (f *Filter) sortModels(ms []models.VehicleModel, key SortKey, order SortOrder) {
	if key == "" {
		key = SortCreatedAt
	}
	sort.SliceStable(ms, func(i, j int) bool {
		cmp := f.compare(ms[i], ms[j], key)
		if order == OrderDesc {
			cmp = -cmp
		}
		return cmp < 0
	})
}

func (f *Filter) compare(a, b models.VehicleModel, key SortKey) int {
	switch key {
	case SortPricePerHour:
		return compareInt64(a.PricePerHour, b.PricePerHour)
	case SortSeatCount:
		return compareInt64(int64(a.SeatCount), int64(b.SeatCount))
	case SortRangeKm:
		return compareInt64(int64(a.RangeKm), int64(b.RangeKm))
	case SortModelName:
		return f.coll.CompareString(a.Name, b.Name)
	default:
		if a.CreatedAt.Before(b.CreatedAt) {
			return -1
		}
		if a.CreatedAt.After(b.CreatedAt) {
			return 1
		}
		return 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MostRented returns the ids of models carrying the "most rented" badge.
// The maximum is taken over the currently displayed, already-filtered list;
// ties all win, and a zero maximum flags nothing.
func MostRented(ms []models.VehicleModel) map[int64]bool {
	max := 0
	for _, m := range ms {
		if m.RentalCount > max {
			max = m.RentalCount
		}
	}

	flagged := make(map[int64]bool)
	if max == 0 {
		return flagged
	}
	for _, m := range ms {
		if m.RentalCount == max {
			flagged[m.ID] = true
		}
	}
	return flagged
}
