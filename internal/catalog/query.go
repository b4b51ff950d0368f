package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// SortKey selects the ranking attribute for a catalog search.
type SortKey string

const (
	SortCreatedAt    SortKey = "createdAt"
	SortPricePerHour SortKey = "pricePerHour"
	SortSeatCount    SortKey = "seatCount"
	SortRangeKm      SortKey = "rangeKm"
	SortModelName    SortKey = "modelName"
)

// SortOrder is the ranking direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "ASC"
	OrderDesc SortOrder = "DESC"
)

// Query is the filter/sort specification for an availability search. With a
// time window present it is serialized for the backend, which alone knows
// cross-booking overlap; without one it drives local filtering over the last
// full catalog fetch.
type Query struct {
	StartTime   *time.Time
	EndTime     *time.Time
	SeatCount   *int
	VehicleType string
	MinPrice    *int64
	MaxPrice    *int64
	SortBy      SortKey
	SortOrder   SortOrder
}

// HasWindow reports whether a time window is set, i.e. whether the backend
// must perform the true availability search.
func (q Query) HasWindow() bool {
	return q.StartTime != nil && q.EndTime != nil
}

// Values serializes the query for the backend search endpoint.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.StartTime != nil {
		v.Set("startTime", q.StartTime.UTC().Format(time.RFC3339))
	}
	if q.EndTime != nil {
		v.Set("endTime", q.EndTime.UTC().Format(time.RFC3339))
	}
	if q.SeatCount != nil {
		v.Set("seatCount", strconv.Itoa(*q.SeatCount))
	}
	if q.VehicleType != "" {
		v.Set("vehicleType", q.VehicleType)
	}
	if q.MinPrice != nil {
		v.Set("minPrice", strconv.FormatInt(*q.MinPrice, 10))
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatInt(*q.MaxPrice, 10))
	}
	if q.SortBy != "" {
		v.Set("sortBy", string(q.SortBy))
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", string(q.SortOrder))
	}
	return v
}

// ParseQuery builds a Query from incoming URL parameters, validating types
// and enumerations before anything is sent upstream.
func ParseQuery(v url.Values) (Query, error) {
	q := Query{SortBy: SortCreatedAt, SortOrder: OrderAsc}

	if raw := v.Get("startTime"); raw != "" {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return Query{}, fmt.Errorf("catalog: invalid startTime %q", raw)
		}
		q.StartTime = &at
	}
	if raw := v.Get("endTime"); raw != "" {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return Query{}, fmt.Errorf("catalog: invalid endTime %q", raw)
		}
		q.EndTime = &at
	}
	if raw := v.Get("seatCount"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Query{}, fmt.Errorf("catalog: invalid seatCount %q", raw)
		}
		q.SeatCount = &n
	}
	q.VehicleType = v.Get("vehicleType")
	if raw := v.Get("minPrice"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return Query{}, fmt.Errorf("catalog: invalid minPrice %q", raw)
		}
		q.MinPrice = &n
	}
	if raw := v.Get("maxPrice"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return Query{}, fmt.Errorf("catalog: invalid maxPrice %q", raw)
		}
		q.MaxPrice = &n
	}

	if raw := v.Get("sortBy"); raw != "" {
		switch SortKey(raw) {
		case SortCreatedAt, SortPricePerHour, SortSeatCount, SortRangeKm, SortModelName:
			q.SortBy = SortKey(raw)
		default:
			return Query{}, fmt.Errorf("catalog: unknown sortBy %q", raw)
		}
	}
	if raw := v.Get("sortOrder"); raw != "" {
		switch SortOrder(raw) {
		case OrderAsc, OrderDesc:
			q.SortOrder = SortOrder(raw)
		default:
			return Query{}, fmt.Errorf("catalog: unknown sortOrder %q", raw)
		}
	}
	return q, nil
}
