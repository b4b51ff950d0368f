package catalog

import (
	"net/url"
	"testing"
	"time"
)

func TestValuesSerialization(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	q := Query{
		StartTime:   &start,
		EndTime:     &end,
		SeatCount:   intPtr(4),
		VehicleType: "CAR",
		MinPrice:    int64Ptr(20_000),
		MaxPrice:    int64Ptr(90_000),
		SortBy:      SortPricePerHour,
		SortOrder:   OrderDesc,
	}

	v := q.Values()
	want := map[string]string{
		"startTime":   "2025-06-01T09:00:00Z",
		"endTime":     "2025-06-01T17:00:00Z",
		"seatCount":   "4",
		"vehicleType": "CAR",
		"minPrice":    "20000",
		"maxPrice":    "90000",
		"sortBy":      "pricePerHour",
		"sortOrder":   "DESC",
	}
	for k, w := range want {
		if got := v.Get(k); got != w {
			t.Fatalf("%s = %q, want %q", k, got, w)
		}
	}

	if !q.HasWindow() {
		t.Fatal("window set but HasWindow is false")
	}
	if (Query{StartTime: &start}).HasWindow() {
		t.Fatal("half a window must not count as a window")
	}
}

func TestValuesOmitsUnsetFields(t *testing.T) {
	v := Query{}.Values()
	if len(v) != 0 {
		t.Fatalf("empty query should serialize to nothing, got %v", v)
	}
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(url.Values{
		"seatCount": {"4"},
		"sortBy":    {"modelName"},
		"sortOrder": {"DESC"},
	})
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	if q.SeatCount == nil || *q.SeatCount != 4 || q.SortBy != SortModelName || q.SortOrder != OrderDesc {
		t.Fatalf("unexpected query: %+v", q)
	}

	bad := []url.Values{
		{"startTime": {"yesterday"}},
		{"seatCount": {"many"}},
		{"seatCount": {"0"}},
		{"minPrice": {"-5"}},
		{"sortBy": {"batteryCapacity"}},
		{"sortOrder": {"UP"}},
	}
	for _, v := range bad {
		if _, err := ParseQuery(v); err == nil {
			t.Fatalf("ParseQuery(%v): expected error", v)
		}
	}
}

func TestParseQueryDefaults(t *testing.T) {
	q, err := ParseQuery(url.Values{})
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	if q.SortBy != SortCreatedAt || q.SortOrder != OrderAsc {
		t.Fatalf("defaults not applied: %+v", q)
	}
}
