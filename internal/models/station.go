package models

import "time"

// Station is a physical rental and return location.
type Station struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Phone         string  `json:"phone,omitempty"`
	OpeningHours  string  `json:"openingHours,omitempty"`
	ActiveVehicle int     `json:"activeVehicleCount,omitempty"`
}

// Rating is one user's review of a station.
type Rating struct {
	ID        int64     `json:"id"`
	StationID int64     `json:"stationId"`
	UserID    int64     `json:"userId"`
	BookingID int64     `json:"bookingId,omitempty"`
	Stars     int       `json:"stars"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
