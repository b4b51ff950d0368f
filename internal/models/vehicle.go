package models

import "time"

// VehicleModel is a catalog entry describing a vehicle type/trim, not a
// physical unit. Fleet counters are display material only.
type VehicleModel struct {
	ID                    int64     `json:"id"`
	Name                  string    `json:"name"`
	Type                  string    `json:"type"`
	SeatCount             int       `json:"seatCount"`
	BatteryCapacityKWh    float64   `json:"batteryCapacityKwh"`
	RangeKm               int       `json:"rangeKm"`
	PricePerHour          int64     `json:"pricePerHour"`
	InitialValue          int64     `json:"initialValue"`
	AvailableVehicleCount int       `json:"availableVehicleCount"`
	TotalVehicleCount     int       `json:"totalVehicleCount"`
	RentalCount           int       `json:"rentalCount"`
	ImageURL              string    `json:"imageUrl,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
}

// Vehicle is one physical, individually tracked unit of a model at a
// station. Read-only from this service's perspective.
type Vehicle struct {
	ID           int64   `json:"id"`
	ModelID      int64   `json:"modelId"`
	StationID    int64   `json:"stationId"`
	Plate        string  `json:"plate"`
	BatteryLevel float64 `json:"batteryLevel"`
	OdometerKm   int64   `json:"odometerKm"`
	Status       string  `json:"status"`
	Condition    string  `json:"condition,omitempty"`
}
