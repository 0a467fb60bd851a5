package model

// QuarterlyStats is one quarter of published statistics for a jurisdiction
type QuarterlyStats struct {
	Quarter              string  `json:"quarter"` // e.g., "2025-Q3"
	HomelessApplications float64 `json:"homeless_applications"` // per 10,000 households
	TempAccommodation    float64 `json:"temp_accommodation"`    // households per 10,000
	RentArrearsRate      float64 `json:"rent_arrears_rate"`     // percent
	UnemploymentRate     float64 `json:"unemployment_rate"`     // percent
	FuelPovertyRate      float64 `json:"fuel_poverty_rate"`     // percent
}

// PressurePoint is the composite index for one quarter
type PressurePoint struct {
	Quarter string  `json:"quarter"`
	Index   float64 `json:"index"` // 0-100
}

// PressureReport is the index series plus a linear trend forecast
type PressureReport struct {
	Jurisdiction string          `json:"jurisdiction"`
	Points       []PressurePoint `json:"points"`
	Trend        float64         `json:"trend"`    // index change per quarter
	Forecast     float64         `json:"forecast"` // projected next-quarter index
}

// JurisdictionIndex is one row of a cross-jurisdiction comparison
type JurisdictionIndex struct {
	Jurisdiction string  `json:"jurisdiction"`
	Quarter      string  `json:"quarter"`
	Index        float64 `json:"index"`
	Rank         int     `json:"rank"` // 1 = highest pressure
}
