package service

import (
	"errors"
	"sort"

	"github.com/montanaflynn/stats"

	"analyseme/internal/model"
)

var ErrNoQuarters = errors.New("no quarterly rows supplied")

// Metric ceilings for normalization. A metric at or above its ceiling
// contributes its full weight to the index.
const (
	ceilHomelessApplications = 80.0 // per 10,000 households
	ceilTempAccommodation    = 50.0 // per 10,000 households
	ceilRentArrears          = 25.0 // percent
	ceilUnemployment         = 15.0 // percent
	ceilFuelPoverty          = 35.0 // percent
)

// PressureService derives a composite housing-pressure index from published
// quarterly statistics and fits a linear trend over it. It backs the
// comparative analytics view; the assessment core never depends on it.
type PressureService struct{}

// NewPressureService creates a new pressure service
func NewPressureService() *PressureService {
	return &PressureService{}
}

// ComputeIndex collapses one quarter's statistics into a 0-100 composite.
// Housing metrics dominate the weighting.
func (s *PressureService) ComputeIndex(q model.QuarterlyStats) float64 {
	index := 100 * (0.30*normalize(q.HomelessApplications, ceilHomelessApplications) +
		0.25*normalize(q.TempAccommodation, ceilTempAccommodation) +
		0.20*normalize(q.RentArrearsRate, ceilRentArrears) +
		0.15*normalize(q.UnemploymentRate, ceilUnemployment) +
		0.10*normalize(q.FuelPovertyRate, ceilFuelPoverty))

	rounded, _ := stats.Round(index, 1)
	return rounded
}

// Report computes the index series for one jurisdiction plus a linear trend
// and a next-quarter forecast. Rows are taken in the given (chronological)
// order.
func (s *PressureService) Report(jurisdiction string, rows []model.QuarterlyStats) (*model.PressureReport, error) {
	if len(rows) == 0 {
		return nil, ErrNoQuarters
	}

	points := make([]model.PressurePoint, 0, len(rows))
	series := make(stats.Series, 0, len(rows))
	for i, row := range rows {
		index := s.ComputeIndex(row)
		points = append(points, model.PressurePoint{Quarter: row.Quarter, Index: index})
		series = append(series, stats.Coordinate{X: float64(i), Y: index})
	}

	report := &model.PressureReport{
		Jurisdiction: jurisdiction,
		Points:       points,
		Forecast:     points[len(points)-1].Index, // flat when no trend can be fit
	}

	if len(series) >= 2 {
		fitted, err := stats.LinearRegression(series)
		if err != nil {
			return nil, err
		}
		slope := fitted[1].Y - fitted[0].Y
		trend, _ := stats.Round(slope, 2)
		forecast, _ := stats.Round(clamp(fitted[len(fitted)-1].Y+slope, 0, 100), 1)
		report.Trend = trend
		report.Forecast = forecast
	}

	return report, nil
}

// Compare ranks jurisdictions by their latest quarter's index, highest
// pressure first. Ties break alphabetically for a stable ordering.
func (s *PressureService) Compare(tables map[string][]model.QuarterlyStats) []model.JurisdictionIndex {
	entries := make([]model.JurisdictionIndex, 0, len(tables))
	for jurisdiction, rows := range tables {
		if len(rows) == 0 {
			continue
		}
		latest := rows[len(rows)-1]
		entries = append(entries, model.JurisdictionIndex{
			Jurisdiction: jurisdiction,
			Quarter:      latest.Quarter,
			Index:        s.ComputeIndex(latest),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Index != entries[j].Index {
			return entries[i].Index > entries[j].Index
		}
		return entries[i].Jurisdiction < entries[j].Jurisdiction
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}

func normalize(value, ceiling float64) float64 {
	return clamp(value/ceiling, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
