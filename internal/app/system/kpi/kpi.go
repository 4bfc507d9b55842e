// Package kpi derives the dashboard figures from the reference tables.
//
// Compute is a pure function of (tables, selection, options): calling it
// twice with the same inputs yields identical results. It never touches the
// request, the session, or the report file.
package kpi

import (
	"errors"
	"fmt"
	"strings"

	referencestore "github.com/dalemusser/tourismboard/internal/app/store/reference"
	"github.com/dalemusser/tourismboard/internal/domain/models"
	"github.com/montanaflynn/stats"
)

var (
	ErrUnknownMarket   = errors.New("unknown market")
	ErrUnknownDistrict = errors.New("unknown district")
)

// Wildcard selects every district.
const Wildcard = referencestore.Wildcard

// AvgStayMode chooses how the global average-stay KPI is derived.
type AvgStayMode string

const (
	// AvgStayWeighted weights each segment's average stay by its travelers.
	AvgStayWeighted AvgStayMode = "weighted"
	// AvgStaySegments is the unweighted mean over segment rows.
	AvgStaySegments AvgStayMode = "segments"
	// AvgStayAllRows is the unweighted mean over every market row,
	// aggregate row included. This is the figure the first published
	// dashboard showed (3.6 nights on the builtin tables).
	AvgStayAllRows AvgStayMode = "all_rows"
)

// ParseAvgStayMode validates a configured mode. Empty means weighted.
func ParseAvgStayMode(s string) (AvgStayMode, error) {
	switch AvgStayMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", AvgStayWeighted:
		return AvgStayWeighted, nil
	case AvgStaySegments:
		return AvgStaySegments, nil
	case AvgStayAllRows:
		return AvgStayAllRows, nil
	}
	return "", fmt.Errorf("unknown average stay mode %q (want weighted, segments or all_rows)", s)
}

// Options tunes Compute.
type Options struct {
	AvgStayMode AvgStayMode
}

// Selection is the per-session UI state.
type Selection struct {
	Market   models.Market `json:"market"`
	District string        `json:"district"`
}

// AllDistricts reports whether the wildcard is selected.
func (s Selection) AllDistricts() bool {
	return s.District == Wildcard
}

// DefaultSelection is the first market and every district.
func DefaultSelection(t *referencestore.Store) Selection {
	return Selection{Market: t.DefaultMarket(), District: Wildcard}
}

// ParseSelection validates raw selector values against the tables. Empty
// values take the defaults.
func ParseSelection(t *referencestore.Store, market, district string) (Selection, error) {
	sel := DefaultSelection(t)

	if m := strings.TrimSpace(market); m != "" {
		if _, ok := t.Market(models.Market(m)); !ok {
			return sel, fmt.Errorf("%w: %q", ErrUnknownMarket, m)
		}
		sel.Market = models.Market(m)
	}

	if d := strings.TrimSpace(district); d != "" && d != Wildcard {
		if _, ok := t.District(d); !ok {
			return sel, fmt.Errorf("%w: %q", ErrUnknownDistrict, d)
		}
		sel.District = d
	}

	return sel, nil
}

// Global holds the three headline KPIs.
type Global struct {
	Travelers  int64   `json:"travelers"`
	Overnights int64   `json:"overnights"`
	AvgStay    float64 `json:"avg_stay"`
}

// Comparison is the two-series view of the selected market.
type Comparison struct {
	Market     models.Market `json:"market"`
	Label      string        `json:"label"`
	Travelers  int64         `json:"travelers"`
	Overnights int64         `json:"overnights"`
}

// Share is one slice of the average-stay breakdown.
type Share struct {
	Market   models.Market `json:"market"`
	Label    string        `json:"label"`
	AvgStay  float64       `json:"avg_stay"`
	Fraction float64       `json:"fraction"`
}

// DistrictKPIs are the occupancy/opening figures for the selected scope.
type DistrictKPIs struct {
	Scope        string  `json:"scope"`
	Occupancy    float64 `json:"occupancy"`
	Opening      float64 `json:"opening"`
	MaxOccupancy float64 `json:"max_occupancy"`
	MaxDistrict  string  `json:"max_district"`
	MinOccupancy float64 `json:"min_occupancy"`
	MinDistrict  string  `json:"min_district"`
}

// BarPoint is one category of a bar series.
type BarPoint struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// Result is everything the dashboard draws for one selection.
type Result struct {
	Selection  Selection                  `json:"selection"`
	Global     Global                     `json:"global"`
	Comparison Comparison                 `json:"comparison"`
	Shares     []Share                    `json:"avg_stay_shares"`
	District   DistrictKPIs               `json:"district"`
	Occupancy  []BarPoint                 `json:"occupancy"`
	Deltas     []models.YearOverYearDelta `json:"year_over_year"`
}

// Compute derives the dashboard figures for sel.
func Compute(t *referencestore.Store, sel Selection, opts Options) (Result, error) {
	if sel.Market == "" {
		sel.Market = t.DefaultMarket()
	}
	if sel.District == "" {
		sel.District = Wildcard
	}

	global, err := globalKPIs(t, opts.AvgStayMode)
	if err != nil {
		return Result{}, err
	}

	cmp, err := comparison(t, sel.Market)
	if err != nil {
		return Result{}, err
	}

	shares, err := avgStayShares(t)
	if err != nil {
		return Result{}, err
	}

	dk, err := districtKPIs(t, sel.District)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Selection:  sel,
		Global:     global,
		Comparison: cmp,
		Shares:     shares,
		District:   dk,
		Occupancy:  occupancySeries(t),
		Deltas:     t.Deltas(),
	}, nil
}

// globalKPIs sums the segment rows so the aggregate row is not counted twice.
func globalKPIs(t *referencestore.Store, mode AvgStayMode) (Global, error) {
	segs := t.Segments()

	var g Global
	for _, m := range segs {
		g.Travelers += m.Travelers
		g.Overnights += m.Overnights
	}

	var err error
	switch mode {
	case AvgStaySegments:
		g.AvgStay, err = stats.Mean(avgStays(segs))
	case AvgStayAllRows:
		g.AvgStay, err = stats.Mean(avgStays(t.Markets()))
	default:
		g.AvgStay, err = weightedAvgStay(segs)
	}
	if err != nil {
		return Global{}, fmt.Errorf("average stay: %w", err)
	}
	return g, nil
}

func weightedAvgStay(segs []models.MarketStat) (float64, error) {
	weighted := make([]float64, len(segs))
	weights := make([]float64, len(segs))
	for i, m := range segs {
		weighted[i] = m.AvgStay * float64(m.Travelers)
		weights[i] = float64(m.Travelers)
	}

	num, err := stats.Sum(weighted)
	if err != nil {
		return 0, err
	}
	den, err := stats.Sum(weights)
	if err != nil {
		return 0, err
	}
	if den == 0 {
		return stats.Mean(avgStays(segs))
	}
	return num / den, nil
}

func comparison(t *referencestore.Store, market models.Market) (Comparison, error) {
	m, ok := t.Market(market)
	if !ok {
		return Comparison{}, fmt.Errorf("%w: %q", ErrUnknownMarket, market)
	}
	return Comparison{
		Market:     m.Market,
		Label:      m.Label,
		Travelers:  m.Travelers,
		Overnights: m.Overnights,
	}, nil
}

// avgStayShares covers every market row, aggregate included.
func avgStayShares(t *referencestore.Store) ([]Share, error) {
	rows := t.Markets()
	total, err := stats.Sum(avgStays(rows))
	if err != nil {
		return nil, fmt.Errorf("average stay shares: %w", err)
	}

	out := make([]Share, len(rows))
	for i, m := range rows {
		out[i] = Share{Market: m.Market, Label: m.Label, AvgStay: m.AvgStay}
		if total > 0 {
			out[i].Fraction = m.AvgStay / total
		}
	}
	return out, nil
}

func districtKPIs(t *referencestore.Store, district string) (DistrictKPIs, error) {
	if district != Wildcard {
		d, ok := t.District(district)
		if !ok {
			return DistrictKPIs{}, fmt.Errorf("%w: %q", ErrUnknownDistrict, district)
		}
		return DistrictKPIs{
			Scope:        d.Name,
			Occupancy:    d.Occupancy,
			Opening:      d.Opening,
			MaxOccupancy: d.Occupancy,
			MaxDistrict:  d.Name,
			MinOccupancy: d.Occupancy,
			MinDistrict:  d.Name,
		}, nil
	}

	rows := t.Districts()
	occ := make([]float64, len(rows))
	opn := make([]float64, len(rows))
	for i, d := range rows {
		occ[i] = d.Occupancy
		opn[i] = d.Opening
	}

	out := DistrictKPIs{Scope: Wildcard}
	var err error
	if out.Occupancy, err = stats.Mean(occ); err != nil {
		return DistrictKPIs{}, fmt.Errorf("mean occupancy: %w", err)
	}
	if out.Opening, err = stats.Mean(opn); err != nil {
		return DistrictKPIs{}, fmt.Errorf("mean opening: %w", err)
	}
	if out.MaxOccupancy, err = stats.Max(occ); err != nil {
		return DistrictKPIs{}, fmt.Errorf("max occupancy: %w", err)
	}
	if out.MinOccupancy, err = stats.Min(occ); err != nil {
		return DistrictKPIs{}, fmt.Errorf("min occupancy: %w", err)
	}

	// first row wins on ties, matching table order
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Occupancy == out.MaxOccupancy {
			out.MaxDistrict = rows[i].Name
		}
		if rows[i].Occupancy == out.MinOccupancy {
			out.MinDistrict = rows[i].Name
		}
	}
	return out, nil
}

// occupancySeries keeps table order; it is not re-sorted by value.
func occupancySeries(t *referencestore.Store) []BarPoint {
	rows := t.Districts()
	out := make([]BarPoint, len(rows))
	for i, d := range rows {
		out[i] = BarPoint{Category: d.Name, Value: d.Occupancy}
	}
	return out
}

func avgStays(rows []models.MarketStat) []float64 {
	out := make([]float64, len(rows))
	for i, m := range rows {
		out[i] = m.AvgStay
	}
	return out
}
