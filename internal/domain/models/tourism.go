// internal/domain/models/tourism.go
package models

// Market identifies a traveler segment in the market table.
type Market string

const (
	MarketDomestic Market = "Domestic"
	MarketForeign  Market = "Foreign"
	MarketTotal    Market = "Total"
)

// IsAggregate reports whether the market row is the sum of the others.
func (m Market) IsAggregate() bool {
	return m == MarketTotal
}

// MarketStat is one row of the market table.
type MarketStat struct {
	Market     Market  `json:"market" yaml:"market"`
	Label      string  `json:"label" yaml:"label"`
	Travelers  int64   `json:"travelers" yaml:"travelers"`
	Overnights int64   `json:"overnights" yaml:"overnights"`
	AvgStay    float64 `json:"avg_stay" yaml:"avg_stay"` // nights
}

// Indicator names a row of the year-over-year table.
type Indicator string

const (
	IndicatorTravelers  Indicator = "Travelers"
	IndicatorOvernights Indicator = "Overnights"
	IndicatorAvgStay    Indicator = "AvgStay"
)

// YearOverYearDelta holds signed fractional changes per segment.
// Display only.
type YearOverYearDelta struct {
	Indicator Indicator `json:"indicator" yaml:"indicator"`
	Label     string    `json:"label" yaml:"label"`
	Domestic  float64   `json:"domestic" yaml:"domestic"`
	Foreign   float64   `json:"foreign" yaml:"foreign"`
}

// DistrictStat is one row of the district (comarca) table.
// Both rates are fractions in [0,1].
type DistrictStat struct {
	Name      string  `json:"name" yaml:"name"`
	Occupancy float64 `json:"occupancy" yaml:"occupancy"`
	Opening   float64 `json:"opening" yaml:"opening"`
}
