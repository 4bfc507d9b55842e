// internal/app/store/reference/defaults.go
package referencestore

import "github.com/dalemusser/tourismboard/internal/domain/models"

// DefaultMarkets returns the builtin market table.
func DefaultMarkets() []models.MarketStat {
	return []models.MarketStat{
		{Market: models.MarketDomestic, Label: "Domèstic", Travelers: 289817, Overnights: 842852, AvgStay: 2.9},
		{Market: models.MarketForeign, Label: "Estranger", Travelers: 415444, Overnights: 1744508, AvgStay: 4.2},
		{Market: models.MarketTotal, Label: "Total", Travelers: 705261, Overnights: 2587360, AvgStay: 3.7},
	}
}

// DefaultDeltas returns the builtin year-over-year table.
func DefaultDeltas() []models.YearOverYearDelta {
	return []models.YearOverYearDelta{
		{Indicator: models.IndicatorTravelers, Label: "Viatgers", Domestic: 0.054, Foreign: 0.068},
		{Indicator: models.IndicatorOvernights, Label: "Pernoctacions", Domestic: 0.029, Foreign: -0.014},
		{Indicator: models.IndicatorAvgStay, Label: "Estada mitjana", Domestic: -0.036, Foreign: -0.065},
	}
}

// DefaultDistricts returns the builtin district table.
func DefaultDistricts() []models.DistrictStat {
	return []models.DistrictStat{
		{Name: "Maresme", Occupancy: 0.871, Opening: 0.976},
		{Name: "Baix Llobregat", Occupancy: 0.789, Opening: 0.985},
		{Name: "Vallès Occidental", Occupancy: 0.779, Opening: 1.0},
		{Name: "Garraf", Occupancy: 0.753, Opening: 0.962},
		{Name: "Anoia", Occupancy: 0.694, Opening: 0.907},
		{Name: "Vallès Oriental", Occupancy: 0.66, Opening: 0.99},
		{Name: "Osona", Occupancy: 0.656, Opening: 0.966},
		{Name: "Alt Penedès", Occupancy: 0.644, Opening: 0.975},
		{Name: "Berguedà", Occupancy: 0.61, Opening: 0.959},
		{Name: "Bages", Occupancy: 0.575, Opening: 0.967},
		{Name: "Moianès", Occupancy: 0.351, Opening: 0.768},
	}
}

// Default returns a Store over the builtin tables.
func Default() *Store {
	s, err := New(DefaultMarkets(), DefaultDeltas(), DefaultDistricts())
	if err != nil {
		// builtin rows are static; a failure here is a programming error
		panic(err)
	}
	return s
}
