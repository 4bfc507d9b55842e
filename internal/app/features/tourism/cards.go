// internal/app/features/tourism/cards.go
package tourism

import (
	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	"github.com/dalemusser/tourismboard/internal/app/system/numfmt"
)

// Card colors.
const (
	colorTravelers  = "#FF7F0E"
	colorOvernights = "#2CA02C"
	colorAvgStay    = "#9467BD"
	colorOccupancy  = "#1F77B4"
	colorOpening    = "#17BECF"
	colorMax        = "#2CA02C"
	colorMin        = "#D62728"
)

// Card is one KPI tile. Every tile on the page goes through NewCard and the
// tourism_kpi_card template.
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Color string `json:"color"`
	Note  string `json:"note,omitempty"`
}

// NewCard builds a card from an already formatted value.
func NewCard(label, value, color string) Card {
	return Card{Label: label, Value: value, Color: color}
}

// withNote attaches a secondary line (e.g. the district holding the max).
func (c Card) withNote(note string) Card {
	c.Note = note
	return c
}

// globalCards is the first card row: travelers, overnights, average stay.
func globalCards(res kpi.Result, num *numfmt.Formatter) []Card {
	return []Card{
		NewCard("Total Viatgers", num.Count(res.Global.Travelers), colorTravelers),
		NewCard("Total Pernoctacions", num.Count(res.Global.Overnights), colorOvernights),
		NewCard("Estada Mitjana", num.Nights(res.Global.AvgStay), colorAvgStay),
	}
}

// districtCards is the second card row, driven by the district selection.
func districtCards(res kpi.Result, num *numfmt.Formatter) []Card {
	d := res.District
	occLabel, openLabel := "Ocupació", "Obertura"
	if res.Selection.AllDistricts() {
		occLabel, openLabel = "Ocupació mitjana", "Obertura mitjana"
	}
	return []Card{
		NewCard(occLabel, num.Percent(d.Occupancy), colorOccupancy),
		NewCard(openLabel, num.Percent(d.Opening), colorOpening),
		NewCard("Ocupació màxima", num.Percent(d.MaxOccupancy), colorMax).withNote(d.MaxDistrict),
		NewCard("Ocupació mínima", num.Percent(d.MinOccupancy), colorMin).withNote(d.MinDistrict),
	}
}
