// internal/app/features/tourism/types.go
package tourism

import (
	"net/url"

	"github.com/dalemusser/tourismboard/internal/app/system/charts"
	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	"github.com/dalemusser/tourismboard/internal/app/system/numfmt"
	"github.com/dalemusser/tourismboard/internal/app/system/viewdata"
)

// option is one radio button or select entry.
type option struct {
	Value    string
	Label    string
	Selected bool
}

// chartImage points at a /charts/{name}.png endpoint for the current selection.
type chartImage struct {
	Name  string
	Title string
	URL   string
}

// deltaRow is one line of the year-over-year table.
type deltaRow struct {
	Label         string
	Domestic      string
	DomesticClass string
	Foreign       string
	ForeignClass  string
}

// reportLinkLabel is the text of the link that opens the PDF.
const reportLinkLabel = "Obrir els indicadors Turistics a l´entorn de Barcelona"

// reportLink is shown only when the PDF is present.
type reportLink struct {
	Available   bool
	Label       string
	ViewURL     string
	DownloadURL string
	FileName    string
}

// panelsData is everything under the selectors; re-rendered by HTMX.
type panelsData struct {
	CSRFToken     string
	ScopeLabel    string
	MarketLabel   string
	GlobalCards   []Card
	DistrictCards []Card
	Charts        []chartImage
	Deltas        []deltaRow
}

// dashboardData is the full page view model.
type dashboardData struct {
	viewdata.BaseVM
	Markets   []option
	Districts []option
	Report    reportLink
	Panels    panelsData
}

// apiResponse is the /api/dashboard body.
type apiResponse struct {
	Result        kpi.Result `json:"result"`
	GlobalCards   []Card     `json:"global_cards"`
	DistrictCards []Card     `json:"district_cards"`
	Locale        string     `json:"locale"`
}

var chartTitles = map[string]string{
	charts.Comparison: "Viatgers i pernoctacions",
	charts.AvgStay:    "Estada mitjana per mercat",
	charts.Occupancy:  "Ocupació per comarca",
}

// buildPanels formats res for the panels template.
func (h *Handler) buildPanels(res kpi.Result, csrfToken string) panelsData {
	scope := "Totes les comarques"
	if !res.Selection.AllDistricts() {
		scope = res.Selection.District
	}

	imgs := make([]chartImage, 0, len(charts.Names))
	q := url.Values{}
	q.Set("market", string(res.Selection.Market))
	for _, name := range charts.Names {
		u := "/charts/" + name + ".png"
		if name == charts.Comparison {
			u += "?" + q.Encode()
		}
		imgs = append(imgs, chartImage{Name: name, Title: chartTitles[name], URL: u})
	}

	return panelsData{
		CSRFToken:     csrfToken,
		ScopeLabel:    scope,
		MarketLabel:   res.Comparison.Label,
		GlobalCards:   globalCards(res, h.Num),
		DistrictCards: districtCards(res, h.Num),
		Charts:        imgs,
		Deltas:        deltaRows(res, h.Num),
	}
}

func deltaRows(res kpi.Result, num *numfmt.Formatter) []deltaRow {
	rows := make([]deltaRow, 0, len(res.Deltas))
	for _, d := range res.Deltas {
		rows = append(rows, deltaRow{
			Label:         d.Label,
			Domestic:      num.SignedPercent(d.Domestic),
			DomesticClass: trendClass(d.Domestic),
			Foreign:       num.SignedPercent(d.Foreign),
			ForeignClass:  trendClass(d.Foreign),
		})
	}
	return rows
}

func trendClass(v float64) string {
	switch {
	case v > 0:
		return "up"
	case v < 0:
		return "down"
	}
	return ""
}

// marketOptions lists every market row, the selected one checked.
func (h *Handler) marketOptions(sel kpi.Selection) []option {
	rows := h.Tables.Markets()
	out := make([]option, 0, len(rows))
	for _, m := range rows {
		out = append(out, option{Value: string(m.Market), Label: m.Label, Selected: m.Market == sel.Market})
	}
	return out
}

// districtOptions is the wildcard followed by every district in table order.
func (h *Handler) districtOptions(sel kpi.Selection) []option {
	names := h.Tables.DistrictNames()
	out := make([]option, 0, len(names)+1)
	out = append(out, option{Value: kpi.Wildcard, Label: "Totes", Selected: sel.AllDistricts()})
	for _, n := range names {
		out = append(out, option{Value: n, Label: n, Selected: n == sel.District})
	}
	return out
}

func (h *Handler) reportLink() reportLink {
	if h.Report == nil || !h.Report.Available() {
		h.Metrics.ReportWasMissing()
		return reportLink{}
	}
	return reportLink{
		Available:   true,
		Label:       reportLinkLabel,
		ViewURL:     "/report",
		DownloadURL: "/report/download",
		FileName:    h.Report.Name,
	}
}
