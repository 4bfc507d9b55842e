// internal/app/store/reference/referencestore.go
package referencestore

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dalemusser/tourismboard/internal/domain/models"
	"go.yaml.in/yaml/v3"
)

// ErrInvalidTables is wrapped by every validation failure from New and LoadFile.
var ErrInvalidTables = errors.New("invalid reference tables")

// Store holds the three reference tables. It is built once at startup and
// never mutated; accessors hand out copies so callers cannot alter it.
type Store struct {
	markets   []models.MarketStat
	deltas    []models.YearOverYearDelta
	districts []models.DistrictStat

	marketIdx   map[models.Market]int
	districtIdx map[string]int
}

// tablesFile is the YAML layout accepted by LoadFile.
type tablesFile struct {
	Markets   []models.MarketStat        `yaml:"markets"`
	Deltas    []models.YearOverYearDelta `yaml:"year_over_year"`
	Districts []models.DistrictStat      `yaml:"districts"`
}

// New validates the rows and builds a Store. Row order is preserved and is
// the display order for selectors and charts.
func New(markets []models.MarketStat, deltas []models.YearOverYearDelta, districts []models.DistrictStat) (*Store, error) {
	if len(markets) == 0 {
		return nil, fmt.Errorf("%w: market table is empty", ErrInvalidTables)
	}
	if len(districts) == 0 {
		return nil, fmt.Errorf("%w: district table is empty", ErrInvalidTables)
	}

	s := &Store{
		markets:     append([]models.MarketStat(nil), markets...),
		deltas:      append([]models.YearOverYearDelta(nil), deltas...),
		districts:   append([]models.DistrictStat(nil), districts...),
		marketIdx:   make(map[models.Market]int, len(markets)),
		districtIdx: make(map[string]int, len(districts)),
	}

	segments := 0
	for i, m := range s.markets {
		if strings.TrimSpace(string(m.Market)) == "" {
			return nil, fmt.Errorf("%w: market row %d has no key", ErrInvalidTables, i)
		}
		if _, dup := s.marketIdx[m.Market]; dup {
			return nil, fmt.Errorf("%w: duplicate market %q", ErrInvalidTables, m.Market)
		}
		if m.Travelers < 0 || m.Overnights < 0 || m.AvgStay < 0 {
			return nil, fmt.Errorf("%w: market %q has negative values", ErrInvalidTables, m.Market)
		}
		if m.Label == "" {
			s.markets[i].Label = string(m.Market)
		}
		if !m.Market.IsAggregate() {
			segments++
		}
		s.marketIdx[m.Market] = i
	}
	if segments == 0 {
		return nil, fmt.Errorf("%w: market table has no segment rows", ErrInvalidTables)
	}

	for i, d := range s.districts {
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("%w: district row %d has no name", ErrInvalidTables, i)
		}
		if d.Name == Wildcard {
			return nil, fmt.Errorf("%w: district name %q is reserved", ErrInvalidTables, Wildcard)
		}
		if _, dup := s.districtIdx[d.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate district %q", ErrInvalidTables, d.Name)
		}
		if !isFraction(d.Occupancy) || !isFraction(d.Opening) {
			return nil, fmt.Errorf("%w: district %q rates must be within [0,1]", ErrInvalidTables, d.Name)
		}
		s.districtIdx[d.Name] = i
	}

	for i, d := range s.deltas {
		if d.Label == "" {
			s.deltas[i].Label = string(d.Indicator)
		}
	}

	return s, nil
}

// Wildcard is the district selector value meaning "all districts".
const Wildcard = "*"

// LoadFile reads tables from a YAML file. Any section left out of the file
// falls back to the builtin rows.
func LoadFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables file: %w", err)
	}

	var f tablesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidTables, path, err)
	}

	if len(f.Markets) == 0 {
		f.Markets = DefaultMarkets()
	}
	if len(f.Deltas) == 0 {
		f.Deltas = DefaultDeltas()
	}
	if len(f.Districts) == 0 {
		f.Districts = DefaultDistricts()
	}
	return New(f.Markets, f.Deltas, f.Districts)
}

// Markets returns every market row in table order.
func (s *Store) Markets() []models.MarketStat {
	return append([]models.MarketStat(nil), s.markets...)
}

// Segments returns the market rows that are not aggregates of other rows.
func (s *Store) Segments() []models.MarketStat {
	out := make([]models.MarketStat, 0, len(s.markets))
	for _, m := range s.markets {
		if !m.Market.IsAggregate() {
			out = append(out, m)
		}
	}
	return out
}

// Market looks up a market row by key.
func (s *Store) Market(m models.Market) (models.MarketStat, bool) {
	i, ok := s.marketIdx[m]
	if !ok {
		return models.MarketStat{}, false
	}
	return s.markets[i], true
}

// DefaultMarket is the first market row.
func (s *Store) DefaultMarket() models.Market {
	return s.markets[0].Market
}

// Deltas returns the year-over-year rows in table order.
func (s *Store) Deltas() []models.YearOverYearDelta {
	return append([]models.YearOverYearDelta(nil), s.deltas...)
}

// Districts returns every district row in insertion order.
func (s *Store) Districts() []models.DistrictStat {
	return append([]models.DistrictStat(nil), s.districts...)
}

// District looks up a district row by name.
func (s *Store) District(name string) (models.DistrictStat, bool) {
	i, ok := s.districtIdx[name]
	if !ok {
		return models.DistrictStat{}, false
	}
	return s.districts[i], true
}

// DistrictNames returns the district names in insertion order.
func (s *Store) DistrictNames() []string {
	out := make([]string, len(s.districts))
	for i, d := range s.districts {
		out[i] = d.Name
	}
	return out
}

// CheckTotals reports whether the aggregate market row equals the sum of the
// segment rows. A nil return means either no aggregate row exists or it
// matches. Mismatches are not fatal; bootstrap only logs them.
func (s *Store) CheckTotals() error {
	total, ok := s.Market(models.MarketTotal)
	if !ok {
		return nil
	}

	var travelers, overnights int64
	for _, m := range s.Segments() {
		travelers += m.Travelers
		overnights += m.Overnights
	}

	var problems []string
	if travelers != total.Travelers {
		problems = append(problems, fmt.Sprintf("travelers: segments=%d total=%d", travelers, total.Travelers))
	}
	if overnights != total.Overnights {
		problems = append(problems, fmt.Sprintf("overnights: segments=%d total=%d", overnights, total.Overnights))
	}
	if len(problems) > 0 {
		return fmt.Errorf("total row does not match segments (%s)", strings.Join(problems, "; "))
	}
	return nil
}

func isFraction(v float64) bool {
	return v >= 0 && v <= 1
}
