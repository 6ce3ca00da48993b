// Package market generates synthetic commodity quotes and price histories
// from a fixed table of base prices plus random jitter.
package market

import (
	"agrotech-backend/internal/models"
	"math"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Source is the label attached to every quote.
const Source = "CEPEA/ESALQ"

const (
	// DefaultHistoryDays is used when the caller does not ask for a window.
	DefaultHistoryDays = 30
	// MaxHistoryDays bounds the history window.
	MaxHistoryDays = 365

	maxSpotVariation  = 5.0 // %
	maxDailyVariation = 1.0 // %

	dateLayout = "2006-01-02"
)

// Commodity is one tracked commodity and its reference price.
type Commodity struct {
	Key         string // normalized lookup key, e.g. "cana-de-acucar"
	DisplayName string
	BasePrice   float64
	Unit        string
}

var commodityTable = []struct {
	key   string
	price float64
	unit  string
}{
	{"soja", 142.0, "R$/sc"},
	{"milho", 58.5, "R$/sc"},
	{"cafe", 1450.0, "R$/sc"},
	{"algodao", 135.0, "R$/@"},
	{"trigo", 75.0, "R$/sc"},
	{"cana-de-acucar", 145.0, "R$/ton"},
	{"arroz", 95.0, "R$/sc"},
	{"feijao", 280.0, "R$/sc"},
	{"girassol", 85.0, "R$/sc"},
	{"sorgo", 42.0, "R$/sc"},
}

// Generator produces quotes and histories. It holds no mutable state, so a
// single instance is safe for concurrent use.
type Generator struct {
	commodities []Commodity
	byKey       map[string]Commodity

	random func() float64 // uniform in [0, 1)
	now    func() time.Time
	loc    *time.Location // calendar days of the history
}

// NewGenerator returns a Generator over the tracked commodity table. History
// dates follow the calendar in loc; nil means the server's local zone.
func NewGenerator(loc *time.Location) *Generator {
	if loc == nil {
		loc = time.Local
	}
	// cases.Caser is stateful; display names are computed once here and only read afterwards.
	title := cases.Title(language.BrazilianPortuguese)

	g := &Generator{
		byKey:  make(map[string]Commodity, len(commodityTable)),
		random: rand.Float64,
		now:    time.Now,
		loc:    loc,
	}
	for _, c := range commodityTable {
		commodity := Commodity{
			Key:         c.key,
			DisplayName: title.String(strings.ReplaceAll(c.key, "-", " ")),
			BasePrice:   c.price,
			Unit:        c.unit,
		}
		g.commodities = append(g.commodities, commodity)
		g.byKey[c.key] = commodity
	}
	return g
}

// NormalizeName maps user input such as " Cana de Acucar" to a lookup key.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// Lookup returns the tracked commodity for name.
func (g *Generator) Lookup(name string) (Commodity, bool) {
	c, ok := g.byKey[NormalizeName(name)]
	return c, ok
}

// Prices returns a fresh quote for every tracked commodity.
func (g *Generator) Prices() []models.CommodityQuote {
	now := g.now().UTC()
	quotes := make([]models.CommodityQuote, 0, len(g.commodities))
	for _, c := range g.commodities {
		quotes = append(quotes, g.quote(c, now))
	}
	return quotes
}

// Quote returns a fresh quote for one commodity. Unknown names yield false.
func (g *Generator) Quote(name string) (models.CommodityQuote, bool) {
	c, ok := g.Lookup(name)
	if !ok {
		return models.CommodityQuote{}, false
	}
	return g.quote(c, g.now().UTC()), true
}

func (g *Generator) quote(c Commodity, now time.Time) models.CommodityQuote {
	variation := round2(g.uniform(maxSpotVariation))
	return models.CommodityQuote{
		Commodity:  c.DisplayName,
		Price:      round2(c.BasePrice * (1 + variation/100)),
		Unit:       c.Unit,
		Variation:  variation,
		Source:     Source,
		LastUpdate: now,
	}
}

// History walks from days ago to today, compounding an independent daily
// change in [-1%, +1%] from the base price. It returns days+1 points ordered
// oldest first, or nil for an unknown commodity. Negative days count as 0.
// Defaults and bounds for user input are applied by callers with ClampDays.
func (g *Generator) History(name string, days int) []models.PricePoint {
	c, ok := g.Lookup(name)
	if !ok {
		return nil
	}
	if days < 0 {
		days = 0
	}

	today := g.now().In(g.loc)
	history := make([]models.PricePoint, 0, days+1)
	price := c.BasePrice
	for i := days; i >= 0; i-- {
		price *= 1 + g.uniform(maxDailyVariation)/100
		history = append(history, models.PricePoint{
			Date:  today.AddDate(0, 0, -i).Format(dateLayout),
			Price: round2(price),
		})
	}
	return history
}

// ClampDays applies the default and upper bound to a requested history window
// taken from a request.
func ClampDays(days int) int {
	if days <= 0 {
		return DefaultHistoryDays
	}
	if days > MaxHistoryDays {
		return MaxHistoryDays
	}
	return days
}

// uniform returns a value in [-limit, limit).
func (g *Generator) uniform(limit float64) float64 {
	return (g.random()*2 - 1) * limit
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
