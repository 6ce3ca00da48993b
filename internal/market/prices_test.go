package market

import (
	"math"
	"strings"
	"testing"
	"time"
)

// sequence returns a deterministic random source cycling through values.
func sequence(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

func TestPricesCoverTrackedCommodities(t *testing.T) {
	g := NewGenerator(time.UTC)
	prices := g.Prices()

	if len(prices) != len(commodityTable) {
		t.Fatalf("Expected %d quotes, got %d", len(commodityTable), len(prices))
	}

	names := make(map[string]bool)
	for _, p := range prices {
		names[strings.ToLower(p.Commodity)] = true
		if p.Source != Source {
			t.Errorf("Expected source %s, got %s", Source, p.Source)
		}
		if p.Unit == "" {
			t.Errorf("Expected unit for %s", p.Commodity)
		}
		if p.LastUpdate.IsZero() {
			t.Errorf("Expected lastUpdate for %s", p.Commodity)
		}
	}
	for _, want := range []string{"soja", "milho", "cafe", "cana de acucar"} {
		if !names[want] {
			t.Errorf("Expected %q among quotes, got %v", want, names)
		}
	}
}

func TestQuotePriceMatchesVariation(t *testing.T) {
	g := NewGenerator(time.UTC)

	for i := 0; i < 200; i++ {
		for _, c := range g.commodities {
			q, ok := g.Quote(c.Key)
			if !ok {
				t.Fatalf("Expected quote for %s", c.Key)
			}
			if q.Variation < -5 || q.Variation > 5 {
				t.Fatalf("Variation %v out of [-5, 5] for %s", q.Variation, c.Key)
			}
			want := c.BasePrice * (1 + q.Variation/100)
			if math.Abs(q.Price-want) > 0.005+1e-9 {
				t.Fatalf("Price %v does not match base %v with variation %v (want %v)", q.Price, c.BasePrice, q.Variation, want)
			}
		}
	}
}

func TestQuoteVariationBounds(t *testing.T) {
	g := NewGenerator(time.UTC)

	testCases := []struct {
		name      string
		random    float64
		variation float64
		price     float64
	}{
		{name: "lowest", random: 0, variation: -5, price: 134.9},
		{name: "middle", random: 0.5, variation: 0, price: 142},
		{name: "near highest", random: 0.9999999, variation: 5, price: 149.1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g.random = sequence(tc.random)
			q, ok := g.Quote("soja")
			if !ok {
				t.Fatal("Expected quote for soja")
			}
			if q.Variation != tc.variation {
				t.Errorf("Expected variation %v, got %v", tc.variation, q.Variation)
			}
			if q.Price != tc.price {
				t.Errorf("Expected price %v, got %v", tc.price, q.Price)
			}
		})
	}
}

func TestQuoteNormalizesName(t *testing.T) {
	g := NewGenerator(time.UTC)

	for _, name := range []string{"SOJA", " soja ", "Cana de Acucar", "cana-de-acucar"} {
		if _, ok := g.Quote(name); !ok {
			t.Errorf("Expected %q to resolve to a tracked commodity", name)
		}
	}
}

func TestUnknownCommodity(t *testing.T) {
	g := NewGenerator(time.UTC)

	if q, ok := g.Quote("unicornio"); ok {
		t.Errorf("Expected no quote for unknown commodity, got %+v", q)
	}
	if h := g.History("unicornio", 30); len(h) != 0 {
		t.Errorf("Expected empty history for unknown commodity, got %d points", len(h))
	}
}

func TestHistoryShape(t *testing.T) {
	g := NewGenerator(time.UTC)
	fixed := time.Date(2026, time.March, 2, 15, 4, 5, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	for _, days := range []int{1, 7, 30, 90} {
		history := g.History("milho", days)
		if len(history) != days+1 {
			t.Fatalf("Expected %d points for days=%d, got %d", days+1, days, len(history))
		}

		if last := history[len(history)-1].Date; last != "2026-03-02" {
			t.Errorf("Expected history to end today, got %s", last)
		}
		for i := 1; i < len(history); i++ {
			prev, err := time.Parse(dateLayout, history[i-1].Date)
			if err != nil {
				t.Fatalf("Bad date %q: %v", history[i-1].Date, err)
			}
			cur, err := time.Parse(dateLayout, history[i].Date)
			if err != nil {
				t.Fatalf("Bad date %q: %v", history[i].Date, err)
			}
			if cur.Sub(prev) != 24*time.Hour {
				t.Fatalf("Expected consecutive days, got %s then %s", history[i-1].Date, history[i].Date)
			}
			if history[i].Price <= 0 {
				t.Fatalf("Expected positive price, got %v", history[i].Price)
			}
		}
	}
}

func TestHistoryHonoursRequestedDays(t *testing.T) {
	g := NewGenerator(time.UTC)

	testCases := map[int]int{0: 1, 1: 2, 365: 366, 400: 401, -2: 1}
	for days, want := range testCases {
		if got := len(g.History("soja", days)); got != want {
			t.Errorf("History(soja, %d) returned %d points, want %d", days, got, want)
		}
	}
}

func TestHistoryUsesLocalCalendar(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	g := NewGenerator(brt)
	// 22:30 in Brasília, already the next day in UTC
	g.now = func() time.Time { return time.Date(2026, time.March, 3, 1, 30, 0, 0, time.UTC) }

	history := g.History("milho", 2)
	if last := history[len(history)-1].Date; last != "2026-03-02" {
		t.Errorf("Expected history to end on the local date 2026-03-02, got %s", last)
	}
	if first := history[0].Date; first != "2026-02-28" {
		t.Errorf("Expected history to start on 2026-02-28, got %s", first)
	}
}

func TestHistoryDailyDrift(t *testing.T) {
	g := NewGenerator(time.UTC)
	g.random = sequence(1.0, 0.0) // +1% then -1%

	history := g.History("soja", 2)
	want := []float64{143.42, 141.99, 143.41}
	for i, p := range history {
		if p.Price != want[i] {
			t.Errorf("Point %d: expected %v, got %v", i, want[i], p.Price)
		}
	}
}

func TestClampDays(t *testing.T) {
	testCases := map[int]int{-3: DefaultHistoryDays, 0: DefaultHistoryDays, 1: 1, 30: 30, 365: 365, 1000: MaxHistoryDays}
	for in, want := range testCases {
		if got := ClampDays(in); got != want {
			t.Errorf("ClampDays(%d) = %d, want %d", in, got, want)
		}
	}
}
