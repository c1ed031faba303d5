package indicator

import (
	"fmt"
	"math/rand"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

// barsFromCloses builds flat bars (open = high = low = close) timestamped by index
func barsFromCloses(closes ...float64) []models.Bar {
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{Time: i, Open: c, High: c, Low: c, Close: c}
	}
	return bars
}

// randomWalk returns n deterministic prices around 100
func randomWalk(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	price := 100.0
	for i := range values {
		price += rng.NormFloat64()
		values[i] = price
	}
	return values
}

// randomBars builds OHLCV bars from a random walk with business-day timestamps
func randomBars(n int, seed int64) []models.Bar {
	rng := rand.New(rand.NewSource(seed))
	closes := randomWalk(n, seed)
	bars := make([]models.Bar, n)
	for i, c := range closes {
		spread := rng.Float64() * 2
		bars[i] = models.Bar{
			Time:   dayLabel(i),
			Open:   c - spread/2,
			High:   c + spread,
			Low:    c - spread,
			Close:  c,
			Volume: 1000 + rng.Float64()*500,
		}
	}
	return bars
}

func dayLabel(i int) string {
	return fmt.Sprintf("day-%04d", i)
}
