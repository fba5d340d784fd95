// Package pricing quotes parking fees in fixed 30-minute slabs.
package pricing

import (
	"errors"
	"time"
)

const (
	SlabDuration = 30 * time.Minute
	SlabRate     = 50

	DefaultExitOptionCount = 12
)

// ErrNonPositiveDuration is returned when exit is not after entry.
var ErrNonPositiveDuration = errors.New("exit time must be after entry time")

// PriceQuote pairs an offered exit time with its price.
type PriceQuote struct {
	ExitTime time.Time `json:"exitTime"`
	Price    int       `json:"price"`
}

// CalculatePrice rounds the elapsed time up to whole minutes, then up to whole
// slabs, and charges SlabRate per slab.
func CalculatePrice(entry, exit time.Time) (int, error) {
	elapsed := exit.Sub(entry)
	if elapsed <= 0 {
		return 0, ErrNonPositiveDuration
	}
	minutes := ceilDiv(int64(elapsed), int64(time.Minute))
	slabs := ceilDiv(minutes, int64(SlabDuration/time.Minute))
	return int(slabs) * SlabRate, nil
}

// GenerateExitTimeOptions returns count quotes at entry+30m, entry+60m, ...
// in ascending order.
func GenerateExitTimeOptions(entry time.Time, count int) []PriceQuote {
	if count <= 0 {
		return []PriceQuote{}
	}
	options := make([]PriceQuote, 0, count)
	for i := 1; i <= count; i++ {
		exit := entry.Add(time.Duration(i) * SlabDuration)
		// exit is always after entry here.
		price, _ := CalculatePrice(entry, exit)
		options = append(options, PriceQuote{ExitTime: exit, Price: price})
	}
	return options
}

// FindOption returns the quote whose exit time equals exit.
func FindOption(options []PriceQuote, exit time.Time) (PriceQuote, bool) {
	for _, o := range options {
		if o.ExitTime.Equal(exit) {
			return o, true
		}
	}
	return PriceQuote{}, false
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
