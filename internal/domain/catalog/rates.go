package catalog

import (
	"math"
	"sort"
)

// Item is an identifier from the game's closed item catalog
type Item string

func (i Item) String() string {
	return string(i)
}

// ItemRate is a quantity of an item per minute
type ItemRate struct {
	Item Item    `json:"item" yaml:"item"`
	Rate float64 `json:"rate" yaml:"rate"`
}

// Rates maps items to per-minute quantities. A nil Rates is a valid empty mapping
// for reads; use NewRates before writing.
type Rates map[Item]float64

// NewRates creates an empty Rates mapping
func NewRates() Rates {
	return make(Rates)
}

// Add accumulates qty for item
func (r Rates) Add(item Item, qty float64) {
	r[item] += qty
}

// Merge adds every entry of other, multiplied by factor
func (r Rates) Merge(other Rates, factor float64) {
	for item, qty := range other {
		r[item] += qty * factor
	}
}

// Clone returns an independent copy
func (r Rates) Clone() Rates {
	out := make(Rates, len(r))
	for item, qty := range r {
		out[item] = qty
	}
	return out
}

// Get returns the quantity for item, zero if absent
func (r Rates) Get(item Item) float64 {
	return r[item]
}

// Total returns the sum over all items
func (r Rates) Total() float64 {
	total := 0.0
	for _, item := range r.Items() {
		total += r[item]
	}
	return total
}

// Items returns the items present, sorted lexically for deterministic iteration
func (r Rates) Items() []Item {
	items := make([]Item, 0, len(r))
	for item := range r {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	return items
}

// Compact drops entries whose magnitude is below epsilon
func (r Rates) Compact(epsilon float64) Rates {
	out := make(Rates, len(r))
	for item, qty := range r {
		if math.Abs(qty) >= epsilon {
			out[item] = qty
		}
	}
	return out
}

// EqualWithin compares two mappings item by item within tolerance, treating
// missing entries as zero
func (r Rates) EqualWithin(other Rates, tolerance float64) bool {
	for item, qty := range r {
		if math.Abs(qty-other[item]) > tolerance {
			return false
		}
	}
	for item, qty := range other {
		if _, seen := r[item]; !seen && math.Abs(qty) > tolerance {
			return false
		}
	}
	return true
}

// RatesFromList folds a list of item rates into a mapping
func RatesFromList(list []ItemRate) Rates {
	out := make(Rates, len(list))
	for _, ir := range list {
		out[ir.Item] += ir.Rate
	}
	return out
}
