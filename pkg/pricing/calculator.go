package pricing

import (
	"math"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Summary is the derived booking price. All amounts are non-negative.
type Summary struct {
	Strategy       model.PricingStrategy `json:"strategy"`
	Category       string                `json:"category,omitempty"`
	Tier           string                `json:"tier,omitempty"`
	BasePrice      float64               `json:"basePrice"`
	Quantity       int                   `json:"quantity"`
	Multiplier     float64               `json:"multiplier"`
	Subtotal       float64               `json:"subtotal"`
	DiscountRate   float64               `json:"discountRate"`
	DiscountAmount float64               `json:"discountAmount"`
	Total          float64               `json:"total"`
	Currency       string                `json:"currency,omitempty"`
}

// Priced reports whether a base price was found.
func (s Summary) Priced() bool {
	return s.BasePrice > 0
}

// DiscountPercent returns the discount as a whole percentage.
func (s Summary) DiscountPercent() float64 {
	return math.Round(s.DiscountRate * 100)
}

var groupMultipliers = map[string]int{
	"1":     1,
	"2":     2,
	"3-5":   4,
	"6-10":  8,
	"11-20": 15,
	"20+":   25,
}

var groupDiscounts = map[string]float64{
	"3-5":   0.05,
	"6-10":  0.10,
	"11-20": 0.15,
	"20+":   0.20,
}

var durationMultipliers = map[string]float64{
	"30": 0.6,
	"60": 1.0,
	"90": 1.5,
}

// GroupQuantity maps a group size token to the number of travellers billed.
// Unknown tokens bill one.
func GroupQuantity(token string) int {
	if n, ok := groupMultipliers[strings.TrimSpace(token)]; ok {
		return n
	}
	return 1
}

// GroupDiscount maps a group size token to its discount rate.
func GroupDiscount(token string) float64 {
	return groupDiscounts[strings.TrimSpace(token)]
}

// DurationMultiplier maps a session length in minutes to its rate factor.
// Unknown lengths bill the full rate.
func DurationMultiplier(token string) float64 {
	if m, ok := durationMultipliers[LeadingInt(strings.TrimSpace(token))]; ok {
		return m
	}
	return 1.0
}

// Calculator derives price summaries for one definition.
type Calculator struct {
	pricing model.Pricing
	table   Table
}

// CalculatorOption customises a Calculator.
type CalculatorOption func(*Calculator)

// WithTable overrides the table declared on the definition.
func WithTable(table Table) CalculatorOption {
	return func(c *Calculator) {
		if table != nil {
			c.table = table
		}
	}
}

// NewCalculator builds a calculator from the pricing block of a definition.
func NewCalculator(p model.Pricing, options ...CalculatorOption) *Calculator {
	c := &Calculator{
		pricing: p,
		table:   FromModel(p.Table),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Strategy reports the configured strategy.
func (c *Calculator) Strategy() model.PricingStrategy {
	if c == nil || c.pricing.Strategy == "" {
		return model.PricingNone
	}
	return c.pricing.Strategy
}

// Inputs reports the field names that feed the calculation.
func (c *Calculator) Inputs() []string {
	if c == nil {
		return nil
	}
	return c.pricing.Inputs()
}

// Calculate derives the summary for values. It never fails: missing inputs
// or unknown table entries produce a zero base price.
func (c *Calculator) Calculate(values model.Values) Summary {
	strategy := c.Strategy()
	out := Summary{Strategy: strategy, Quantity: 1, Multiplier: 1}
	if strategy == model.PricingNone {
		return out
	}
	out.Currency = c.pricing.Currency
	out.Category = values.Get(c.pricing.CategoryField)
	if c.pricing.TierField != "" {
		out.Tier = values.Get(c.pricing.TierField)
	}

	base, _ := c.table.Lookup(out.Category, out.Tier)
	out.BasePrice = clamp(base)

	switch strategy {
	case model.PricingGroup:
		token := values.Get(c.pricing.QuantityField)
		out.Quantity = GroupQuantity(token)
		out.Multiplier = float64(out.Quantity)
		out.DiscountRate = GroupDiscount(token)
		out.Subtotal = out.BasePrice * out.Multiplier
	case model.PricingDuration:
		out.Multiplier = DurationMultiplier(out.Tier)
		out.Subtotal = math.Round(out.BasePrice * out.Multiplier)
	}

	out.DiscountAmount = clamp(out.Subtotal * out.DiscountRate)
	out.Total = clamp(out.Subtotal - out.DiscountAmount)
	return out
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
