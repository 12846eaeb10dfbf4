package pricing

import (
	"strconv"
	"strings"
)

// AnyTier matches every tier of a category. Flat consultant rates use it.
const AnyTier = "*"

// Table maps category -> tier -> base price.
type Table map[string]map[string]float64

// Lookup resolves the base price for category and tier. The tier is tried as
// given, then by its leading integer ("10-days" -> "10"), then as AnyTier.
func (t Table) Lookup(category, tier string) (float64, bool) {
	tiers, ok := t[strings.TrimSpace(category)]
	if !ok {
		return 0, false
	}
	tier = strings.TrimSpace(tier)
	if price, ok := tiers[tier]; ok {
		return price, true
	}
	if lead := LeadingInt(tier); lead != "" {
		if price, ok := tiers[lead]; ok {
			return price, true
		}
	}
	if price, ok := tiers[AnyTier]; ok {
		return price, true
	}
	return 0, false
}

// LeadingInt returns the decimal digits token starts with, normalised
// without leading zeros. It returns "" when token does not start with a
// digit.
func LeadingInt(token string) string {
	end := strings.IndexFunc(token, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(token)
	}
	if end == 0 {
		return ""
	}
	n, err := strconv.Atoi(token[:end])
	if err != nil {
		return ""
	}
	return strconv.Itoa(n)
}

// TourismTable is the business-tourism program price list in euros.
func TourismTable() Table {
	return Table{
		"turkey": {"7": 1500, "10": 2200, "15": 3500},
		"france": {"8": 2200, "12": 3800, "15": 5500},
		"china":  {"10": 1800, "14": 2800, "21": 4200},
		"uae":    {"6": 1200, "10": 2000, "14": 3200},
	}
}

// FromModel copies a definition table.
func FromModel(src map[string]map[string]float64) Table {
	out := make(Table, len(src))
	for category, tiers := range src {
		copied := make(map[string]float64, len(tiers))
		for tier, price := range tiers {
			copied[tier] = price
		}
		out[category] = copied
	}
	return out
}
