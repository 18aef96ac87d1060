package pipeline

import (
	"strings"

	"curadoria/internal"
	"curadoria/internal/util"
)

const blankLabel = "—"

func (v Vocabulary) ClassifyPrice(raw string) internal.PriceInfo {
	raw = strings.TrimSpace(raw)
	t := util.Normalize(raw)

	if t != "" {
		for _, rule := range v.Prices {
			if matchesAny(t, rule.Patterns) && !matchesAny(t, rule.Exclude) {
				return priceInfo(raw, rule.Tier)
			}
		}
	}

	if value, ok := util.ParseLeadingNumber(raw); ok {
		return priceInfo(raw, PriceTierFor(value))
	}

	label := raw
	if label == "" {
		label = blankLabel
	}
	return internal.PriceInfo{Raw: raw, Tier: internal.PriceUndefined, Label: label}
}

func PriceTierFor(value float64) internal.PriceTier {
	switch {
	case value <= 40:
		return internal.PriceCheap
	case value <= 80:
		return internal.PriceOk
	case value <= 120:
		return internal.PriceExpensive
	default:
		return internal.PriceVeryExpensive
	}
}

func priceInfo(raw string, tier internal.PriceTier) internal.PriceInfo {
	label := tier.Label()
	if label == "" {
		label = raw
	}
	return internal.PriceInfo{Raw: raw, Tier: tier, Label: label}
}

// ClassifyRating leaves the tier empty for blank input: no rating data is not
// the same as a rating text nobody recognised.
func (v Vocabulary) ClassifyRating(raw string) internal.RatingInfo {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return internal.RatingInfo{}
	}

	t := util.Normalize(raw)
	for _, rule := range v.Ratings {
		if matchesAny(t, rule.Patterns) {
			label := rule.Tier.Label()
			if label == "" {
				label = raw
			}
			return internal.RatingInfo{Raw: raw, Tier: rule.Tier, Label: label}
		}
	}
	return internal.RatingInfo{Raw: raw, Tier: internal.RatingUndefined, Label: raw}
}

func (v Vocabulary) ClassifyCategory(raw string) string {
	t := util.Normalize(raw)
	if t == "" {
		return internal.CategoryGeneric
	}
	for _, rule := range v.Categories {
		if matchesAny(t, rule.Keywords) {
			return rule.Class
		}
	}
	return internal.CategoryGeneric
}

func matchesAny(normalized string, patterns []string) bool {
	for _, p := range patterns {
		pattern := util.Normalize(p)
		if pattern != "" && strings.Contains(normalized, pattern) {
			return true
		}
	}
	return false
}
