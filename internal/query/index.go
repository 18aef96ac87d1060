package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"curadoria/internal"
)

type PriceOption struct {
	Tier  internal.PriceTier `json:"tier"`
	Label string             `json:"label"`
	Rank  int                `json:"rank"`
}

type RatingOption struct {
	Tier  internal.RatingTier `json:"tier"`
	Label string              `json:"label"`
}

type Facets struct {
	Categories []string       `json:"categories"`
	Regions    []string       `json:"regions"`
	Prices     []PriceOption  `json:"prices"`
	Ratings    []RatingOption `json:"ratings"`
}

func BuildFacets(records []internal.Record) Facets {
	categories := make([]string, 0, len(records))
	regions := []string{}
	ratingSeen := map[internal.RatingTier]string{}
	unpriced := false
	for _, r := range records {
		if r.Price.Tier == internal.PriceUndefined {
			unpriced = true
		}
		categories = append(categories, r.Category)
		regions = append(regions, r.Regions...)
		if r.Rating.Rated() {
			if _, ok := ratingSeen[r.Rating.Tier]; !ok {
				ratingSeen[r.Rating.Tier] = r.Rating.Tier.Label()
			}
		}
	}

	prices := make([]PriceOption, 0, 5)
	for _, tier := range internal.PriceTiers() {
		prices = append(prices, PriceOption{Tier: tier, Label: tier.Label(), Rank: tier.Rank()})
	}
	if unpriced {
		prices = append(prices, PriceOption{Tier: internal.PriceUndefined, Label: "Sem preço", Rank: internal.PriceUndefined.Rank()})
	}
	sort.SliceStable(prices, func(i, j int) bool { return prices[i].Rank < prices[j].Rank })

	ratings := []RatingOption{}
	for _, tier := range internal.RatingTiers() {
		label, ok := ratingSeen[tier]
		if !ok {
			continue
		}
		if label == "" {
			label = "Sem classificação"
		}
		ratings = append(ratings, RatingOption{Tier: tier, Label: label})
	}

	return Facets{
		Categories: UniqueSorted(categories),
		Regions:    UniqueSorted(regions),
		Prices:     prices,
		Ratings:    ratings,
	}
}

func UniqueSorted(values []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	c := collate.New(language.BrazilianPortuguese)
	c.SortStrings(out)
	return out
}
