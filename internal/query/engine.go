package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"curadoria/internal"
	"curadoria/internal/util"
)

type SortOrder string

const (
	SortNameAsc  SortOrder = "name-asc"
	SortNameDesc SortOrder = "name-desc"
)

type Query struct {
	Text     string              `json:"text"`
	Category string              `json:"category"`
	Region   string              `json:"region"`
	Price    internal.PriceTier  `json:"priceTier"`
	Rating   internal.RatingTier `json:"ratingTier"`
	Sort     SortOrder           `json:"sortDirection"`
}

type Result struct {
	Records []internal.Record `json:"items"`
	Count   int               `json:"count"`
}

type Predicate func(internal.Record) bool

func Predicates(q Query) []Predicate {
	preds := []Predicate{}
	if text := util.Normalize(q.Text); text != "" {
		preds = append(preds, func(r internal.Record) bool { return strings.Contains(r.SearchText, text) })
	}
	if q.Category != "" {
		cat := q.Category
		preds = append(preds, func(r internal.Record) bool { return r.Category == cat })
	}
	if q.Region != "" {
		region := q.Region
		preds = append(preds, func(r internal.Record) bool { return r.HasRegion(region) })
	}
	if q.Price != "" {
		tier := q.Price
		preds = append(preds, func(r internal.Record) bool { return r.Price.Tier == tier })
	}
	if q.Rating != "" {
		tier := q.Rating
		preds = append(preds, func(r internal.Record) bool { return r.Rating.Tier == tier })
	}
	return preds
}

func Filter(records []internal.Record, preds ...Predicate) []internal.Record {
	out := make([]internal.Record, 0, len(records))
next:
	for _, r := range records {
		for _, p := range preds {
			if !p(r) {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}

// Stable in both directions.
func SortByName(records []internal.Record, order SortOrder) {
	c := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(records, func(i, j int) bool {
		if order == SortNameDesc {
			return c.CompareString(records[j].Name, records[i].Name) < 0
		}
		return c.CompareString(records[i].Name, records[j].Name) < 0
	})
}

func Apply(records []internal.Record, q Query) Result {
	filtered := Filter(records, Predicates(q)...)
	SortByName(filtered, q.Sort)
	return Result{Records: filtered, Count: len(filtered)}
}

func ParseSort(raw string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(raw), string(SortNameDesc)) || strings.EqualFold(strings.TrimSpace(raw), "desc") {
		return SortNameDesc
	}
	return SortNameAsc
}
