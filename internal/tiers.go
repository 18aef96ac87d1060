package internal

var priceTierInfo = map[PriceTier]struct {
	label string
	rank  int
}{
	PriceCheap:         {label: "$ Barato", rank: 1},
	PriceOk:            {label: "$$ Preço ok", rank: 2},
	PriceExpensive:     {label: "$$$ Caro", rank: 3},
	PriceVeryExpensive: {label: "$$$$ Muito caro", rank: 4},
	PriceUndefined:     {label: "", rank: 99},
}

func PriceTiers() []PriceTier {
	return []PriceTier{PriceCheap, PriceOk, PriceExpensive, PriceVeryExpensive}
}

func (t PriceTier) Label() string {
	return priceTierInfo[t].label
}

// Rank orders the price selector. Unknown tiers sort after every known one.
func (t PriceTier) Rank() int {
	info, ok := priceTierInfo[t]
	if !ok {
		return 99
	}
	return info.rank
}

func (t PriceTier) Valid() bool {
	_, ok := priceTierInfo[t]
	return ok
}

var ratingTierLabels = map[RatingTier]string{
	RatingPerfect: "Perfeito",
	RatingGreat:   "Ótimo",
	RatingGood:    "Bom",
	RatingPending: "Ainda não fui",
}

func RatingTiers() []RatingTier {
	return []RatingTier{RatingPerfect, RatingGreat, RatingGood, RatingPending, RatingUndefined}
}

func (t RatingTier) Label() string {
	return ratingTierLabels[t]
}

func (t RatingTier) Valid() bool {
	if t == RatingUndefined {
		return true
	}
	_, ok := ratingTierLabels[t]
	return ok
}
