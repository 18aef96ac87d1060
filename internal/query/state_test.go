package query

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curadoria/internal"
)

func TestBuildFacets(t *testing.T) {
	records := sample()
	records = append(records, rec("Sem Nada", "", []string{}, internal.PriceUndefined, internal.RatingUndefined))

	f := BuildFacets(records)
	assert.Equal(t, []string{"Bar", "Francesa", "Italiana", "Pizza", "Sobremesa"}, f.Categories)
	assert.Equal(t, []string{"Asa Norte", "Asa Sul", "Lago Sul", "Sudoeste"}, f.Regions)

	require.Len(t, f.Prices, 5)
	assert.Equal(t, internal.PriceCheap, f.Prices[0].Tier)
	assert.Equal(t, internal.PriceUndefined, f.Prices[4].Tier)

	tiers := []internal.RatingTier{}
	for _, r := range f.Ratings {
		tiers = append(tiers, r.Tier)
	}
	assert.Equal(t, []internal.RatingTier{
		internal.RatingPerfect, internal.RatingGreat, internal.RatingGood, internal.RatingPending, internal.RatingUndefined,
	}, tiers)
	assert.Equal(t, "Sem classificação", f.Ratings[4].Label)
}

func TestUniqueSortedCollation(t *testing.T) {
	got := UniqueSorted([]string{"Taguatinga", "Águas Claras", "", "Asa Sul", "águas", "Asa Sul", "  "})
	assert.Equal(t, []string{"águas", "Águas Claras", "Asa Sul", "Taguatinga"}, got)
}

func TestStateIsASnapshot(t *testing.T) {
	records := sample()
	state := NewState(records, internal.LoadInfo{Status: internal.LoadOK})
	records[0].Name = "mutated"

	assert.Equal(t, 5, state.Len())
	for _, r := range state.Records() {
		assert.NotEqual(t, "mutated", r.Name)
	}

	copied := state.Records()
	copied[0].Name = "mutated again"
	assert.NotEqual(t, "mutated again", state.Records()[0].Name)
	assert.Equal(t, internal.LoadOK, state.Info().Status)
}

func TestEmptyStateQueriesReturnNothing(t *testing.T) {
	state := EmptyState(internal.LoadInfo{Status: internal.LoadFailed, Message: "Erro ao carregar"})
	res := state.Query(Query{})
	assert.Equal(t, 0, res.Count)
	assert.Empty(t, state.Facets().Categories)
}

func TestHolderSwap(t *testing.T) {
	h := NewHolder(nil)
	require.NotNil(t, h.Load())
	assert.Equal(t, 0, h.Load().Len())

	next := NewState(sample(), internal.LoadInfo{TraceID: "b"})
	prev := h.Swap(next)
	assert.Equal(t, 0, prev.Len())
	assert.Same(t, next, h.Load())

	h.Swap(nil)
	assert.Equal(t, 0, h.Load().Len())
}

func TestHolderConcurrentReaders(t *testing.T) {
	h := NewHolder(NewState(sample(), internal.LoadInfo{}))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if i == 0 {
					h.Swap(NewState(sample(), internal.LoadInfo{}))
					continue
				}
				res := h.Load().Query(Query{Region: "Asa Sul"})
				if res.Count != 2 {
					t.Errorf("count=%d", res.Count)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
