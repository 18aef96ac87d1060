package pipeline

import (
	"fmt"
	"strings"

	"curadoria/internal"
	"curadoria/internal/util"
)

type Builder struct {
	vocab Vocabulary
}

func NewBuilder(vocab Vocabulary) *Builder {
	return &Builder{vocab: vocab}
}

func (b *Builder) BuildRecords(rows []internal.Row) ([]internal.Record, internal.ColumnMap) {
	if len(rows) == 0 {
		return []internal.Record{}, b.vocab.ResolveColumns(nil)
	}
	cols := b.vocab.ResolveColumns(rows[0].Headers)
	out := make([]internal.Record, 0, len(rows))
	for i, row := range rows {
		out = append(out, b.Build(row, cols, i))
	}
	return out, cols
}

func (b *Builder) Build(row internal.Row, cols internal.ColumnMap, index int) internal.Record {
	pick := func(key string) string {
		return strings.TrimSpace(row.Get(cols[key]))
	}

	name := pick(internal.ColName)
	if name == "" {
		name = fmt.Sprintf("Item %d", index+1)
	}
	category := pick(internal.ColCategory)
	regions := b.vocab.DetectRegions(pick(internal.ColRegion))
	desc := pick(internal.ColDesc)
	price := b.vocab.ClassifyPrice(pick(internal.ColPrice))
	rating := b.vocab.ClassifyRating(pick(internal.ColRating))
	coords := pick(internal.ColCoords)

	mapURL := MapsFromCoords(coords)
	if mapURL == "" {
		mapURL = SafeLink(pick(internal.ColMaps))
	}

	search := util.Normalize(strings.Join([]string{
		name, category, strings.Join(regions, " "), desc, price.Label, rating.Label,
	}, " "))

	return internal.Record{
		Name:          name,
		Category:      category,
		CategoryClass: b.vocab.ClassifyCategory(category),
		Regions:       regions,
		Description:   desc,
		Price:         price,
		Rating:        rating,
		MapURL:        mapURL,
		Instagram:     SafeLink(pick(internal.ColInsta)),
		Site:          SafeLink(pick(internal.ColSite)),
		Coords:        coords,
		SearchText:    search,
	}
}
