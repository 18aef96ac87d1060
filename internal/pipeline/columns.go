package pipeline

import (
	"strings"

	"curadoria/internal"
	"curadoria/internal/util"
)

type normalizedHeader struct {
	raw  string
	norm string
}

// Exact matches for every alias are tried before containment.
func (v Vocabulary) FindColumn(headers []string, key string) string {
	aliases := v.Aliases[key]
	if len(aliases) == 0 {
		return ""
	}

	hs := make([]normalizedHeader, 0, len(headers))
	for _, h := range headers {
		hs = append(hs, normalizedHeader{raw: h, norm: util.Normalize(h)})
	}

	for _, alias := range aliases {
		target := util.Normalize(alias)
		for _, h := range hs {
			if h.norm == target {
				return h.raw
			}
		}
	}

	for _, alias := range aliases {
		target := util.Normalize(alias)
		if target == "" {
			continue
		}
		for _, h := range hs {
			if strings.Contains(h.norm, target) {
				return h.raw
			}
		}
	}

	return ""
}

func (v Vocabulary) ResolveColumns(headers []string) internal.ColumnMap {
	cols := internal.ColumnMap{}
	for _, key := range internal.ColumnKeys {
		cols[key] = v.FindColumn(headers, key)
	}
	if cols[internal.ColSite] == "" {
		for _, h := range headers {
			if util.Normalize(h) == "link" {
				cols[internal.ColSite] = h
				break
			}
		}
	}
	return cols
}

func Describe(cols internal.ColumnMap) string {
	label := func(key string) string {
		if cols[key] == "" {
			return "N/D"
		}
		return cols[key]
	}
	return "Detectado → nome: " + label(internal.ColName) +
		" | categoria: " + label(internal.ColCategory) +
		" | região: " + label(internal.ColRegion) +
		" | descrição: " + label(internal.ColDesc) +
		" | preço: " + label(internal.ColPrice) +
		" | avaliação: " + label(internal.ColRating) +
		" | coords: " + label(internal.ColCoords)
}
