package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"curadoria/internal"
)

// Table order matters: the first matching rule wins.
type Vocabulary struct {
	Aliases    map[string][]string `yaml:"aliases"`
	Regions    []RegionRule        `yaml:"regions"`
	Categories []CategoryRule      `yaml:"categories"`
	Prices     []PriceRule         `yaml:"prices"`
	Ratings    []RatingRule        `yaml:"ratings"`
}

type RegionRule struct {
	Tag      string   `yaml:"tag"`
	Patterns []string `yaml:"patterns"`
}

type CategoryRule struct {
	Class    string   `yaml:"class"`
	Keywords []string `yaml:"keywords"`
}

type PriceRule struct {
	Tier     internal.PriceTier `yaml:"tier"`
	Patterns []string           `yaml:"patterns"`
	Exclude  []string           `yaml:"exclude"`
}

type RatingRule struct {
	Tier     internal.RatingTier `yaml:"tier"`
	Patterns []string            `yaml:"patterns"`
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Aliases: map[string][]string{
			internal.ColName:     {"nome", "nome do local", "local", "lugar", "estabelecimento", "title", "titulo", "título"},
			internal.ColCategory: {"categoria", "tipo", "tipo de comida", "comida", "category"},
			internal.ColRegion:   {"bairro", "regiao", "região", "area", "área", "neighborhood", "localizacao", "localização", "regiao/bairro", "região/bairro"},
			internal.ColDesc: {
				"descricao", "descrição", "comentario", "comentário", "notas",
				"observacao", "observação", "observacoes", "observações",
				"review", "dica", "comentarios", "recomendacoes de pratos", "recomendações de pratos",
			},
			internal.ColPrice:  {"preço", "preco", "valor", "faixa de preço", "faixa de preco", "price", "custo"},
			internal.ColRating: {"avaliação", "avaliacao", "rating", "classificação", "classificacao", "status"},
			internal.ColMaps:   {"maps", "google maps", "link maps", "mapa", "endereco", "endereço", "local no maps"},
			internal.ColInsta:  {"instagram", "insta", "ig"},
			internal.ColSite:   {"site", "url", "link", "website"},
			internal.ColCoords: {"coordenadas", "coord", "latlng", "lat long", "latitude", "longitude"},
		},
		Regions: []RegionRule{
			{Tag: "Lago Norte", Patterns: []string{"lago norte"}},
			{Tag: "Lago Sul", Patterns: []string{"lago sul"}},
			{Tag: "Asa Norte", Patterns: []string{"asa norte"}},
			{Tag: "Asa Sul", Patterns: []string{"asa sul"}},
			{Tag: "Sudoeste", Patterns: []string{"sudoeste"}},
			{Tag: "Noroeste", Patterns: []string{"noroeste"}},
			{Tag: "Octogonal", Patterns: []string{"octogonal"}},
			{Tag: "Vicente Pires", Patterns: []string{"vicente pires", "vicente-pires"}},
			{Tag: "Águas Claras", Patterns: []string{"aguas claras"}},
			{Tag: "Guará", Patterns: []string{"guara"}},
			{Tag: "Taguatinga", Patterns: []string{"taguatinga"}},
			{Tag: "Ceilândia", Patterns: []string{"ceilandia"}},
			{Tag: "Samambaia", Patterns: []string{"samambaia"}},
			{Tag: "Sobradinho", Patterns: []string{"sobradinho"}},
			{Tag: "Planaltina", Patterns: []string{"planaltina"}},
			{Tag: "Gama", Patterns: []string{"gama"}},
			{Tag: "Plano Piloto", Patterns: []string{"plano piloto"}},
		},
		Categories: []CategoryRule{
			{Class: "pizza", Keywords: []string{"pizza"}},
			{Class: "burger", Keywords: []string{"hamburg", "burger"}},
			{Class: "japanese", Keywords: []string{"japon", "sushi", "temaki", "ramen"}},
			{Class: "asian", Keywords: []string{"chines", "asiatic", "tailand", "corean", "vietnam"}},
			{Class: "italian", Keywords: []string{"italian", "massa", "trattoria"}},
			{Class: "arab", Keywords: []string{"arabe", "libanes"}},
			{Class: "mexican", Keywords: []string{"mexican"}},
			{Class: "seafood", Keywords: []string{"frutos do mar", "peixe"}},
			{Class: "grill", Keywords: []string{"churrasc", "carne", "steak"}},
			{Class: "veggie", Keywords: []string{"vegan", "vegetarian"}},
			{Class: "brazilian", Keywords: []string{"brasileir", "nordestin", "mineir", "caseira"}},
			{Class: "bakery", Keywords: []string{"padaria", "confeitaria"}},
			{Class: "dessert", Keywords: []string{"doce", "sobremesa", "sorvete", "gelato"}},
			{Class: "cafe", Keywords: []string{"cafe", "brunch"}},
			{Class: "bar", Keywords: []string{"bar", "boteco", "cervej", "drink"}},
		},
		Prices: []PriceRule{
			{Tier: internal.PriceCheap, Patterns: []string{"barato"}},
			{Tier: internal.PriceOk, Patterns: []string{"preço ok", "ok"}},
			{Tier: internal.PriceExpensive, Patterns: []string{"caro"}, Exclude: []string{"muito"}},
			{Tier: internal.PriceVeryExpensive, Patterns: []string{"muito caro"}},
		},
		Ratings: []RatingRule{
			{Tier: internal.RatingPerfect, Patterns: []string{"perfeito"}},
			{Tier: internal.RatingGreat, Patterns: []string{"otimo", "ótimo"}},
			{Tier: internal.RatingGood, Patterns: []string{"bom"}},
			{Tier: internal.RatingPending, Patterns: []string{"ainda não fui"}},
		},
	}
}

func LoadVocabulary(path string) (Vocabulary, error) {
	vocab := DefaultVocabulary()
	if path == "" {
		return vocab, nil
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary: %w", err)
	}

	var override Vocabulary
	if err := yaml.Unmarshal(blob, &override); err != nil {
		return Vocabulary{}, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	for _, rule := range override.Prices {
		if !rule.Tier.Valid() || rule.Tier == internal.PriceUndefined {
			return Vocabulary{}, fmt.Errorf("vocabulary %s: unknown price tier %q", path, rule.Tier)
		}
	}
	for _, rule := range override.Ratings {
		if rule.Tier == internal.RatingNone || rule.Tier == internal.RatingUndefined || !rule.Tier.Valid() {
			return Vocabulary{}, fmt.Errorf("vocabulary %s: unknown rating tier %q", path, rule.Tier)
		}
	}

	for key, aliases := range override.Aliases {
		vocab.Aliases[key] = aliases
	}
	if override.Regions != nil {
		vocab.Regions = override.Regions
	}
	if override.Categories != nil {
		vocab.Categories = override.Categories
	}
	if override.Prices != nil {
		vocab.Prices = override.Prices
	}
	if override.Ratings != nil {
		vocab.Ratings = override.Ratings
	}
	return vocab, nil
}
