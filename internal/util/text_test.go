package util

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Águas Claras ":  "aguas claras",
		"CEILÂNDIA":        "ceilandia",
		"Guará II":         "guara ii",
		"Preço":            "preco",
		"Ótimo!":           "otimo!",
		"ainda não fui":    "ainda nao fui",
		"":                 "",
		"   ":              "",
		"Região/Bairro":    "regiao/bairro",
		"Localização":      "localizacao",
		"plain ascii text": "plain ascii text",
	}
	for input, want := range cases {
		if got := Normalize(input); got != want {
			t.Errorf("Normalize(%q) = %q; want %q", input, got, want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, input := range []string{"Asa Norte", "Águas Claras", "Café & Bistrô"} {
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q vs %q", input, once, twice)
		}
	}
}
