package pipeline

import (
	"reflect"
	"strings"
	"testing"
)

func TestDetectRegions(t *testing.T) {
	v := DefaultVocabulary()
	cases := []struct {
		input string
		want  []string
	}{
		{input: "Asa Norte e Asa Sul", want: []string{"Asa Norte", "Asa Sul"}},
		{input: "asa sul, ASA NORTE", want: []string{"Asa Norte", "Asa Sul"}},
		{input: "Águas Claras", want: []string{"Águas Claras"}},
		{input: "aguas claras / guara", want: []string{"Águas Claras", "Guará"}},
		{input: "Vicente-Pires", want: []string{"Vicente Pires"}},
		{input: "Asa Sul, Asa Sul", want: []string{"Asa Sul"}},
		{input: "  Park Way ", want: []string{"Park Way"}},
		{input: "", want: []string{}},
		{input: "   ", want: []string{}},
	}
	for _, tc := range cases {
		got := v.DetectRegions(tc.input)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("DetectRegions(%q) = %q want %q", tc.input, got, tc.want)
		}
	}
}

func TestDetectRegionsIdempotent(t *testing.T) {
	v := DefaultVocabulary()
	inputs := []string{
		"Asa Norte e Asa Sul",
		"Lago Sul, Lago Norte e Plano Piloto",
		"Taguatinga / Ceilândia / Samambaia",
		"Park Way",
		"Sudoeste",
	}
	for _, input := range inputs {
		first := v.DetectRegions(input)
		again := v.DetectRegions(strings.Join(first, ", "))
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("%q: %q then %q", input, first, again)
		}
	}
}
