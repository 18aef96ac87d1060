package util

import "testing"

func TestParseLeadingNumber(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "plain", input: "35", want: 35},
		{name: "currency and decimal comma", input: "R$ 35,90", want: 35.9},
		{name: "decimal dot", input: "$ 80.5", want: 80.5},
		{name: "thousand dot", input: "R$ 1.200", want: 1200},
		{name: "thousand and decimal", input: "1.234,56", want: 1234.56},
		{name: "range keeps first", input: "30-50 reais", want: 30},
		{name: "suffix text", input: "120 por pessoa", want: 120},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseLeadingNumber(tc.input)
			if !ok {
				t.Fatalf("no number parsed from %q", tc.input)
			}
			if got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestParseLeadingNumberRejectsText(t *testing.T) {
	for _, input := range []string{"", "barato", "$$$", "—"} {
		if v, ok := ParseLeadingNumber(input); ok {
			t.Fatalf("ParseLeadingNumber(%q) = %v, want no number", input, v)
		}
	}
}
