package pipeline

import (
	"reflect"
	"testing"
)

func TestSplitLine(t *testing.T) {
	cases := []struct {
		name  string
		line  string
		delim rune
		want  []string
	}{
		{name: "plain", line: "a,b,c", delim: ',', want: []string{"a", "b", "c"}},
		{name: "quoted delimiter", line: `"A, B",Pizza`, delim: ',', want: []string{"A, B", "Pizza"}},
		{name: "escaped quote", line: `"diz ""oi""",x`, delim: ',', want: []string{`diz "oi"`, "x"}},
		{name: "trailing empty field", line: "a;b;", delim: ';', want: []string{"a", "b", ""}},
		{name: "comma inside semicolon file", line: "Bar, Cozinha;Asa Sul", delim: ';', want: []string{"Bar, Cozinha", "Asa Sul"}},
		{name: "empty line", line: "", delim: ',', want: []string{""}},
		{name: "accented text", line: `Ceilândia,"Águas; Claras"`, delim: ',', want: []string{"Ceilândia", "Águas; Claras"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitLine(tc.line, tc.delim)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitLine(%q) = %q; want %q", tc.line, got, tc.want)
			}
		})
	}
}

func TestSplitLineRoundTrip(t *testing.T) {
	fieldSets := [][]string{
		{"A, B", "Pizza", "Asa Norte e Asa Sul", "35"},
		{`diz "oi"`, "x;y", "", "fim"},
		{"só um"},
		{"", "", ""},
		{`"`, `""`, `a,"b";c`},
	}
	for _, delim := range []rune{DelimComma, DelimSemicolon} {
		for _, fields := range fieldSets {
			line := JoinLine(fields, delim)
			got := SplitLine(line, delim)
			if !reflect.DeepEqual(got, fields) {
				t.Fatalf("delim %q: %q -> %q -> %q", delim, fields, line, got)
			}
		}
	}
}
