package pipeline

import "testing"

func TestDetectDelimiter(t *testing.T) {
	cases := []struct {
		name string
		text string
		want rune
	}{
		{name: "comma", text: "Nome,Bairro\nx,y", want: DelimComma},
		{name: "semicolon", text: "Nome;Bairro;Preço\nx;y;z", want: DelimSemicolon},
		{name: "tie favors comma", text: "a,b;c", want: DelimComma},
		{name: "skips blank lines", text: "\n   \r\nNome;Bairro\n", want: DelimSemicolon},
		{name: "only first line counts", text: "Nome,Bairro\na;b;c;d", want: DelimComma},
		{name: "empty", text: "", want: DelimComma},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectDelimiter(tc.text); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestParseTable(t *testing.T) {
	text := "\ufeff Nome ; Bairro ;Preço\r\n\r\nBar do Zé;Asa Sul;35;extra\nSó nome\n"
	rows := ParseTable(text)
	if len(rows) != 2 {
		t.Fatalf("len=%d", len(rows))
	}

	headers := rows[0].Headers
	if len(headers) != 3 || headers[0] != "Nome" || headers[1] != "Bairro" || headers[2] != "Preço" {
		t.Fatalf("headers=%q", headers)
	}
	if rows[0].Get("Nome") != "Bar do Zé" || rows[0].Get("Preço") != "35" {
		t.Fatalf("row0=%v", rows[0].Values)
	}
	if len(rows[0].Values) != 3 {
		t.Fatalf("extra field kept: %v", rows[0].Values)
	}
	if rows[1].Get("Nome") != "Só nome" || rows[1].Get("Bairro") != "" || rows[1].Get("Preço") != "" {
		t.Fatalf("short row not padded: %v", rows[1].Values)
	}
}

func TestParseTableEmpty(t *testing.T) {
	for _, text := range []string{"", "\n\n  \n", "\ufeff"} {
		rows := ParseTable(text)
		if rows == nil || len(rows) != 0 {
			t.Fatalf("ParseTable(%q) = %v; want empty", text, rows)
		}
	}
	if rows := ParseTable("Nome,Bairro\n"); len(rows) != 0 {
		t.Fatalf("header only should give no rows, got %d", len(rows))
	}
}
