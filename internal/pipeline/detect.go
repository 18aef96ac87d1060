package pipeline

import "strings"

const (
	DelimComma     = ','
	DelimSemicolon = ';'
)

// DetectDelimiter looks only at the first non-blank line: semicolon wins when it
// strictly outnumbers commas, comma otherwise (including ties and empty input).
func DetectDelimiter(text string) rune {
	first := ""
	for _, line := range splitRawLines(text) {
		if strings.TrimSpace(line) != "" {
			first = line
			break
		}
	}

	commas := strings.Count(first, ",")
	semis := strings.Count(first, ";")
	if semis > commas {
		return DelimSemicolon
	}
	return DelimComma
}
