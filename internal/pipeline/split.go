package pipeline

import "strings"

// SplitLine splits one line on delim, honouring double-quoted segments. A doubled
// quote inside quotes yields a literal quote. The last field is always emitted.
func SplitLine(line string, delim rune) []string {
	out := []string{}
	var cur strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if ch == '"' {
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
			continue
		}

		if ch == delim && !inQuotes {
			out = append(out, cur.String())
			cur.Reset()
			continue
		}

		cur.WriteRune(ch)
	}
	out = append(out, cur.String())
	return out
}

func JoinLine(fields []string, delim rune) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.ContainsRune(f, delim) || strings.ContainsRune(f, '"') {
			f = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		}
		parts = append(parts, f)
	}
	return strings.Join(parts, string(delim))
}
