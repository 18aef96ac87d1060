package pipeline

import (
	"regexp"
	"strings"

	"curadoria/internal"
)

const utf8BOM = "\ufeff"

var reLineBreak = regexp.MustCompile(`\r?\n`)

// Short rows are padded with "" and extra fields are dropped.
func ParseTable(text string) []internal.Row {
	text = strings.TrimPrefix(text, utf8BOM)
	delim := DetectDelimiter(text)
	lines := splitLines(text)
	if len(lines) == 0 {
		return []internal.Row{}
	}

	headers := SplitLine(lines[0], delim)
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	grid := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		grid = append(grid, SplitLine(line, delim))
	}
	return RowsFromGrid(headers, grid)
}

func RowsFromGrid(headers []string, grid [][]string) []internal.Row {
	out := make([]internal.Row, 0, len(grid))
	for _, cells := range grid {
		values := make(map[string]string, len(headers))
		for c, h := range headers {
			value := ""
			if c < len(cells) {
				value = strings.TrimSpace(cells[c])
			}
			values[h] = value
		}
		out = append(out, internal.Row{Headers: headers, Values: values})
	}
	return out
}

func splitRawLines(text string) []string {
	return reLineBreak.Split(text, -1)
}

func splitLines(text string) []string {
	parts := splitRawLines(text)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
