package pipeline

import (
	"fmt"

	"curadoria/internal"
)

func ExtractRows(p internal.Payload) ([]internal.Row, error) {
	switch p.Kind {
	case internal.SourceCSV, "":
		return ParseTable(string(p.Body)), nil
	case internal.SourceXLSX:
		return RowsFromXLSX(p.Body)
	case internal.SourceHTML:
		return RowsFromHTMLTable(string(p.Body))
	case internal.SourceSheets:
		grid := dropBlankRows(p.Grid)
		if len(grid) == 0 {
			return []internal.Row{}, nil
		}
		return RowsFromGrid(trimCells(grid[0]), grid[1:]), nil
	default:
		return nil, fmt.Errorf("unsupported input type: %s", p.Kind)
	}
}
