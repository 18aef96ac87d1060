package pipeline

import (
	"bytes"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"curadoria/internal"
	"curadoria/internal/util"
)

var ErrNoTable = errors.New("no table found")

func RowsFromXLSX(content []byte) ([]internal.Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		grid := dropBlankRows(rows)
		if len(grid) == 0 {
			continue
		}
		return RowsFromGrid(trimCells(grid[0]), grid[1:]), nil
	}
	return []internal.Row{}, nil
}

func RowsFromHTMLTable(html string) ([]internal.Row, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var grid [][]string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		candidate := [][]string{}
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, util.NormalizeSpaces(cell.Text()))
			})
			candidate = append(candidate, cells)
		})
		candidate = dropBlankRows(candidate)
		if len(candidate) < 2 {
			return true
		}
		grid = candidate
		return false
	})

	if grid == nil {
		return nil, ErrNoTable
	}
	return RowsFromGrid(trimCells(grid[0]), grid[1:]), nil
}

func dropBlankRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		blank := true
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out
}

func trimCells(row []string) []string {
	out := make([]string, 0, len(row))
	for _, c := range row {
		out = append(out, strings.TrimSpace(c))
	}
	return out
}
