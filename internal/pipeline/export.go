package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"curadoria/internal"
)

var exportHeaders = []string{
	"name", "category", "category_class", "regions", "description",
	"price_raw", "price_tier", "price_label",
	"rating_raw", "rating_tier", "rating_label",
	"map_url", "instagram", "site",
}

func ExportRecordsToXLSX(records []internal.Record, outputPath string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, rec := range records {
		r := i + 2
		values := []any{
			rec.Name, rec.Category, rec.CategoryClass, strings.Join(rec.Regions, ", "), rec.Description,
			rec.Price.Raw, string(rec.Price.Tier), rec.Price.Label,
			rec.Rating.Raw, string(rec.Rating.Tier), rec.Rating.Label,
			rec.MapURL, rec.Instagram, rec.Site,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
