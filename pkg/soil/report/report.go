package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"agrisight/entities"
)

const Sheet = "Soil History"

var header = []any{
	"Date", "Farmer Type", "Health Score", "Moisture %", "pH", "Nitrogen %", "NDVI",
	"Should Rest", "Rotation Needed", "Suggested Crop", "Latitude", "Longitude", "Recommendations",
}

// WriteSoilHistory renders records as a single-sheet xlsx workbook.
func WriteSoilHistory(w io.Writer, records []entities.SoilRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", Sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(Sheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(Sheet, "A1", last+"1", bold); err != nil {
		return err
	}
	_ = f.SetColWidth(Sheet, "A", "A", 22)
	_ = f.SetColWidth(Sheet, last, last, 60)

	for i, r := range records {
		row := []any{
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.FarmerType,
			r.HealthScore,
			r.MoistureLevel,
			r.PHLevel,
			r.NitrogenLevel,
			r.NDVIValue,
			yesNo(r.ShouldRest),
			yesNo(r.RotationNeeded),
			deref(r.SuggestedCrop),
			coord(r.Latitude),
			coord(r.Longitude),
			strings.Join(r.Recommendations, "; "),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(Sheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func coord(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
