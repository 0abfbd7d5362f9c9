package reports

import (
	"context"
	"fmt"

	"github.com/restobooks/backoffice_backend/models"
	"github.com/xuri/excelize/v2"
)

// ExportStockTakeExcel renders a stock-take valuation as a spreadsheet,
// one row per counted line plus a totals row. The caller writes the file
// to the response.
func ExportStockTakeExcel(ctx context.Context, stockTakeId int) (*excelize.File, string, error) {
	st, err := models.GetStockTake(ctx, stockTakeId)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheetName := "Sheet1"
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, "", err
	}

	f.SetCellValue(sheetName, "A1", "ItemName")
	f.SetCellValue(sheetName, "B1", "UnitType")
	f.SetCellValue(sheetName, "C1", "CountedQty")
	f.SetCellValue(sheetName, "D1", "PricePerUnit")
	f.SetCellValue(sheetName, "E1", "Value")

	row := 2
	for _, item := range st.Items {
		f.SetCellValue(sheetName, "A"+fmt.Sprint(row), item.ItemName)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(row), item.UnitType)
		f.SetCellValue(sheetName, "C"+fmt.Sprint(row), item.CountedQty.InexactFloat64())
		f.SetCellValue(sheetName, "D"+fmt.Sprint(row), item.PricePerUnit.InexactFloat64())
		f.SetCellValue(sheetName, "E"+fmt.Sprint(row), item.Value.InexactFloat64())
		row++
	}

	f.SetCellValue(sheetName, "A"+fmt.Sprint(row), "Total")
	f.SetCellValue(sheetName, "C"+fmt.Sprint(row), st.TotalItems)
	f.SetCellValue(sheetName, "E"+fmt.Sprint(row), st.TotalValue.InexactFloat64())

	filename := fmt.Sprintf("stock-take-%s.xlsx", st.TakenAt.Format("2006-01-02"))
	return f, filename, nil
}
