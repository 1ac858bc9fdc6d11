package export

import (
	"io"

	"github.com/tealeg/xlsx"

	"github.com/Skotchmaster/eco_shop/internal/domain"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	SheetName   = "Inventory"
)

var inventoryHeaders = []string{"ID", "Name", "Category", "Description", "Price", "Carbon"}

// WriteInventory writes items as a single-sheet workbook with a header row
// and a closing total row.
func WriteInventory(w io.Writer, items domain.ItemList) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return err
	}

	header := sheet.AddRow()
	for _, h := range inventoryHeaders {
		header.AddCell().SetValue(h)
	}

	for it := range items.All() {
		row := sheet.AddRow()
		row.AddCell().SetValue(uint(it.ID))
		row.AddCell().SetValue(it.Name)
		row.AddCell().SetValue(it.CategoryName)
		row.AddCell().SetValue(it.Description)
		row.AddCell().SetValue(it.Price.String())
		row.AddCell().SetValue(int64(it.Carbon))
	}

	total := sheet.AddRow()
	total.AddCell().SetValue("Total")
	for range 3 {
		total.AddCell()
	}
	total.AddCell().SetValue(items.Total().String())

	return file.Write(w)
}
