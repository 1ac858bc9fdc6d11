package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/Skotchmaster/eco_shop/internal/domain"
)

func TestWriteInventory(t *testing.T) {
	items := domain.ItemList{
		{ID: 1, Name: "Bamboo Toothbrush", CategoryName: "home", Price: 300, Carbon: 2},
		{ID: 3, Name: "Cotton Tote", CategoryName: "travel", Price: 500, Carbon: 4},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteInventory(&buf, items))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	sheet, ok := f.Sheet[SheetName]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 4)

	assert.Equal(t, "Name", sheet.Rows[0].Cells[1].Value)
	assert.Equal(t, "Bamboo Toothbrush", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "£5.00", sheet.Rows[2].Cells[4].Value)
	assert.Equal(t, "Total", sheet.Rows[3].Cells[0].Value)
	assert.Equal(t, "£8.00", sheet.Rows[3].Cells[4].Value)
}

func TestWriteInventory_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInventory(&buf, nil))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, f.Sheet[SheetName].Rows, 2)
}
