package checkout

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `DATE,ITEM_SERIAL,ITEM NAME,DEPARTMENT,ISSUED_TO,QUANTITY,UNIT_OF_MEASURE,ITEM_CATEGORY,WEEK,REFERENCE,DEPARTMENT_CAT,BATCH NO.,STORE,RECEIVED BY
2025-01-15,1001,Flour,Bakery,J. Mensah,90,kg,Dry Goods,W03,REF-1,Production,B-77,Main Store,A. Owusu
2025-01-16,1001,Flour,Grill,K. Addo,10,kg,Dry Goods,W03,REF-2,Production,B-77,Main Store,A. Owusu
2025-02-01,2002,Olive Oil,Grill,,40.5,L,Oils,W05,REF-3,Production,,Main Store,
`

func TestParseFullExport(t *testing.T) {
	result, err := Parse(strings.NewReader(sampleExport))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 3)
	assert.Empty(t, result.Warnings)

	first := result.Transactions[0]
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "1001", first.ItemSerial)
	assert.Equal(t, "Flour", first.ItemName)
	assert.Equal(t, "Bakery", first.Department)
	assert.Equal(t, "J. Mensah", first.IssuedTo)
	assert.Equal(t, 90.0, first.Quantity)
	assert.Equal(t, "kg", first.UnitOfMeasure)
	assert.Equal(t, "Dry Goods", first.ItemCategory)
	assert.Equal(t, "W03", first.Week)
	assert.Equal(t, "REF-1", first.Reference)
	assert.Equal(t, "Production", first.DepartmentCategory)
	assert.Equal(t, "B-77", first.BatchNumber)
	assert.Equal(t, "Main Store", first.Store)
	assert.Equal(t, "A. Owusu", first.ReceivedBy)

	assert.Equal(t, 40.5, result.Transactions[2].Quantity)
}

func TestParseSkipsBadRows(t *testing.T) {
	input := `DATE,ITEM NAME,DEPARTMENT,QUANTITY
2025-01-15,Flour,Bakery,90
not-a-date,Flour,Bakery,10
2025-01-17,Flour,Bakery,lots
2025-01-18,,Bakery,5
2025-01-19,Flour,Bakery,-12.5
`
	result, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	// Negative quantities are corrections and must survive; the three
	// malformed rows are dropped with warnings.
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, -12.5, result.Transactions[1].Quantity)

	require.Len(t, result.Warnings, 3)
	assert.Equal(t, 3, result.Warnings[0].Line)
	assert.Contains(t, result.Warnings[0].Reason, "unparseable date")
	assert.Contains(t, result.Warnings[1].Reason, "unparseable quantity")
	assert.Contains(t, result.Warnings[2].Reason, "empty item name")
}

func TestParseHeaderVariants(t *testing.T) {
	input := "\ufeffDate,Item Serial,Item Name,Department,Quantity,UOM\n" +
		"01/15/2025,1001,Flour,Bakery,3,kg\n"

	result, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)

	tx := result.Transactions[0]
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, "1001", tx.ItemSerial)
	assert.Equal(t, "kg", tx.UnitOfMeasure)
}

func TestParseMissingRequiredColumn(t *testing.T) {
	input := "DATE,ITEM NAME,QUANTITY\n2025-01-15,Flour,90\n"

	_, err := Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEPARTMENT")
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
}
