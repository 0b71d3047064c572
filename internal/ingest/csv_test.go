// internal/ingest/csv_test.go
package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
)

func TestParseMovementsChineseHeader(t *testing.T) {
	input := strings.Join([]string{
		"商品編號,商品名稱,交易類型,進貨單號,出貨單號,銷售單號,數量,總金額,進貨價,售價,日期",
		"A001,阿斯匹靈,進貨,20250101001,,,100,1000,10,15,2025-01-01",
		"A001,阿斯匹靈,銷售,,,20250102001,-10,200,10,15,2025-01-02",
	}, "\n")

	movements, err := ParseMovements(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, movements, 2)

	first := movements[0]
	assert.Equal(t, "A001", first.ProductID)
	assert.Equal(t, "A001", first.ProductCode)
	assert.Equal(t, "阿斯匹靈", first.ProductName)
	assert.Equal(t, "進貨", first.TransactionType)
	assert.Equal(t, "20250101001", first.PurchaseOrderNumber)
	assert.EqualValues(t, 100, first.Quantity)
	require.True(t, first.TotalAmount.Valid)
	assert.Equal(t, "1000", first.TotalAmount.Decimal.String())
	assert.Equal(t, "10", first.PurchasePrice.String())
	assert.Equal(t, "2025-01-01", first.Date.Format("2006-01-02"))

	second := movements[1]
	assert.Equal(t, "20250102001", second.SaleNumber)
	assert.EqualValues(t, -10, second.Quantity)
}

func TestParseMovementsEnglishHeaderWithBOM(t *testing.T) {
	input := "\ufeffproduct_code,product_name,quantity,total_amount,purchase_order_number\n" +
		"A001,aspirin,5,50,20250101001\n"

	movements, err := ParseMovements(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "A001", movements[0].ProductCode)
	assert.EqualValues(t, 5, movements[0].Quantity)
}

func TestParseMovementsBlankCellsDegrade(t *testing.T) {
	input := strings.Join([]string{
		"product_code,product_name,quantity,total_amount,sale_number,date",
		"A001,aspirin,-3,,S001,bad-date",
	}, "\n")

	movements, err := ParseMovements(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, movements, 1)

	m := movements[0]
	assert.False(t, m.TotalAmount.Valid)
	assert.True(t, m.PurchasePrice.IsZero())
	assert.True(t, m.Date.IsZero())
}

func TestParseMovementsSkipsUnidentifiableRows(t *testing.T) {
	input := strings.Join([]string{
		"product_code,quantity,sale_number",
		",5,",
		"A001,3,S001",
	}, "\n")

	movements, err := ParseMovements(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "A001", movements[0].ProductCode)
}

func TestParseMovementsMissingRequiredColumn(t *testing.T) {
	_, err := ParseMovements(strings.NewReader("product_name,total_amount\naspirin,10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestParseMovementsEmptyFile(t *testing.T) {
	_, err := ParseMovements(strings.NewReader("product_code,quantity\n"))
	assert.ErrorIs(t, err, domain.ErrEmptyFile)
}

func TestParseMovementsFloatQuantity(t *testing.T) {
	input := "product_code,quantity,purchase_order_number\nA001,2.0,P001\n"
	movements, err := ParseMovements(strings.NewReader(input))
	require.NoError(t, err)
	assert.EqualValues(t, 2, movements[0].Quantity)
}
