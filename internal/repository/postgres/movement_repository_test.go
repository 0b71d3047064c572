// internal/repository/postgres/movement_repository_test.go
package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewDBFromSQLX(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func movementColumns() []string {
	return []string{
		"product_id", "product_code", "product_name", "transaction_type",
		"purchase_order_number", "shipping_order_number", "sale_number",
		"quantity", "total_amount", "purchase_price", "selling_price",
		"movement_date",
	}
}

func TestGetMovements(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovementRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(movementColumns()).
		AddRow("P1", "P1", "aspirin", "進貨", "20250101001", "", "", 100, "1000", "10", "15", now).
		AddRow("P1", "P1", "aspirin", "銷售", "", "", "20250102001", -10, "200", "10", "15", now)

	mock.ExpectQuery("SELECT(.|\n)+FROM movements m(.|\n)+JOIN products p").WillReturnRows(rows)

	movements, err := repo.GetMovements(context.Background(), nil, false)
	require.NoError(t, err)
	require.Len(t, movements, 2)

	assert.Equal(t, "P1", movements[0].ProductID)
	assert.Equal(t, "20250101001", movements[0].PurchaseOrderNumber)
	assert.EqualValues(t, 100, movements[0].Quantity)
	require.True(t, movements[0].TotalAmount.Valid)
	assert.Equal(t, "1000", movements[0].TotalAmount.Decimal.String())

	assert.Equal(t, "20250102001", movements[1].SaleNumber)
	assert.EqualValues(t, -10, movements[1].Quantity)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMovementsAppliesFilterArgs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovementRepository(db)

	mock.ExpectQuery("p.supplier = \\$1 AND p.code ILIKE \\$2").
		WithArgs("acme pharma", "%P1%").
		WillReturnRows(sqlmock.NewRows(movementColumns()))

	filter := &domain.ReportFilter{Supplier: "acme pharma", ProductCode: "P1"}
	movements, err := repo.GetMovements(context.Background(), filter, true)
	require.NoError(t, err)
	assert.Empty(t, movements)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCategories(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovementRepository(db)

	mock.ExpectQuery("SELECT DISTINCT category").
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("analgesics").AddRow("vitamins"))

	categories, err := repo.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"analgesics", "vitamins"}, categories)
}

func TestInsertMovements(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovementRepository(db)

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO products")
	mock.ExpectPrepare("INSERT INTO movements")
	mock.ExpectExec("INSERT INTO products").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO movements").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO movements").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	movements := []domain.RawMovement{
		{ProductID: "P1", ProductCode: "P1", ProductName: "aspirin", PurchaseOrderNumber: "20250101001", Quantity: 100},
		{ProductID: "P1", ProductCode: "P1", ProductName: "aspirin", SaleNumber: "20250102001", Quantity: -10},
	}

	inserted, err := repo.InsertMovements(context.Background(), "stock_202501.csv", movements)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	assert.NoError(t, mock.ExpectationsWereMet())
}
