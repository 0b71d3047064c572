// internal/cache/report_cache_test.go
package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
)

func TestFilterHashStable(t *testing.T) {
	a := &domain.ReportFilter{Supplier: "acme pharma", IncludeTransactionHistory: true}
	b := &domain.ReportFilter{Supplier: "acme pharma", IncludeTransactionHistory: true}
	assert.Equal(t, filterHash(a), filterHash(b))
}

func TestFilterHashDistinguishesFilters(t *testing.T) {
	base := &domain.ReportFilter{Supplier: "acme pharma"}
	assert.NotEqual(t, filterHash(base), filterHash(&domain.ReportFilter{Supplier: "other"}))
	assert.NotEqual(t, filterHash(base), filterHash(&domain.ReportFilter{Supplier: "acme pharma", UseSequentialProfitLoss: true}))
	assert.NotEqual(t, filterHash(nil), filterHash(&domain.ReportFilter{}))
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	c := NewNoopReportCache()
	ctx := context.Background()

	require.NoError(t, c.SetReport(ctx, nil, &domain.InventoryReport{}))
	report, found, err := c.GetReport(ctx, nil)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, report)

	require.NoError(t, c.InvalidateAll(ctx))
}
