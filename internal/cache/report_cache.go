// internal/cache/report_cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yuchialin/pharmapos-backend/internal/config"
	"github.com/yuchialin/pharmapos-backend/internal/domain"
)

const (
	reportKeyPrefix  = "report:inventory"
	chartKeyPrefix   = "report:chart"
	summaryKeyPrefix = "report:summary"
	scanBatchSize    = 100
)

// ReportCache memoizes the ledger-derived report payloads keyed by filter.
// Every ingest invalidates the whole prefix; recomputation is cheap enough
// that per-key invalidation is not worth the bookkeeping.
type ReportCache interface {
	GetReport(ctx context.Context, filter *domain.ReportFilter) (*domain.InventoryReport, bool, error)
	SetReport(ctx context.Context, filter *domain.ReportFilter, report *domain.InventoryReport) error
	GetChart(ctx context.Context, filter *domain.ReportFilter) ([]domain.ChartDataItem, bool, error)
	SetChart(ctx context.Context, filter *domain.ReportFilter, items []domain.ChartDataItem) error
	GetSummary(ctx context.Context, filter *domain.ReportFilter) (*domain.ProfitLossSummary, bool, error)
	SetSummary(ctx context.Context, filter *domain.ReportFilter, summary *domain.ProfitLossSummary) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{client: client, ttl: ttl}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetReport(ctx context.Context, filter *domain.ReportFilter) (*domain.InventoryReport, bool, error) {
	var report domain.InventoryReport
	found, err := c.get(ctx, buildKey(reportKeyPrefix, filter), &report)
	if err != nil || !found {
		return nil, false, err
	}
	return &report, true, nil
}

func (c *redisReportCache) SetReport(ctx context.Context, filter *domain.ReportFilter, report *domain.InventoryReport) error {
	return c.set(ctx, buildKey(reportKeyPrefix, filter), report)
}

func (c *redisReportCache) GetChart(ctx context.Context, filter *domain.ReportFilter) ([]domain.ChartDataItem, bool, error) {
	var items []domain.ChartDataItem
	found, err := c.get(ctx, buildKey(chartKeyPrefix, filter), &items)
	if err != nil || !found {
		return nil, false, err
	}
	return items, true, nil
}

func (c *redisReportCache) SetChart(ctx context.Context, filter *domain.ReportFilter, items []domain.ChartDataItem) error {
	return c.set(ctx, buildKey(chartKeyPrefix, filter), items)
}

func (c *redisReportCache) GetSummary(ctx context.Context, filter *domain.ReportFilter) (*domain.ProfitLossSummary, bool, error) {
	var summary domain.ProfitLossSummary
	found, err := c.get(ctx, buildKey(summaryKeyPrefix, filter), &summary)
	if err != nil || !found {
		return nil, false, err
	}
	return &summary, true, nil
}

func (c *redisReportCache) SetSummary(ctx context.Context, filter *domain.ReportFilter, summary *domain.ProfitLossSummary) error {
	return c.set(ctx, buildKey(summaryKeyPrefix, filter), summary)
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	for _, prefix := range []string{reportKeyPrefix, chartKeyPrefix, summaryKeyPrefix} {
		if err := deleteKeysWithPrefix(ctx, c.client, prefix, scanBatchSize); err != nil {
			return err
		}
	}
	return nil
}

func (c *redisReportCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode report cache: %w", err)
	}
	return true, nil
}

func (c *redisReportCache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (n *noopReportCache) GetReport(ctx context.Context, filter *domain.ReportFilter) (*domain.InventoryReport, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetReport(ctx context.Context, filter *domain.ReportFilter, report *domain.InventoryReport) error {
	return nil
}

func (n *noopReportCache) GetChart(ctx context.Context, filter *domain.ReportFilter) ([]domain.ChartDataItem, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetChart(ctx context.Context, filter *domain.ReportFilter, items []domain.ChartDataItem) error {
	return nil
}

func (n *noopReportCache) GetSummary(ctx context.Context, filter *domain.ReportFilter) (*domain.ProfitLossSummary, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetSummary(ctx context.Context, filter *domain.ReportFilter, summary *domain.ProfitLossSummary) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildKey(prefix string, filter *domain.ReportFilter) string {
	return fmt.Sprintf("%s:%s", prefix, filterHash(filter))
}

func filterHash(filter *domain.ReportFilter) string {
	if filter == nil {
		return "all"
	}

	parts := []string{
		"supplier=" + filter.Supplier,
		"category=" + filter.Category,
		"code=" + filter.ProductCode,
		"name=" + filter.ProductName,
		"type=" + filter.ProductType,
		"history=" + strconv.FormatBool(filter.IncludeTransactionHistory),
		"sequential=" + strconv.FormatBool(filter.UseSequentialProfitLoss),
	}

	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
