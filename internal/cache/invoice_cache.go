package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/facturio/facturio/internal/config"
	invoicedomain "github.com/facturio/facturio/internal/invoice/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InvoiceCache keeps each owner's full invoice list in redis under
// invoices:{owner}. Every operation fails open: redis trouble means a
// cache miss, never a request failure.
type InvoiceCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewInvoiceCache(rdb *redis.Client, cfg config.Config, log *zap.Logger) *InvoiceCache {
	return &InvoiceCache{
		rdb: rdb,
		ttl: time.Duration(cfg.CacheTTLSecs) * time.Second,
		log: log.Named("cache.invoice"),
	}
}

func key(ownerID snowflake.ID) string {
	return fmt.Sprintf("invoices:%s", ownerID)
}

func (c *InvoiceCache) GetList(ctx context.Context, ownerID snowflake.ID) ([]invoicedomain.Invoice, bool) {
	payload, err := c.rdb.Get(ctx, key(ownerID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var invoices []invoicedomain.Invoice
	if err := json.Unmarshal(payload, &invoices); err != nil {
		c.log.Warn("cache entry corrupt, dropping it", zap.Error(err))
		c.rdb.Del(ctx, key(ownerID))
		return nil, false
	}
	return invoices, true
}

func (c *InvoiceCache) SetList(ctx context.Context, ownerID snowflake.ID, invoices []invoicedomain.Invoice) {
	payload, err := json.Marshal(invoices)
	if err != nil {
		c.log.Warn("cache encode failed", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, key(ownerID), payload, c.ttl).Err(); err != nil {
		c.log.Debug("cache write failed", zap.Error(err))
	}
}

func (c *InvoiceCache) Invalidate(ctx context.Context, ownerID snowflake.ID) {
	if err := c.rdb.Del(ctx, key(ownerID)).Err(); err != nil {
		c.log.Debug("cache invalidation failed", zap.Error(err))
	}
}
