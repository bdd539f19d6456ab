package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// AvailabilityCache кеширует вычисленные свободные слоты в Redis.
//
// Ключ: availability:{tenant_id}:{date}:{duration}
// Значение: JSON-массив минут начала слотов.
//
// Кеш — только оптимизация чтения: при недоступности Redis все операции
// деградируют до прямого вычисления (ошибки логируются, но не возвращаются).
// Любая запись, меняющая доступность тенанта, синхронно инвалидирует все
// его ключи; TTL страхует от пропущенной инвалидации.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// NewAvailabilityCache создает кеш доступности.
// client == nil означает выключенный кеш: Get всегда промахивается,
// Set и InvalidateTenant — no-op.
func NewAvailabilityCache(client *redis.Client, ttl time.Duration, logger Logger) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl, logger: logger}
}

// Enabled возвращает true, если кеш подключен
func (c *AvailabilityCache) Enabled() bool {
	return c.client != nil
}

// Get возвращает закешированные слоты и признак попадания
func (c *AvailabilityCache) Get(ctx context.Context, tenantID int64, date types.Date, durationMinutes int) ([]types.MinuteOfDay, bool) {
	if !c.Enabled() {
		return nil, false
	}

	raw, err := c.client.Get(ctx, c.key(tenantID, date, durationMinutes)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("cache: get failed: %v", err)
		return nil, false
	}

	var slots []types.MinuteOfDay
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		c.logger.Warn("cache: unmarshal failed: %v", err)
		return nil, false
	}

	return slots, true
}

// Set сохраняет вычисленные слоты с TTL
func (c *AvailabilityCache) Set(ctx context.Context, tenantID int64, date types.Date, durationMinutes int, slots []types.MinuteOfDay) {
	if !c.Enabled() {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		c.logger.Warn("cache: marshal failed: %v", err)
		return
	}

	if err := c.client.Set(ctx, c.key(tenantID, date, durationMinutes), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache: set failed: %v", err)
	}
}

// InvalidateTenant удаляет все ключи доступности тенанта.
// Вызывается синхронно после каждой записи, меняющей расписание:
// создание/отмена бронирования, блокировки, рабочие часы, настройки.
func (c *AvailabilityCache) InvalidateTenant(ctx context.Context, tenantID int64) {
	if !c.Enabled() {
		return
	}

	pattern := fmt.Sprintf("availability:%d:*", tenantID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache: scan failed: %v", err)
		return
	}

	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache: del failed: %v", err)
	}
}

func (c *AvailabilityCache) key(tenantID int64, date types.Date, durationMinutes int) string {
	return fmt.Sprintf("availability:%d:%s:%d", tenantID, date.String(), durationMinutes)
}
