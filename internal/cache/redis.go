package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/skylink/config"
	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only while it still belongs to the caller.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisCache struct {
	client     redis.UniversalClient
	catalogTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, catalogTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		catalogTTL,
	)
}

func NewRedisCacheWithClient(client redis.UniversalClient, catalogTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, catalogTTL: catalogTTL}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	var flights []domain.Flight
	ok, err := c.get(ctx, flightsKey(), &flights)
	if !ok {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	return c.set(ctx, flightsKey(), flights)
}

func (c *RedisCache) GetServices(ctx context.Context, phase domain.ServicePhase) ([]domain.Service, error) {
	var services []domain.Service
	ok, err := c.get(ctx, servicesKey(phase), &services)
	if !ok {
		return nil, err
	}
	return services, nil
}

func (c *RedisCache) SetServices(ctx context.Context, phase domain.ServicePhase, services []domain.Service) error {
	return c.set(ctx, servicesKey(phase), services)
}

// InvalidateServices drops every cached service listing, e.g. after inventory moved.
func (c *RedisCache) InvalidateServices(ctx context.Context) error {
	keys := []string{servicesKey("")}
	for _, p := range []domain.ServicePhase{domain.PhaseBooking, domain.PhasePreBoarding, domain.PhaseInFlight, domain.PhaseArrival} {
		keys = append(keys, servicesKey(p))
	}
	return c.client.Del(ctx, keys...).Err()
}

// AcquireOrderLock returns a token identifying the holder, or ok=false when
// someone else holds the lock.
func (c *RedisCache) AcquireOrderLock(ctx context.Context, orderNumber string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := c.client.SetNX(ctx, orderLockKey(orderNumber), token, ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

func (c *RedisCache) ReleaseOrderLock(ctx context.Context, orderNumber, token string) error {
	return releaseScript.Run(ctx, c.client, []string{orderLockKey(orderNumber)}, token).Err()
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.catalogTTL).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func servicesKey(phase domain.ServicePhase) string {
	if phase == "" {
		return "cache:services:all"
	}
	return fmt.Sprintf("cache:services:%s", phase)
}

func orderLockKey(orderNumber string) string {
	return fmt.Sprintf("lock:order:%s", orderNumber)
}
