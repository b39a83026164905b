package config

// Redis backs the catalog response cache and the checkout rate limiter.
// Both degrade to pass-through when the client is nil, so a missing Redis
// never takes the service down.

import (
	"context"
	"crypto/tls"
	"log"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions builds client options from the environment:
//
//	REDIS_URL                 redis:// or rediss:// URL, wins over the rest
//	REDIS_HOST and REDIS_PORT host and port of the server
//	REDIS_ADDR                host:port shorthand
//	REDIS_PASSWORD, REDIS_DB  credentials and database number
//	REDIS_TLS                 enable TLS when "true" or "1"
func RedisOptions() (*redis.Options, error) {
	if raw := os.Getenv("REDIS_URL"); raw != "" {
		return redis.ParseURL(raw)
	}
	addr := os.Getenv("REDIS_ADDR")
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}
	opts := &redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       envInt("REDIS_DB", 0),
	}
	if v := os.Getenv("REDIS_TLS"); strings.EqualFold(v, "true") || v == "1" {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts, nil
}

// NewRedisClient connects using RedisOptions and pings with a short
// timeout.  It returns nil when Redis is unreachable or misconfigured.
func NewRedisClient() *redis.Client {
	opts, err := RedisOptions()
	if err != nil {
		log.Printf("redis: bad configuration: %v", err)
		return nil
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis: unavailable at %s, cache and rate limit disabled: %v", opts.Addr, err)
		_ = client.Close()
		return nil
	}
	return client
}
