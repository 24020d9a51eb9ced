package config

// This file defines a Redis client constructor for the application. Redis
// backs the rate limiter and the response cache on public browse routes.
// The client parameters are loaded from environment variables. If the
// connection fails during startup, the function returns nil and callers
// degrade gracefully by disabling caching and rate limiting.

import (
	"context"
	"crypto/tls"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client using environment variables.
// Supported variables are:
//
//	REDIS_ADDR – host:port shorthand (takes precedence when set)
//	REDIS_HOST and REDIS_PORT – hostname and port of the Redis server
//	REDIS_PASSWORD – optional password
//	REDIS_DB – database number (default 0)
//	REDIS_TLS – enable TLS
//	REDIS_TLS_SKIP_VERIFY – skip certificate verification (local setups only)
//
// The returned client may be nil if a connection cannot be established.
func NewRedisClient() *redis.Client {
	pwd := os.Getenv("REDIS_PASSWORD")
	dbNum := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if n, err := strconv.Atoi(dbStr); err == nil {
			dbNum = n
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      redisAddr(),
		Password:  pwd,
		DB:        dbNum,
		TLSConfig: redisTLSConfig(),
	})
	// Ping the server with a short timeout. Return nil on failure.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

// redisAddr resolves the server address. REDIS_ADDR wins over the
// REDIS_HOST/REDIS_PORT pair.
func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	host := os.Getenv("REDIS_HOST")
	port := os.Getenv("REDIS_PORT")
	if host != "" && port != "" {
		return host + ":" + port
	}
	return "localhost:6379"
}

// redisTLSConfig returns nil unless REDIS_TLS is set. Certificate
// verification stays on; REDIS_TLS_SKIP_VERIFY disables it explicitly.
func redisTLSConfig() *tls.Config {
	if !envBool("REDIS_TLS", false) {
		return nil
	}
	return &tls.Config{InsecureSkipVerify: envBool("REDIS_TLS_SKIP_VERIFY", false)}
}
