package config

import "testing"

func TestRedisAddrPrecedence(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache.internal:6380")
	t.Setenv("REDIS_HOST", "other.internal")
	t.Setenv("REDIS_PORT", "6379")

	if got := redisAddr(); got != "cache.internal:6380" {
		t.Errorf("redisAddr() = %q, want REDIS_ADDR to win", got)
	}
}

func TestRedisAddrFromHostPort(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")

	if got := redisAddr(); got != "cache.internal:6380" {
		t.Errorf("redisAddr() = %q", got)
	}
}

func TestRedisAddrDefault(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")

	if got := redisAddr(); got != "localhost:6379" {
		t.Errorf("redisAddr() = %q", got)
	}
}

func TestRedisTLSVerifiesByDefault(t *testing.T) {
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("REDIS_TLS_SKIP_VERIFY", "")

	conf := redisTLSConfig()
	if conf == nil {
		t.Fatal("expected TLS config when REDIS_TLS is set")
	}
	if conf.InsecureSkipVerify {
		t.Error("certificate verification disabled without explicit opt-out")
	}
}

func TestRedisTLSSkipVerifyOptIn(t *testing.T) {
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("REDIS_TLS_SKIP_VERIFY", "true")

	conf := redisTLSConfig()
	if conf == nil || !conf.InsecureSkipVerify {
		t.Error("expected skip-verify config when explicitly opted in")
	}
}

func TestRedisTLSDisabled(t *testing.T) {
	t.Setenv("REDIS_TLS", "")

	if conf := redisTLSConfig(); conf != nil {
		t.Errorf("expected nil TLS config, got %+v", conf)
	}
}
