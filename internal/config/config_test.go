package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_ConfigYAML(t *testing.T) {
	path := filepath.Join("..", "..", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Host == "" {
		t.Fatalf("expected database.host to be set")
	}
	if cfg.RabbitMQ.Port == 0 {
		t.Fatalf("expected rabbitmq.port to be set")
	}
	if cfg.Redis.Port == 0 {
		t.Fatalf("expected redis.port to be set")
	}
	if cfg.HTTP.StorefrontPort == 0 || cfg.HTTP.AdminPort == 0 {
		t.Fatalf("expected http ports to be set")
	}
	if cfg.Auth.JWTSecret == "" {
		t.Fatalf("expected auth.jwt_secret to be set")
	}
}
