package db

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/odontosys/clinic-api/internal/config"
)

func NewRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Redis alimenta apenas o feed ao vivo; a API sobe mesmo sem ele.
		log.Printf("redis unavailable at %s: %v", cfg.RedisAddr, err)
		_ = client.Close()
		return nil
	}

	return client
}
