package redis

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"ai-receptionist/internal/conversation/repository"
	"ai-receptionist/pkg/log"
)

type implRepository struct {
	rdb goredis.UniversalClient
	l   log.Logger
}

// New creates a Redis-backed session Repository. Standalone, sentinel and cluster clients all work.
func New(rdb goredis.UniversalClient, l log.Logger) repository.Repository {
	if rdb == nil {
		panic("conversation/repository/redis: client is required")
	}
	return &implRepository{rdb: rdb, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("conversation/repository/redis.%s", method)
}
