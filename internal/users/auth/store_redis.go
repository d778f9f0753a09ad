// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// RedisCodeLedger implements [CodeLedger] with SETNX markers that expire
// together with the code.
type RedisCodeLedger struct {
	client redis.UniversalClient
}

// NewRedisCodeLedger creates a Redis-backed [CodeLedger].
func NewRedisCodeLedger(client redis.UniversalClient) *RedisCodeLedger {
	return &RedisCodeLedger{client: client}
}

/*
Consume atomically claims the code.

The key holds a digest of the code, never the code itself.

Parameters:
  - ctx: context.Context
  - code: string
  - ttl: time.Duration (at least the code lifetime)

Returns:
  - bool: True for the first claim only
  - error: Connectivity errors
*/
func (ledger *RedisCodeLedger) Consume(ctx context.Context, code string, ttl time.Duration) (bool, error) {
	key := constants.RedisPrefixUsedCode + sec.Fingerprint(code)

	claimed, err := ledger.client.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_used_code_setnx_failed: %w", err)
	}

	return claimed, nil
}
