package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func balanceCacheKey(rentalID uuid.UUID) string {
	return fmt.Sprintf("rental:balance:%s", rentalID)
}

// invalidateBalance drops the cached balance for a rental. Cache errors
// are logged, never surfaced: the cache is an optimization, not state.
func invalidateBalance(ctx context.Context, rdb *redis.Client, rentalID uuid.UUID) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, balanceCacheKey(rentalID)).Err(); err != nil {
		log.Printf("failed to invalidate balance cache for rental %s: %v", rentalID, err)
	}
}
