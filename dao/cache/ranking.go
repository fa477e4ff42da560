package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rankingTTL = 10 * time.Second

// RankingStorage 排名缓存
// 候选者票数是热读数据，短 TTL + 写后失效，兜底永远是数据库重算
type RankingStorage struct {
	redis *redis.Client
}

func NewRankingStorage(rds *redis.Client) *RankingStorage {
	return &RankingStorage{redis: rds}
}

func (r *RankingStorage) key(category string) string {
	return fmt.Sprintf("carnival:ranking:%s", category)
}

func (r *RankingStorage) Get(ctx context.Context, category string, dest any) (bool, error) {
	raw, err := r.redis.Get(ctx, r.key(category)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, dest)
}

func (r *RankingStorage) Set(ctx context.Context, category string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.redis.Set(ctx, r.key(category), raw, rankingTTL).Err()
}

// Invalidate 投票、重算、开关场次之后调用
func (r *RankingStorage) Invalidate(ctx context.Context, category string) error {
	return r.redis.Del(ctx, r.key(category)).Err()
}
