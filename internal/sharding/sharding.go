package sharding

import "github.com/cespare/xxhash/v2"

type ShardRouter struct {
	ShardCount int // Number of shards
}

func NewShardRouter(shardCount int) *ShardRouter {
	if shardCount < 1 {
		shardCount = 1
	}
	return &ShardRouter{ShardCount: shardCount}
}

// GetShard hashes a user ID to a shard index. A user's log entries live on the same shard.
func (r *ShardRouter) GetShard(userID string) int {
	return int(xxhash.Sum64String(userID) % uint64(r.ShardCount))
}
