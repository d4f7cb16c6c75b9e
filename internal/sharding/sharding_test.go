package sharding

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetShardIsStableAndInRange(t *testing.T) {
	router := NewShardRouter(3)
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		id := fmt.Sprintf("user-%d", i)
		shard := router.GetShard(id)
		assert.GreaterOrEqual(t, shard, 0)
		assert.Less(t, shard, 3)
		assert.Equal(t, shard, router.GetShard(id))
		seen[shard] = true
	}
	assert.Len(t, seen, 3, "200 ids should touch every shard")
}

func TestNewShardRouterClampsCount(t *testing.T) {
	router := NewShardRouter(0)
	assert.Equal(t, 1, router.ShardCount)
	assert.Equal(t, 0, router.GetShard("anything"))
}
