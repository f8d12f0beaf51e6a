package zkproof

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/weisyn/zkattest/pkg/types"
)

// VerifyCache 验证结果缓存
//
// 验证是 (proof, commitment, vk) 的纯函数，同一 KeyStore 生命周期内结果不会变化，
// 因此可以按 SHA-256(family ‖ commitment ‖ proof) 缓存 Valid/Invalid 结果。
// Malformed 不缓存：解码失败的开销本来就很小。
type VerifyCache struct {
	cache *bigcache.BigCache
}

// NewVerifyCache 创建验证结果缓存
func NewVerifyCache(ctx context.Context, lifeWindow time.Duration) (*VerifyCache, error) {
	cfg := bigcache.DefaultConfig(lifeWindow)
	cfg.Shards = 64
	cfg.MaxEntrySize = 1
	cfg.HardMaxCacheSize = 32 // MB
	cfg.Verbose = false

	cache, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("创建验证结果缓存失败: %w", err)
	}
	return &VerifyCache{cache: cache}, nil
}

func verifyCacheKey(family types.CircuitFamily, proof, commitment []byte) string {
	h := sha256.New()
	var fam [2]byte
	binary.BigEndian.PutUint16(fam[:], uint16(family))
	h.Write(fam[:])
	h.Write(commitment)
	h.Write(proof)
	return string(h.Sum(nil))
}

// Get 查询缓存的验证结果
func (c *VerifyCache) Get(family types.CircuitFamily, proof, commitment []byte) (types.VerifyResult, bool) {
	entry, err := c.cache.Get(verifyCacheKey(family, proof, commitment))
	if err != nil || len(entry) != 1 {
		return 0, false
	}
	return types.VerifyResult(entry[0]), true
}

// Put 写入验证结果（只接受 Valid 和 Invalid）
func (c *VerifyCache) Put(family types.CircuitFamily, proof, commitment []byte, result types.VerifyResult) error {
	if result != types.VerifyValid && result != types.VerifyInvalid {
		return nil
	}
	return c.cache.Set(verifyCacheKey(family, proof, commitment), []byte{byte(result)})
}

// Len 缓存条目数
func (c *VerifyCache) Len() int {
	return c.cache.Len()
}

// Close 关闭缓存并停止后台清理
func (c *VerifyCache) Close() error {
	return c.cache.Close()
}
