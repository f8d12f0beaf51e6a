package zkproof

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	attestationconfig "github.com/weisyn/zkattest/internal/config/attestation"
	"github.com/weisyn/zkattest/internal/core/attestation/circuits"
	"github.com/weisyn/zkattest/pkg/interfaces/attestation"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

// OverflowPolicy 队列满时的处理策略
type OverflowPolicy string

const (
	// OverflowDropOldest 丢弃最早的未证明条目（每次丢弃记录警告和指标）
	OverflowDropOldest OverflowPolicy = attestationconfig.OverflowDropOldest

	// OverflowReject 拒绝新条目，返回 ErrQueueFull
	OverflowReject OverflowPolicy = attestationconfig.OverflowReject
)

// BatchQueue 延迟证明队列
//
// 📋 **状态**：Empty → Filling → Full(IsReady) → Draining(ProveBatch) → Empty
//
// ⚠️ **并发**：所有队列操作由同一把锁保护；证明在锁外进行，
// 证明期间新入队的条目进入下一批。
type BatchQueue struct {
	logger log.Logger
	prover attestation.Prover
	events event.EventBus // 可选

	family  types.CircuitFamily
	maxSize int
	policy  OverflowPolicy

	mu    sync.Mutex
	items []types.BatchItem
}

var _ attestation.BatchQueue = (*BatchQueue)(nil)

// NewBatchQueue 创建批量队列
func NewBatchQueue(
	logger log.Logger,
	prover attestation.Prover,
	events event.EventBus,
	family types.CircuitFamily,
	maxSize int,
	policy OverflowPolicy,
) (*BatchQueue, error) {
	if maxSize < 1 {
		return nil, fmt.Errorf("批量队列容量必须 >= 1: %d", maxSize)
	}
	if _, err := circuits.Lookup(family); err != nil {
		return nil, err
	}
	switch policy {
	case OverflowDropOldest, OverflowReject:
	case "":
		policy = OverflowDropOldest
	default:
		return nil, fmt.Errorf("未知的队列溢出策略: %s", policy)
	}

	return &BatchQueue{
		logger:  logger,
		prover:  prover,
		events:  events,
		family:  family,
		maxSize: maxSize,
		policy:  policy,
		items:   make([]types.BatchItem, 0, maxSize),
	}, nil
}

// Family 队列绑定的电路族
func (q *BatchQueue) Family() types.CircuitFamily {
	return q.family
}

// Queue 入队一对 (见证, 承诺)，入参被复制
func (q *BatchQueue) Queue(witness, commitment []byte) error {
	item := types.BatchItem{
		ID:         uuid.NewString(),
		Witness:    append([]byte(nil), witness...),
		Commitment: append([]byte(nil), commitment...),
		QueuedAt:   time.Now(),
	}

	q.mu.Lock()
	var evicted *types.BatchItem
	if len(q.items) >= q.maxSize {
		if q.policy == OverflowReject {
			q.mu.Unlock()
			return WrapQueueFullError(q.maxSize)
		}
		oldest := q.items[0]
		evicted = &oldest
		q.items = append(q.items[:0], q.items[1:]...)
	}
	q.items = append(q.items, item)
	depth := len(q.items)
	q.mu.Unlock()

	batchQueueDepth.Set(float64(depth))
	if evicted != nil {
		batchEvictionsTotal.Inc()
		q.logger.Warnf("批量队列已满，丢弃最早的未证明条目: family=%s, id=%s, queued_at=%s",
			q.family, evicted.ID, evicted.QueuedAt.Format(time.RFC3339Nano))
		if q.events != nil {
			q.events.Publish(types.EventTypeBatchEvicted, evicted.ID)
		}
	}
	return nil
}

// IsReady 队列是否已满
func (q *BatchQueue) IsReady() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) >= q.maxSize
}

// Flush 取出全部条目并清空队列
func (q *BatchQueue) Flush() []types.BatchItem {
	q.mu.Lock()
	items := q.items
	q.items = make([]types.BatchItem, 0, q.maxSize)
	q.mu.Unlock()

	batchQueueDepth.Set(0)
	return items
}

// ProveBatch 证明全部条目，返回按入队顺序排列的证明
func (q *BatchQueue) ProveBatch(ctx context.Context) ([][]byte, error) {
	results, err := q.ProveBatchItems(ctx)
	if err != nil {
		return nil, err
	}
	proofs := make([][]byte, len(results))
	for i, r := range results {
		proofs[i] = r.Proof
	}
	return proofs, nil
}

// ProveBatchItems 证明全部条目并保留条目 ID 与承诺
//
// 遇到第一个失败立即返回；已取出但未证明的条目被丢弃并记录日志。
func (q *BatchQueue) ProveBatchItems(ctx context.Context) ([]types.BatchProof, error) {
	items := q.Flush()
	if len(items) == 0 {
		return nil, nil
	}

	start := time.Now()
	results := make([]types.BatchProof, 0, len(items))
	for i, item := range items {
		proof, err := q.prover.Prove(ctx, q.family, item.Witness, item.Commitment)
		if err != nil {
			q.logger.Errorf("批量证明失败，丢弃剩余条目: family=%s, id=%s, index=%d, lost=%d, err=%v",
				q.family, item.ID, i, len(items)-i, err)
			return nil, fmt.Errorf("批量证明失败: id=%s: %w", item.ID, err)
		}
		results = append(results, types.BatchProof{
			ItemID:     item.ID,
			Commitment: item.Commitment,
			Proof:      proof,
		})
	}

	q.logger.Infof("批量证明完成: family=%s, count=%d, 耗时=%v", q.family, len(results), time.Since(start))
	return results, nil
}

// Status 返回 (当前长度, 容量)
func (q *BatchQueue) Status() (int, int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items), q.maxSize
}
