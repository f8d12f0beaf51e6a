package consumers

import (
	"context"
	"time"

	"github.com/weisyn/zkattest/pkg/interfaces/attestation"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

// BatchProver 支持保留条目信息的批量队列
type BatchProver interface {
	attestation.BatchQueue

	// ProveBatchItems 证明全部条目并返回条目 ID 与承诺
	ProveBatchItems(ctx context.Context) ([]types.BatchProof, error)
}

// StorageAttestor 存储状态证明
//
// 高频写入只计算承诺并入队，队列满或调用 Drain 时统一证明。
//
// ⚠️ 数据块即见证：不足 64 字节补零，超过 64 字节返回 ErrWitnessTooLong，
// 不做截断。
// 更大的数据需由调用方先压缩为摘要再记录。
type StorageAttestor struct {
	logger  log.Logger
	manager attestation.Manager
	queue   BatchProver
}

// NewStorageAttestor 创建存储状态证明器
func NewStorageAttestor(logger log.Logger, manager attestation.Manager, queue BatchProver) *StorageAttestor {
	return &StorageAttestor{logger: logger, manager: manager, queue: queue}
}

// RecordWrite 记录一次写入，返回承诺以及队列是否已满
func (s *StorageAttestor) RecordWrite(blob []byte) ([]byte, bool, error) {
	commitment, err := s.manager.Commit(types.DataIntegrity, blob)
	if err != nil {
		return nil, false, err
	}
	if err := s.queue.Queue(blob, commitment); err != nil {
		return nil, false, err
	}
	return commitment, s.queue.IsReady(), nil
}

// Drain 证明队列中全部写入
func (s *StorageAttestor) Drain(ctx context.Context) ([]*types.Attestation, error) {
	results, err := s.queue.ProveBatchItems(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	atts := make([]*types.Attestation, 0, len(results))
	for _, r := range results {
		atts = append(atts, &types.Attestation{
			Family:     types.DataIntegrity,
			Commitment: r.Commitment,
			Proof:      r.Proof,
			CreatedAt:  now,
		})
	}
	if len(atts) > 0 {
		s.logger.Debugf("存储写入证明完成: count=%d", len(atts))
	}
	return atts, nil
}

// AttestBlob 立即证明单个数据块，不经过队列
func (s *StorageAttestor) AttestBlob(ctx context.Context, blob []byte) (*types.Attestation, error) {
	return s.manager.Attest(ctx, types.DataIntegrity, blob)
}

// VerifyBlob 验证数据块与证明一致
func (s *StorageAttestor) VerifyBlob(blob []byte, att *types.Attestation) bool {
	if att == nil || att.Family != types.DataIntegrity {
		return false
	}
	if err := matchCommitment(s.manager, types.DataIntegrity, blob, att); err != nil {
		return false
	}
	return s.manager.Verify(types.DataIntegrity, att.Proof, att.Commitment)
}
