package consumers

import (
	"context"

	"github.com/weisyn/zkattest/pkg/interfaces/attestation"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

// BootLabel 启动路径标签
type BootLabel string

const (
	BootGenesis  BootLabel = "genesis"
	BootRecovery BootLabel = "recovery"
	BootSafeMode BootLabel = "safe-mode"
)

// BootLabels 返回已登记的启动路径标签
func BootLabels() []BootLabel {
	return []BootLabel{BootGenesis, BootRecovery, BootSafeMode}
}

// IsValid 是否为已登记标签
func (l BootLabel) IsValid() bool {
	for _, known := range BootLabels() {
		if l == known {
			return true
		}
	}
	return false
}

// BootAttestor 启动路径证明
type BootAttestor struct {
	logger  log.Logger
	manager attestation.Manager
}

// NewBootAttestor 创建启动路径证明器
func NewBootAttestor(logger log.Logger, manager attestation.Manager) *BootAttestor {
	return &BootAttestor{logger: logger, manager: manager}
}

// AttestBootPath 证明节点经由指定启动路径启动，不暴露路径之外的信息
func (b *BootAttestor) AttestBootPath(ctx context.Context, label BootLabel) (*types.Attestation, error) {
	if !label.IsValid() {
		return nil, WrapUnknownBootLabelError(string(label))
	}
	att, err := b.manager.Attest(ctx, types.GenesisPath, []byte(label))
	if err != nil {
		return nil, err
	}
	b.logger.Infof("启动路径证明完成: label=%s", label)
	return att, nil
}

// VerifyBootPath 验证证明确实对应声明的启动路径
func (b *BootAttestor) VerifyBootPath(label BootLabel, att *types.Attestation) bool {
	if att == nil || att.Family != types.GenesisPath || !label.IsValid() {
		return false
	}
	if err := matchCommitment(b.manager, types.GenesisPath, []byte(label), att); err != nil {
		b.logger.Debugf("启动路径承诺校验失败: label=%s, err=%v", label, err)
		return false
	}
	return b.manager.Verify(types.GenesisPath, att.Proof, att.Commitment)
}
