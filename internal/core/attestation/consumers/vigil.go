package consumers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/weisyn/zkattest/pkg/interfaces/attestation"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

// Ledger 罚没记账接口，由账本模块实现
type Ledger interface {
	// Slash 从 principal 扣除 amount 个代币
	Slash(principal string, amount uint64) error
}

// Verdict 一次策略执行检查的结果
type Verdict struct {
	Principal string
	Action    string
	Result    types.VerifyResult
	Slashed   bool
}

// Vigil 策略执行与异常检测
//
// 🎯 **罚没规则**：证明验证失败（包括承诺与声明动作不符）即罚没固定数额，
// 罚没只由证明核心的布尔结果触发。
type Vigil struct {
	logger  log.Logger
	manager attestation.Manager
	ledger  Ledger         // 可选，为空时只发布事件
	events  event.EventBus // 可选
	amount  uint64
}

// NewVigil 创建 vigil
func NewVigil(logger log.Logger, manager attestation.Manager, ledger Ledger, events event.EventBus, slashAmount uint64) *Vigil {
	return &Vigil{
		logger:  logger,
		manager: manager,
		ledger:  ledger,
		events:  events,
		amount:  slashAmount,
	}
}

// AttestAction 为动作字符串生成证明
func (v *Vigil) AttestAction(ctx context.Context, action string) (*types.Attestation, error) {
	return v.manager.Attest(ctx, types.PolicyAction, []byte(action))
}

// Enforce 检查 principal 提交的动作证明，失败时罚没
func (v *Vigil) Enforce(principal, action string, att *types.Attestation) (*Verdict, error) {
	verdict := &Verdict{Principal: principal, Action: action, Result: v.check(action, att)}
	if verdict.Result.OK() {
		return verdict, nil
	}

	v.logger.Warnf("策略证明验证失败，执行罚没: principal=%s, result=%s, amount=%d",
		principal, verdict.Result, v.amount)

	if v.ledger != nil {
		if err := v.ledger.Slash(principal, v.amount); err != nil {
			return verdict, fmt.Errorf("罚没失败: principal=%s: %w", principal, err)
		}
	}
	verdict.Slashed = true

	if v.events != nil {
		v.events.Publish(types.EventTypeVigilSlashed, types.SlashEvent{
			Principal: principal,
			Amount:    v.amount,
			Family:    types.PolicyAction,
			Result:    verdict.Result,
			Timestamp: time.Now(),
		})
	}
	return verdict, nil
}

func (v *Vigil) check(action string, att *types.Attestation) types.VerifyResult {
	if att == nil || att.Family != types.PolicyAction {
		return types.VerifyMalformed
	}
	if err := matchCommitment(v.manager, types.PolicyAction, []byte(action), att); err != nil {
		if errors.Is(err, ErrCommitmentMismatch) {
			v.logger.Debugf("策略证明承诺与动作不符: %v", err)
			return types.VerifyInvalid
		}
		return types.VerifyMalformed
	}
	return v.manager.Check(types.PolicyAction, att.Proof, att.Commitment)
}
