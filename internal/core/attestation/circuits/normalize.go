package circuits

import (
	"github.com/weisyn/zkattest/pkg/types"
)

// NormalizeMode 超长见证的处理方式
type NormalizeMode uint8

const (
	// RejectOverlong 超长见证返回 ErrWitnessTooLong
	RejectOverlong NormalizeMode = iota

	// LegacyTruncate 超长见证静默截断（兼容旧行为）
	LegacyTruncate
)

// Normalize 把见证规整为电路族的固定长度
//
// 短见证在末尾补零；超长见证按 mode 报错或截断。
// 证明、主机侧哈希和消费者都必须经过这一个函数，否则承诺与电路不一致。
// 返回的切片总是新分配的，调用方可以安全修改。
func Normalize(family types.CircuitFamily, witness []byte, mode NormalizeMode) ([]byte, error) {
	spec, err := Lookup(family)
	if err != nil {
		return nil, err
	}

	if len(witness) > spec.WitnessLen && mode != LegacyTruncate {
		return nil, WrapWitnessTooLongError(family, spec.WitnessLen, len(witness))
	}

	out := make([]byte, spec.WitnessLen)
	copy(out, witness)
	return out, nil
}
