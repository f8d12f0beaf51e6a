package circuits

import (
	"errors"
	"fmt"

	"github.com/weisyn/zkattest/pkg/types"
)

var (
	// ErrUnsupportedFamily 未知电路族
	ErrUnsupportedFamily = errors.New("unsupported circuit family")

	// ErrWitnessTooLong 见证超过电路族的固定长度
	ErrWitnessTooLong = errors.New("witness too long")

	// ErrInvalidCommitment 承诺长度错误或不是规范的标量域元素
	ErrInvalidCommitment = errors.New("invalid commitment")
)

// WrapUnsupportedFamilyError 包装未知电路族错误
func WrapUnsupportedFamilyError(family types.CircuitFamily) error {
	return fmt.Errorf("%w: family=%s", ErrUnsupportedFamily, family)
}

// WrapWitnessTooLongError 包装见证超长错误
func WrapWitnessTooLongError(family types.CircuitFamily, max, actual int) error {
	return fmt.Errorf("%w: family=%s, max=%d, actual=%d", ErrWitnessTooLong, family, max, actual)
}

// WrapInvalidCommitmentError 包装无效承诺错误
func WrapInvalidCommitmentError(family types.CircuitFamily, reason string) error {
	return fmt.Errorf("%w: family=%s, reason=%s", ErrInvalidCommitment, family, reason)
}
