package zkproof

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"

	"github.com/weisyn/zkattest/internal/core/attestation/circuits"
	"github.com/weisyn/zkattest/pkg/types"
)

// 密钥缓存文件格式
//
//	magic(8) | version(2) | family(2) | fingerprint(32) | payloadDigest(32) | pkLen(8) | vkLen(8)
//	payload = ProvingKey || VerifyingKey
//
// 整数均为大端序。gnark 不能从 ProvingKey 推导 VerifyingKey，所以两者都要落盘。
const (
	keyCacheMagic   = "WESZKKEY"
	keyCacheVersion = uint16(1)

	keyCacheHeaderSize = 8 + 2 + 2 + sha256.Size + sha256.Size + 8 + 8

	// maxKeyPayload 读取前的长度上限，防止损坏的头部触发巨量分配
	maxKeyPayload = 1 << 30
)

type keyCacheHeader struct {
	Version       uint16
	Family        uint16
	Fingerprint   [sha256.Size]byte
	PayloadDigest [sha256.Size]byte
	PKLen         uint64
	VKLen         uint64
}

// circuitFingerprint 电路指纹
//
// 覆盖电路族规格、组合函数常量、曲线以及编译后约束系统的规模；
// 电路约束发生任何结构变化都会改变约束或变量个数，从而让旧缓存失效。
func circuitFingerprint(family types.CircuitFamily, ccs constraint.ConstraintSystem) ([sha256.Size]byte, error) {
	spec, err := circuits.Lookup(family)
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	desc := fmt.Sprintf("zkattest/circuit/v1|family=%s|kind=%s|witness=%d|publics=%d|R=%d|curve=%s|constraints=%d|public=%d|secret=%d",
		family, spec.Kind, spec.WitnessLen, spec.PublicInputs(), circuits.RollingHashBase, ecc.BN254,
		ccs.GetNbConstraints(), ccs.GetNbPublicVariables(), ccs.GetNbSecretVariables())
	return sha256.Sum256([]byte(desc)), nil
}

// writeKeyCache 原子写入密钥缓存（临时文件 + rename）
func writeKeyCache(path string, family types.CircuitFamily, fingerprint [sha256.Size]byte, pk groth16.ProvingKey, vk groth16.VerifyingKey) error {
	var pkBuf, vkBuf bytes.Buffer
	if _, err := pk.WriteTo(&pkBuf); err != nil {
		return WrapSerializationError("proving key", err)
	}
	if _, err := vk.WriteTo(&vkBuf); err != nil {
		return WrapSerializationError("verifying key", err)
	}

	digest := sha256.New()
	digest.Write(pkBuf.Bytes())
	digest.Write(vkBuf.Bytes())

	header := keyCacheHeader{
		Version:     keyCacheVersion,
		Family:      uint16(family),
		Fingerprint: fingerprint,
		PKLen:       uint64(pkBuf.Len()),
		VKLen:       uint64(vkBuf.Len()),
	}
	copy(header.PayloadDigest[:], digest.Sum(nil))

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("创建密钥目录失败: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("创建临时密钥文件失败: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // rename 成功后为空操作

	if _, err := tmp.Write([]byte(keyCacheMagic)); err != nil {
		tmp.Close()
		return err
	}
	if err := binary.Write(tmp, binary.BigEndian, &header); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(pkBuf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(vkBuf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// readKeyCache 读取并校验密钥缓存
//
// 文件不存在时返回 os.ErrNotExist（可用 errors.Is 判断）；
// 其余任何不一致都返回 ErrKeyCacheCorrupt。
func readKeyCache(path string, family types.CircuitFamily, fingerprint [sha256.Size]byte) (pk groth16.ProvingKey, vk groth16.VerifyingKey, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if len(data) < keyCacheHeaderSize {
		return nil, nil, WrapKeyCacheCorruptError(path, "truncated header")
	}
	if string(data[:len(keyCacheMagic)]) != keyCacheMagic {
		return nil, nil, WrapKeyCacheCorruptError(path, "bad magic")
	}

	var header keyCacheHeader
	if err := binary.Read(bytes.NewReader(data[len(keyCacheMagic):keyCacheHeaderSize]), binary.BigEndian, &header); err != nil {
		return nil, nil, WrapKeyCacheCorruptError(path, "unreadable header")
	}
	switch {
	case header.Version != keyCacheVersion:
		return nil, nil, WrapKeyCacheCorruptError(path, fmt.Sprintf("unsupported version %d", header.Version))
	case header.Family != uint16(family):
		return nil, nil, WrapKeyCacheCorruptError(path, "family mismatch")
	case header.Fingerprint != fingerprint:
		return nil, nil, WrapKeyCacheCorruptError(path, "circuit fingerprint mismatch")
	case header.PKLen > maxKeyPayload || header.VKLen > maxKeyPayload:
		return nil, nil, WrapKeyCacheCorruptError(path, "payload too large")
	case uint64(len(data)-keyCacheHeaderSize) != header.PKLen+header.VKLen:
		return nil, nil, WrapKeyCacheCorruptError(path, "payload length mismatch")
	}

	payload := data[keyCacheHeaderSize:]
	if sha256.Sum256(payload) != header.PayloadDigest {
		return nil, nil, WrapKeyCacheCorruptError(path, "payload digest mismatch")
	}

	// 摘要已校验，解码失败或 panic 只可能来自格式变化
	defer func() {
		if r := recover(); r != nil {
			pk, vk = nil, nil
			err = WrapKeyCacheCorruptError(path, fmt.Sprintf("decode panic: %v", r))
		}
	}()

	pk = groth16.NewProvingKey(ecc.BN254)
	if err := readExact(pk, payload[:header.PKLen]); err != nil {
		return nil, nil, WrapKeyCacheCorruptError(path, "proving key: "+err.Error())
	}
	// ReadFrom 内部完成配对常量预计算
	vk = groth16.NewVerifyingKey(ecc.BN254)
	if err := readExact(vk, payload[header.PKLen:]); err != nil {
		return nil, nil, WrapKeyCacheCorruptError(path, "verifying key: "+err.Error())
	}
	return pk, vk, nil
}

// readExact 解码并要求消费全部字节
func readExact(dst io.ReaderFrom, data []byte) error {
	r := bytes.NewReader(data)
	if _, err := dst.ReadFrom(r); err != nil {
		return err
	}
	if r.Len() != 0 {
		return fmt.Errorf("%d trailing bytes", r.Len())
	}
	return nil
}
