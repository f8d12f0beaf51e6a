package zkproof

import (
	"context"
	"crypto/sha256"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	gnarklogger "github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"

	attestationconfig "github.com/weisyn/zkattest/internal/config/attestation"
	"github.com/weisyn/zkattest/internal/core/attestation/circuits"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

// KeySource 密钥来源
type KeySource string

const (
	KeySourceCache KeySource = "cache"
	KeySourceSetup KeySource = "setup"
)

// KeyPair 一个电路族的编译结果与密钥
//
// 初始化完成后只读，可在多个 goroutine 间共享。
type KeyPair struct {
	Family      types.CircuitFamily
	CS          constraint.ConstraintSystem
	PK          groth16.ProvingKey
	VK          groth16.VerifyingKey
	Fingerprint [sha256.Size]byte
	Source      KeySource
}

// keyGate 单个电路族的一次性初始化门
type keyGate struct {
	once sync.Once
	pair atomic.Pointer[KeyPair]
	err  error // 仅在 once.Do 返回后读取
}

var silenceGnarkOnce sync.Once

// silenceGnarkLogger gnark 使用 zerolog 输出编译和 setup 进度，关闭以免污染日志
func silenceGnarkLogger() {
	silenceGnarkOnce.Do(func() {
		gnarklogger.Set(zerolog.New(io.Discard).Level(zerolog.Disabled))
	})
}

// KeyStore 证明密钥管理器
//
// 🎯 **职责**：为每个电路族提供唯一的 (ProvingKey, VerifyingKey)
//
// 📋 **生命周期**：
//   - 每个电路族最多初始化一次；并发调用方阻塞等待并共享同一结果
//   - 初始化失败会被缓存，后续调用返回同一错误（setup 失败对启动是致命的）
//   - 有缓存路径时优先加载；缓存缺失或损坏则重新 setup 并原子覆盖
//
// ⚠️ KeyStore 是显式构造、注入的值，不存在进程级单例。
type KeyStore struct {
	logger  log.Logger
	options *attestationconfig.AttestationOptions
	gates   map[types.CircuitFamily]*keyGate // 构造后只读
}

// NewKeyStore 创建密钥管理器
func NewKeyStore(logger log.Logger, options *attestationconfig.AttestationOptions) *KeyStore {
	silenceGnarkLogger()

	if options == nil {
		options = attestationconfig.New(nil).GetOptions()
	}
	gates := make(map[types.CircuitFamily]*keyGate)
	for _, family := range circuits.Families() {
		gates[family] = &keyGate{}
	}
	return &KeyStore{
		logger:  logger,
		options: options,
		gates:   gates,
	}
}

// Setup 编译电路并执行 Groth16 可信设置（不读写缓存，不安装到 KeyStore）
func (ks *KeyStore) Setup(family types.CircuitFamily) (*KeyPair, error) {
	ccs, fingerprint, err := ks.compile(family)
	if err != nil {
		return nil, err
	}
	return ks.setup(family, ccs, fingerprint)
}

func (ks *KeyStore) compile(family types.CircuitFamily) (constraint.ConstraintSystem, [sha256.Size]byte, error) {
	ccs, err := circuits.Compile(family)
	if err != nil {
		if errors.Is(err, circuits.ErrUnsupportedFamily) {
			return nil, [sha256.Size]byte{}, err
		}
		return nil, [sha256.Size]byte{}, WrapSetupFailedError(family, err)
	}
	fingerprint, err := circuitFingerprint(family, ccs)
	if err != nil {
		return nil, [sha256.Size]byte{}, WrapSetupFailedError(family, err)
	}
	return ccs, fingerprint, nil
}

func (ks *KeyStore) setup(family types.CircuitFamily, ccs constraint.ConstraintSystem, fingerprint [sha256.Size]byte) (*KeyPair, error) {
	start := time.Now()
	// Setup 返回的 vk 已完成配对常量预计算
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, WrapSetupFailedError(family, err)
	}
	ks.logger.Infof("电路可信设置完成: family=%s, constraints=%d, 耗时=%v", family, ccs.GetNbConstraints(), time.Since(start))

	return &KeyPair{
		Family:      family,
		CS:          ccs,
		PK:          pk,
		VK:          vk,
		Fingerprint: fingerprint,
		Source:      KeySourceSetup,
	}, nil
}

// LoadOrSetup 加载或生成电路族的密钥
//
// cachePath 为空时只在内存中 setup。同一电路族只会执行一次，
// 之后的调用（包括不同的 cachePath）直接返回第一次的结果。
func (ks *KeyStore) LoadOrSetup(family types.CircuitFamily, cachePath string) (*KeyPair, error) {
	gate, ok := ks.gates[family]
	if !ok {
		return nil, circuits.WrapUnsupportedFamilyError(family)
	}

	gate.once.Do(func() {
		pair, err := ks.loadOrSetup(family, cachePath)
		if err != nil {
			gate.err = err
			ks.logger.Errorf("电路密钥初始化失败: family=%s, err=%v", family, err)
			return
		}
		gate.pair.Store(pair)
		keyInitsTotal.WithLabelValues(family.String(), string(pair.Source)).Inc()
	})

	if pair := gate.pair.Load(); pair != nil {
		return pair, nil
	}
	return nil, gate.err
}

func (ks *KeyStore) loadOrSetup(family types.CircuitFamily, cachePath string) (*KeyPair, error) {
	ccs, fingerprint, err := ks.compile(family)
	if err != nil {
		return nil, err
	}

	if cachePath != "" {
		pk, vk, err := readKeyCache(cachePath, family, fingerprint)
		switch {
		case err == nil:
			ks.logger.Infof("已从缓存加载电路密钥: family=%s, path=%s", family, cachePath)
			return &KeyPair{
				Family:      family,
				CS:          ccs,
				PK:          pk,
				VK:          vk,
				Fingerprint: fingerprint,
				Source:      KeySourceCache,
			}, nil
		case errors.Is(err, os.ErrNotExist):
			ks.logger.Infof("密钥缓存不存在，执行可信设置: family=%s, path=%s", family, cachePath)
		case errors.Is(err, ErrKeyCacheCorrupt):
			ks.logger.Warnf("密钥缓存无效，重新生成并覆盖: family=%s, err=%v", family, err)
		default:
			ks.logger.Warnf("读取密钥缓存失败，重新生成: family=%s, err=%v", family, err)
		}
	}

	pair, err := ks.setup(family, ccs, fingerprint)
	if err != nil {
		return nil, err
	}

	if cachePath != "" {
		// 写缓存失败不影响本次运行，下次启动会重新 setup
		if err := writeKeyCache(cachePath, family, fingerprint, pair.PK, pair.VK); err != nil {
			ks.logger.Warnf("写入密钥缓存失败: family=%s, path=%s, err=%v", family, cachePath, err)
		} else {
			ks.logger.Debugf("密钥缓存已写入: family=%s, path=%s", family, cachePath)
		}
	}
	return pair, nil
}

// InitAll 初始化目录中全部电路族的密钥，遇到第一个错误立即返回
func (ks *KeyStore) InitAll(ctx context.Context) error {
	for _, family := range circuits.Families() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := ks.LoadOrSetup(family, ks.options.KeyCachePath(family)); err != nil {
			return err
		}
	}
	return nil
}

// Keys 获取已就绪的密钥；未初始化时返回 ErrKeysNotInitialized
func (ks *KeyStore) Keys(family types.CircuitFamily) (*KeyPair, error) {
	gate, ok := ks.gates[family]
	if !ok {
		return nil, circuits.WrapUnsupportedFamilyError(family)
	}
	pair := gate.pair.Load()
	if pair == nil {
		return nil, WrapKeysNotInitializedError(family)
	}
	return pair, nil
}

// Ready 电路族密钥是否就绪
func (ks *KeyStore) Ready(family types.CircuitFamily) bool {
	_, err := ks.Keys(family)
	return err == nil
}
