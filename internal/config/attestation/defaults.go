package attestation

import "time"

// 证明子系统默认配置值
const (
	// defaultKeyDir 证明密钥缓存目录
	defaultKeyDir = "./data/zkkeys"

	// defaultCurve 目前只支持 BN254
	defaultCurve = "bn254"

	// defaultBatchMaxSize 批量队列容量
	defaultBatchMaxSize = 10

	// defaultLegacyTruncate 超长见证默认报错而不是截断
	defaultLegacyTruncate = false

	// defaultVerifyCacheEnabled 默认关闭验证结果缓存
	defaultVerifyCacheEnabled = false

	// defaultVerifyCacheLifeWindow 验证结果缓存有效期
	defaultVerifyCacheLifeWindow = 10 * time.Minute

	// defaultSlashAmount vigil 违规罚没数量
	defaultSlashAmount uint64 = 100
)

// 队列溢出策略
const (
	// OverflowDropOldest 丢弃最早的未证明条目
	OverflowDropOldest = "drop_oldest"

	// OverflowReject 拒绝新条目并返回 ErrQueueFull
	OverflowReject = "reject"
)
