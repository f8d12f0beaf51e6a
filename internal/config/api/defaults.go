package api

import "time"

const (
	defaultHTTPEnabled = false
	defaultHTTPHost    = "127.0.0.1"
	defaultHTTPPort    = 8089

	defaultHTTPReadTimeout  = 15 * time.Second
	defaultHTTPWriteTimeout = 60 * time.Second // 含证明生成时间

	// 证明约 200 字节，承诺 32 字节，十六进制编码后远小于此值
	defaultMaxRequestSize = 64 * 1024
)
