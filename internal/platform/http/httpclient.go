// Package http holds the HTTP plumbing shared by the service: the outbound
// client used for the mail provider and the health endpoint.
package http

import (
	"net"
	"net/http"
	"time"
)

const (
	dialTimeout         = 5 * time.Second
	tlsHandshakeTimeout = 5 * time.Second
	idleConnTimeout     = 90 * time.Second
	// 通知メールは単一ホスト宛てなので少数の接続を使い回す
	maxIdleConnsPerHost = 4
)

// NewHTTPClient は外部サービス（メール送信API）呼び出し用のHTTPクライアントを作成します。
//
//   - timeout はリクエスト全体の上限。0以下の場合は10秒を使う
//   - http.DefaultClient はタイムアウトが無いため使わない
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        maxIdleConnsPerHost * 2,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
		ForceAttemptHTTP2:   true,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
