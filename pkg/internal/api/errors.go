// Package api 实现门户后端 REST 契约的 HTTP 客户端.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
)

var (
	// ErrNetwork 请求无法完成（超时、DNS、连接被重置等）.
	ErrNetwork = errors.New("network failure")
	// ErrUnavailable 熔断器处于打开状态，请求未发出.
	ErrUnavailable = errors.New("backend temporarily unavailable")
)

// BackendError 后端返回的非 2xx 响应.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
}

// newBackendError 从错误负载中提取人类可读信息，缺省回退到状态文本.
func newBackendError(status int, body []byte) *BackendError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	_ = sonic.Unmarshal(body, &payload)

	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}

	if msg == "" {
		msg = http.StatusText(status)
	}

	return &BackendError{StatusCode: status, Message: msg}
}
