package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/digesto-dev/digesto/pkg/configs"
	"github.com/digesto-dev/digesto/pkg/log"
)

// Options 客户端构造参数.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	RateLimit  configs.RateLimitConfig
	Breaker    configs.CircuitBreakerConfig
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// OptionsFromConfig 从全局配置组装客户端参数.
func OptionsFromConfig(cfg *configs.AppConfig) Options {
	return Options{
		BaseURL:   cfg.Client.BaseURL,
		Timeout:   cfg.Client.GetTimeoutDuration(),
		UserAgent: cfg.Client.UserAgent,
		RateLimit: cfg.RateLimit,
		Breaker:   cfg.CircuitBreaker,
	}
}

// Client 门户后端 HTTP 客户端；限流和熔断都在出站侧生效.
type Client struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	http      *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
	logger    *zerolog.Logger
}

// NewClient 创建客户端实例.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = configs.DefaultTimeout * time.Second
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Logger()
	}

	c := &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		timeout:   timeout,
		http:      httpClient,
		logger:    logger,
	}

	if opts.RateLimit.Enabled && opts.RateLimit.RPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit.RPS), opts.RateLimit.Burst)
	}

	if opts.Breaker.Enabled {
		c.breaker = newBreaker(opts.Breaker)
	}

	return c
}

// newBreaker 基于 gobreaker 的简单熔断.
func newBreaker(cfg configs.CircuitBreakerConfig) *gobreaker.CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        "portal-backend",
		MaxRequests: cfg.MaxRequestsInHalf,
		Interval:    time.Duration(cfg.IntervalSeconds) * time.Second,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			total := counts.Requests
			if total < cfg.MinRequests {
				return false
			}
			// 失败比例
			failureRate := float64(counts.TotalFailures) / float64(total)

			return failureRate >= cfg.FailureRate
		},
	}

	return gobreaker.NewCircuitBreaker(settings)
}

// respData 原始响应，交给调用方解码.
type respData struct {
	status int
	body   []byte
}

// do 执行一次请求：限流等待、熔断统计、请求ID注入.
// 传输错误和 5xx 计入熔断失败；4xx 不计入.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("Accept", "application/json")

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()

	exec := func() (any, error) {
		resp, doErr := c.http.Do(req)
		if doErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrNetwork, doErr)
		}
		defer func() { _ = resp.Body.Close() }()

		b, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrNetwork, readErr)
		}

		rd := &respData{status: resp.StatusCode, body: b}

		// 5xx 视为失败，触发熔断计数
		if resp.StatusCode >= http.StatusInternalServerError {
			return rd, newBackendError(resp.StatusCode, b)
		}

		return rd, nil
	}

	var (
		out any

		execErr error
	)

	if c.breaker != nil {
		out, execErr = c.breaker.Execute(exec)
		if errors.Is(execErr, gobreaker.ErrOpenState) || errors.Is(execErr, gobreaker.ErrTooManyRequests) {
			c.logger.Warn().Str("request_id", reqID).Str("path", path).Msg("circuit breaker rejected request")

			return nil, ErrUnavailable
		}
	} else {
		out, execErr = exec()
	}

	if execErr != nil {
		c.logger.Debug().Str("request_id", reqID).Str("method", method).Str("path", path).
			Dur("elapsed", time.Since(start)).Err(execErr).Msg("request failed")

		return nil, execErr
	}

	rd, ok := out.(*respData)
	if !ok {
		return nil, fmt.Errorf("%w: empty response", ErrNetwork)
	}

	if rd.status >= http.StatusBadRequest {
		return nil, newBackendError(rd.status, rd.body)
	}

	c.logger.Debug().Str("request_id", reqID).Str("method", method).Str("path", path).
		Int("status", rd.status).Dur("elapsed", time.Since(start)).Msg("request completed")

	return rd.body, nil
}

// getJSON GET 并解码 JSON 响应体.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	body, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
