package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultBaseURL      = "http://localhost:8080/api/v1" // 后端基础地址
	DefaultTimeout      = 30                             // 请求超时时间，单位秒
	DefaultPageSize     = 10                             // 列表默认每页条数
	DefaultUserAgent    = "digesto-client"               // User-Agent 请求头
	DefaultReloadConfig = true                           // 是否启用配置热重载
	DefaultDebug        = false                          // 是否启用调试模式
	DefaultRefresh      = 0                              // 当前视图自动刷新间隔，单位秒；0 表示关闭
)

type (
	// ClientConfig 后端客户端配置.
	ClientConfig struct {
		BaseURL        string `mapstructure:"base_url"        rule:"required,url"`
		Timeout        int    `mapstructure:"timeout"         rule:"min=1,max=300"`
		PageSize       int    `mapstructure:"page_size"       rule:"min=1,max=100"`
		UserAgent      string `mapstructure:"user_agent"`
		ReloadConfig   bool   `mapstructure:"reload_config"`
		Debug          bool   `mapstructure:"debug"`
		RefreshSeconds int    `mapstructure:"refresh_seconds" rule:"min=0"`
	}
)

// GetTimeoutDuration 返回超时时间作为time.Duration.
func (c *ClientConfig) GetTimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// GetRefreshInterval 返回自动刷新间隔；0 表示关闭.
func (c *ClientConfig) GetRefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// setDefaults 设置客户端配置的默认值.
func (c *ClientConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("client.base_url", DefaultBaseURL)
	v.SetDefault("client.timeout", DefaultTimeout)
	v.SetDefault("client.page_size", DefaultPageSize)
	v.SetDefault("client.user_agent", DefaultUserAgent)
	v.SetDefault("client.reload_config", DefaultReloadConfig)
	v.SetDefault("client.debug", DefaultDebug)
	v.SetDefault("client.refresh_seconds", DefaultRefresh)
}
