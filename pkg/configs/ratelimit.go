package configs

import "github.com/spf13/viper"

const (
	// 默认出站限流配置.
	DefaultRateLimitEnabled = true
	DefaultRateLimitRPS     = 10.0
	DefaultRateLimitBurst   = 20
)

// RateLimitConfig 出站请求限流配置；防止快速交互打爆后端.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`   // 每秒允许的请求数
	Burst   int     `mapstructure:"burst"` // 突发容量
}

func (c *RateLimitConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit.enabled", DefaultRateLimitEnabled)
	v.SetDefault("rate_limit.rps", DefaultRateLimitRPS)
	v.SetDefault("rate_limit.burst", DefaultRateLimitBurst)
}
