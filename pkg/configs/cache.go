package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultCacheEnabled    = true // 是否启用本地缓存
	DefaultCacheTTLSeconds = 300  // 缓存生存时间，单位秒
)

// CacheConfig 本地缓存配置；用于标签和文件夹分类列表.
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLSeconds int  `mapstructure:"ttl_seconds" rule:"min=0"`
}

// GetTTL 返回缓存生存时间.
func (c *CacheConfig) GetTTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func (c *CacheConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("cache.enabled", DefaultCacheEnabled)
	v.SetDefault("cache.ttl_seconds", DefaultCacheTTLSeconds)
}
