package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultDebounceFoldersMs = 500 // 文件夹列表搜索静默期，单位毫秒
	DefaultDebounceFilesMs   = 800 // 文件列表搜索静默期，单位毫秒
)

// DebounceConfig 搜索防抖配置；每个视图可以有不同的静默期.
type DebounceConfig struct {
	FoldersMs int `mapstructure:"folders_ms" rule:"min=0,max=5000"`
	FilesMs   int `mapstructure:"files_ms"   rule:"min=0,max=5000"`
}

// GetFoldersDelay 返回文件夹搜索静默期.
func (d *DebounceConfig) GetFoldersDelay() time.Duration {
	return time.Duration(d.FoldersMs) * time.Millisecond
}

// GetFilesDelay 返回文件搜索静默期.
func (d *DebounceConfig) GetFilesDelay() time.Duration {
	return time.Duration(d.FilesMs) * time.Millisecond
}

func (d *DebounceConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("debounce.folders_ms", DefaultDebounceFoldersMs)
	v.SetDefault("debounce.files_ms", DefaultDebounceFilesMs)
}
