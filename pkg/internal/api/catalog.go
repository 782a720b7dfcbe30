package api

import (
	"context"
	"fmt"
	"time"

	"github.com/digesto-dev/digesto/pkg/cache"
	"github.com/digesto-dev/digesto/pkg/internal/storage/kv"
	"github.com/digesto-dev/digesto/pkg/internal/types"
)

const tagsCacheKey = "tags"

// Catalog 在 Client 之上为标签和分类列表增加本地 TTL 缓存；
// 两者都是整表返回的小列表，没必要每次导航都重新拉取.
type Catalog struct {
	*Client

	cache *cache.Cache
	ttl   time.Duration
}

// NewCatalog 创建带缓存的客户端；store 为 nil 或 ttl<=0 时退化为直通.
func NewCatalog(client *Client, store kv.KVStore, ttl time.Duration) *Catalog {
	ct := &Catalog{Client: client, ttl: ttl}
	if store != nil && ttl > 0 {
		ct.cache = cache.NewCache(store)
	}

	return ct
}

func categoriesCacheKey(folderID int64) string {
	return fmt.Sprintf("categories:%d", folderID)
}

// ListCategories 获取文件夹内的分类列表，带缓存.
func (ct *Catalog) ListCategories(ctx context.Context, folderID int64) ([]types.Category, error) {
	if ct.cache == nil {
		return ct.Client.ListCategories(ctx, folderID)
	}

	return cache.GetOrSet(ctx, ct.cache, categoriesCacheKey(folderID), func() ([]types.Category, error) {
		return ct.Client.ListCategories(ctx, folderID)
	}, ct.ttl)
}

// ListTags 获取全部标签，带缓存.
func (ct *Catalog) ListTags(ctx context.Context) ([]types.Tag, error) {
	if ct.cache == nil {
		return ct.Client.ListTags(ctx)
	}

	return cache.GetOrSet(ctx, ct.cache, tagsCacheKey, func() ([]types.Tag, error) {
		return ct.Client.ListTags(ctx)
	}, ct.ttl)
}

// InvalidateFolder 文件夹内发生变更（上传/归档）后丢弃分类缓存，
// 避免 file_count 漂移.
func (ct *Catalog) InvalidateFolder(ctx context.Context, folderID int64) {
	if ct.cache == nil {
		return
	}

	_ = ct.cache.Delete(ctx, categoriesCacheKey(folderID))
}
