package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/digesto-dev/digesto/pkg/internal/types"
)

// Fetcher 后端数据源；api.Catalog 满足该接口，测试用假实现.
type Fetcher interface {
	ListFolders(ctx context.Context, q types.ListFoldersQuery) (*types.Page[types.Folder], error)
	ListCategories(ctx context.Context, folderID int64) ([]types.Category, error)
	ListFiles(ctx context.Context, folderID int64, q types.ListFilesQuery) (*types.Page[types.File], error)
	ArchiveFile(ctx context.Context, fileID int64) error
}

// FolderInvalidator 可选扩展：带缓存的 Fetcher 在文件夹内容变更后
// 失效对应的分类缓存.
type FolderInvalidator interface {
	InvalidateFolder(ctx context.Context, folderID int64)
}

// fetchResult 一次取数的结果；scope+seq 用于在交付前丢弃过期响应.
type fetchResult struct {
	scope string
	seq   uint64

	folders    []types.Folder
	categories []types.Category
	files      []types.File

	currentPage int
	totalPages  int

	err error
}

// orchestrator 取数编排：每个作用域同一时刻只有一个"当前"请求；
// 新请求取代而不是排队在未完成请求之后，迟到的过期响应按签发顺序
// 丢弃（last-request-wins）.不取消传输层请求，只在完成时检查序号.
type orchestrator struct {
	fetcher Fetcher
	timeout time.Duration
	deliver func(fetchResult)
	logger  *zerolog.Logger

	mu  sync.Mutex
	seq map[string]uint64

	// 同 key 的并发取数合并为一次后端调用
	group singleflight.Group
}

func newOrchestrator(fetcher Fetcher, timeout time.Duration, deliver func(fetchResult), logger *zerolog.Logger) *orchestrator {
	return &orchestrator{
		fetcher: fetcher,
		timeout: timeout,
		deliver: deliver,
		logger:  logger,
		seq:     make(map[string]uint64),
	}
}

// issue 为作用域签发新的请求序号；旧序号随即过期.
func (o *orchestrator) issue(scope string) uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.seq[scope]++

	return o.seq[scope]
}

// isCurrent 序号是否仍是该作用域的当前请求.
func (o *orchestrator) isCurrent(scope string, seq uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.seq[scope] == seq
}

// fingerprint 查询指纹，作为 singleflight 的合并键.
func fingerprint(scope, encoded string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(scope+"?"+encoded))
}

// start 在后台执行一次取数并在仍为当前请求时交付结果.
func (o *orchestrator) start(scope, key string, load func(ctx context.Context) fetchResult) uint64 {
	seq := o.issue(scope)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
		defer cancel()

		v, _, _ := o.group.Do(key, func() (any, error) {
			return load(ctx), nil
		})

		res, ok := v.(fetchResult)
		if !ok {
			return
		}

		res.scope = scope
		res.seq = seq

		if !o.isCurrent(scope, seq) {
			o.logger.Debug().Str("scope", scope).Uint64("seq", seq).Msg("stale response discarded")

			return
		}

		o.deliver(res)
	}()

	return seq
}

// fetchFolders 取文件夹列表.
func (o *orchestrator) fetchFolders(scope string, q types.ListFoldersQuery) uint64 {
	key := fingerprint(scope, q.Values().Encode())

	return o.start(scope, key, func(ctx context.Context) fetchResult {
		page, err := o.fetcher.ListFolders(ctx, q)
		if err != nil {
			return fetchResult{err: err}
		}

		return fetchResult{
			folders:     page.Data,
			currentPage: page.CurrentPage,
			totalPages:  page.TotalPages,
		}
	})
}

// fetchCategories 取文件夹内的分类列表（整表，不分页）.
func (o *orchestrator) fetchCategories(scope string, folderID int64) uint64 {
	key := fingerprint(scope, "")

	return o.start(scope, key, func(ctx context.Context) fetchResult {
		categories, err := o.fetcher.ListCategories(ctx, folderID)
		if err != nil {
			return fetchResult{err: err}
		}

		return fetchResult{
			categories:  categories,
			currentPage: 1,
			totalPages:  1,
		}
	})
}

// fetchFiles 取文件列表.
func (o *orchestrator) fetchFiles(scope string, folderID int64, q types.ListFilesQuery) uint64 {
	key := fingerprint(scope, q.Values().Encode())

	return o.start(scope, key, func(ctx context.Context) fetchResult {
		page, err := o.fetcher.ListFiles(ctx, folderID, q)
		if err != nil {
			return fetchResult{err: err}
		}

		return fetchResult{
			files:       page.Data,
			currentPage: page.CurrentPage,
			totalPages:  page.TotalPages,
		}
	})
}
