package session

import (
	"context"
	crand "crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid"
	"github.com/rs/zerolog"

	"github.com/digesto-dev/digesto/pkg/internal/types"
	"github.com/digesto-dev/digesto/pkg/log"
)

var ulidEntropy = ulid.Monotonic(crand.Reader, 0)

// newSessionID 生成会话标识，用于日志关联.
func newSessionID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}

// Options 会话构造参数.
type Options struct {
	PageSize           int
	FoldersSearchDelay time.Duration
	FilesSearchDelay   time.Duration
	Timeout            time.Duration
	Logger             *zerolog.Logger
	// Confirm 归档前的确认回调；nil 表示总是确认.
	Confirm func(types.File) bool
}

// Controller 拥有一个浏览会话的全部状态（导航+过滤+分页），
// 组件只依赖 Dispatch/Subscribe，不依赖裸的 setter.
// 后端是唯一事实来源：变更操作之后总是重新取数，绝不手工修补内存列表.
type Controller struct {
	id      string
	logger  *zerolog.Logger
	fetcher Fetcher
	orch    *orchestrator
	deb     *Debouncer
	opts    Options

	mu         sync.Mutex
	nav        NavigationState
	filter     FilterState
	page       PageState
	folders    []types.Folder
	categories []types.Category
	files      []types.File
	loading    bool
	err        error

	listeners    map[int]func(Snapshot)
	nextListener int
}

// NewController 创建会话控制器；初始视图为文件夹列表.
func NewController(fetcher Fetcher, opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Logger()
	}

	c := &Controller{
		id:        newSessionID(),
		logger:    logger,
		fetcher:   fetcher,
		deb:       NewDebouncer(),
		opts:      opts,
		nav:       NavigationState{View: ViewFolders},
		filter:    NewFilterState(),
		page:      NewPageState(opts.PageSize),
		listeners: make(map[int]func(Snapshot)),
	}
	c.orch = newOrchestrator(fetcher, opts.Timeout, c.apply, logger)

	logger.Debug().Str("session", c.id).Msg("browsing session created")

	return c
}

// ID 返回会话标识.
func (c *Controller) ID() string {
	return c.id
}

// Subscribe 注册快照监听；返回注销函数.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Snapshot 返回当前状态快照.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

// Start 进入初始的文件夹列表视图并取数.
func (c *Controller) Start() {
	c.mu.Lock()
	c.refetchLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Close 释放定时器等资源.
func (c *Controller) Close() {
	c.deb.Stop()
}

// Dispatch 处理一个用户意图.
func (c *Controller) Dispatch(a Action) {
	// 归档是两阶段操作，确认回调不能在锁内执行
	if ar, ok := a.(ArchiveFileAction); ok {
		c.archive(ar.File)

		return
	}

	c.mu.Lock()
	c.handle(a)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

func (c *Controller) handle(a Action) {
	switch act := a.(type) {
	case OpenFolderAction:
		c.handleOpenFolder(act.Folder)
	case OpenCategoryAction:
		c.handleOpenCategory(act.Category)
	case OpenFolderFilesAction:
		c.handleOpenFolderFiles(act.Folder)
	case BackAction:
		c.handleBack()
	case SetSearchTermAction:
		c.handleSetSearchTerm(act.Term)
	case SetDateFromAction:
		c.handleFilterMutation(func() { c.filter.DateFrom = act.Date })
	case SetDateToAction:
		c.handleFilterMutation(func() { c.filter.DateTo = act.Date })
	case SetTypeAction:
		c.handleFilterMutation(func() { c.filter.TypeOrCategory = act.Type })
	case ToggleTagAction:
		c.handleFilterMutation(func() { c.filter.ToggleTag(act.Tag) })
	case RemoveTagAction:
		c.handleFilterMutation(func() { c.filter.RemoveTag(act.Tag) })
	case ClearFiltersAction:
		c.handleFilterMutation(func() { c.filter.Reset() })
	case GoToPageAction:
		c.handleGoToPage(act.Page)
	case NextPageAction:
		c.handleGoToPage(c.page.CurrentPage + 1)
	case PrevPageAction:
		c.handleGoToPage(c.page.CurrentPage - 1)
	case UploadCompletedAction:
		c.handleMutationRefresh()
	case RefreshAction:
		c.refetchLocked()
	default:
		c.logger.Warn().Str("session", c.id).Msgf("unknown action %T", a)
	}
}

// ===== 导航 =====

// resetForNavigationLocked 导航切换总是重置过滤器和分页，并取消
// 未决的防抖搜索——上一个视图的过期取数绝不能填充新视图.
func (c *Controller) resetForNavigationLocked(prevScope string) {
	c.deb.Cancel(prevScope)
	c.filter.Reset()
	c.page.Reset()
	c.err = nil
}

func (c *Controller) handleOpenFolder(folder types.Folder) {
	if c.nav.View != ViewFolders {
		c.logger.Debug().Str("session", c.id).Stringer("view", c.nav.View).Msg("openFolder ignored outside folder list")

		return
	}

	prev := c.nav.Scope()
	f := folder
	c.nav = NavigationState{View: ViewCategories, Folder: &f}
	c.categories = nil
	c.resetForNavigationLocked(prev)
	c.refetchLocked()
}

func (c *Controller) handleOpenCategory(category types.Category) {
	if c.nav.View != ViewCategories || c.nav.Folder == nil || c.nav.Folder.ID != category.FolderID {
		c.logger.Debug().Str("session", c.id).Int64("category", category.ID).Msg("openCategory ignored outside owning folder")

		return
	}

	prev := c.nav.Scope()
	cat := category
	c.nav = NavigationState{View: ViewFiles, Folder: c.nav.Folder, Category: &cat}
	c.files = nil
	c.resetForNavigationLocked(prev)
	c.refetchLocked()
}

func (c *Controller) handleOpenFolderFiles(folder types.Folder) {
	if c.nav.View == ViewFiles {
		return
	}

	prev := c.nav.Scope()
	f := folder
	c.nav = NavigationState{View: ViewFiles, Folder: &f}
	c.files = nil
	c.resetForNavigationLocked(prev)
	c.refetchLocked()
}

// handleBack 返回上一级并重新取数；不信任缓存的列表，
// 子视图中发生过的变更（归档/上传）必须反映出来.
func (c *Controller) handleBack() {
	prev := c.nav.Scope()

	switch c.nav.View {
	case ViewFiles:
		if c.nav.Category != nil {
			c.nav = NavigationState{View: ViewCategories, Folder: c.nav.Folder}
			c.categories = nil
		} else {
			c.nav = NavigationState{View: ViewFolders}
		}
	case ViewCategories:
		c.nav = NavigationState{View: ViewFolders}
	default:
		// 已在顶层
		return
	}

	c.resetForNavigationLocked(prev)
	c.refetchLocked()
}

// ===== 过滤与分页 =====

// handleSetSearchTerm 搜索词经防抖后取数，静默期内只有最后一次生效；
// 取数固定回到第 1 页.
func (c *Controller) handleSetSearchTerm(term string) {
	if c.nav.View == ViewCategories {
		return
	}

	c.filter.SearchTerm = term
	scope := c.nav.Scope()

	delay := c.opts.FilesSearchDelay
	if c.nav.View == ViewFolders {
		delay = c.opts.FoldersSearchDelay
	}

	c.deb.Schedule(scope, delay, func() {
		c.mu.Lock()

		if c.nav.Scope() != scope {
			c.mu.Unlock()

			return
		}

		c.page.CurrentPage = 1
		c.refetchLocked()
		snap := c.snapshotLocked()
		c.mu.Unlock()

		c.notify(snap)
	})
}

// handleFilterMutation 搜索词以外的过滤变更立即在第 1 页重新取数.
func (c *Controller) handleFilterMutation(mutate func()) {
	if c.nav.View != ViewFiles {
		return
	}

	mutate()

	if c.filter.DateFrom != nil && c.filter.DateTo != nil && c.filter.DateFrom.After(*c.filter.DateTo) {
		c.logger.Debug().Str("session", c.id).Msg("dateFrom after dateTo, query sent as-is")
	}

	// 立即取数已携带最新搜索词，未决的防抖调用作废
	c.deb.Cancel(c.nav.Scope())
	c.page.CurrentPage = 1
	c.refetchLocked()
}

func (c *Controller) handleGoToPage(n int) {
	if !c.page.GoToPage(n) {
		return
	}

	c.refetchLocked()
}

// handleMutationRefresh 上传完成后的刷新：保持当前页和过滤器.
func (c *Controller) handleMutationRefresh() {
	c.invalidateFolderLocked()
	c.refetchLocked()
}

// invalidateFolderLocked 文件夹内容变更后丢弃其分类缓存.
func (c *Controller) invalidateFolderLocked() {
	inv, ok := c.fetcher.(FolderInvalidator)
	if !ok || c.nav.Folder == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.opts.Timeout)
	defer cancel()

	inv.InvalidateFolder(ctx, c.nav.Folder.ID)
}

// ===== 取数 =====

// refetchLocked 为当前导航+过滤+分页组装唯一规范查询并后台取数.
func (c *Controller) refetchLocked() {
	scope := c.nav.Scope()
	c.loading = true

	switch c.nav.View {
	case ViewFolders:
		q := types.ListFoldersQuery{
			Search: c.filter.SearchTerm,
			Page:   c.page.CurrentPage,
			Limit:  c.page.Limit,
		}
		c.orch.fetchFolders(scope, q)
	case ViewCategories:
		c.orch.fetchCategories(scope, c.nav.Folder.ID)
	case ViewFiles:
		var categoryID int64
		if c.nav.Category != nil {
			categoryID = c.nav.Category.ID
		}

		q := c.filter.ToQuery(c.page.CurrentPage, c.page.Limit, categoryID)
		c.orch.fetchFiles(scope, c.nav.Folder.ID, q)
	}
}

// apply 取数结果回调；作用域或序号过期的响应在这里被最终丢弃.
func (c *Controller) apply(res fetchResult) {
	c.mu.Lock()

	if res.scope != c.nav.Scope() {
		c.mu.Unlock()
		c.logger.Debug().Str("session", c.id).Str("scope", res.scope).Msg("response for abandoned view discarded")

		return
	}

	// orchestrator 已检查过一次，这里在状态锁内再确认，
	// 避免检查和应用之间被新请求取代
	if !c.orch.isCurrent(res.scope, res.seq) {
		c.mu.Unlock()

		return
	}

	c.loading = false

	if res.err != nil {
		// 保留最后一次成功的列表，只置错误标志
		c.err = res.err
		c.logger.Warn().Str("session", c.id).Str("scope", res.scope).Err(res.err).Msg("fetch failed")
	} else {
		c.err = nil

		switch c.nav.View {
		case ViewFolders:
			c.folders = res.folders
		case ViewCategories:
			c.categories = res.categories
		case ViewFiles:
			c.files = res.files
		}

		c.page.Apply(res.currentPage, res.totalPages)
	}

	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// ===== 归档 =====

// archive 两阶段归档：确认→后端归档→重新取数.
// 被归档的是当前页唯一一项且不在第 1 页时，先退回上一页再取数.
func (c *Controller) archive(file types.File) {
	if c.opts.Confirm != nil && !c.opts.Confirm(file) {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.opts.Timeout)
		defer cancel()

		err := c.fetcher.ArchiveFile(ctx, file.ID)

		c.mu.Lock()

		if err != nil {
			c.err = err
			snap := c.snapshotLocked()
			c.mu.Unlock()

			c.logger.Warn().Str("session", c.id).Int64("file", file.ID).Err(err).Msg("archive failed")
			c.notify(snap)

			return
		}

		if c.nav.View == ViewFiles && len(c.files) == 1 && c.page.CurrentPage > 1 {
			c.page.CurrentPage--
		}

		c.invalidateFolderLocked()
		c.refetchLocked()
		snap := c.snapshotLocked()
		c.mu.Unlock()

		c.notify(snap)
	}()
}

// ===== 快照 =====

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID:         c.id,
		Nav:               c.nav,
		Folders:           append([]types.Folder(nil), c.folders...),
		Categories:        append([]types.Category(nil), c.categories...),
		Files:             append([]types.File(nil), c.files...),
		Filter:            c.filter.Clone(),
		Page:              c.page.CurrentPage,
		TotalPages:        c.page.TotalPages,
		Limit:             c.page.Limit,
		PaginationVisible: c.page.Visible(),
		Loading:           c.loading,
		Err:               c.err,
	}
}

// notify 在锁外调用监听者.
func (c *Controller) notify(snap Snapshot) {
	c.mu.Lock()
	fns := make([]func(Snapshot), 0, len(c.listeners))

	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
