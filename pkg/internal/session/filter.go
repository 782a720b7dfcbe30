package session

import (
	"sort"
	"time"

	"github.com/digesto-dev/digesto/pkg/internal/types"
)

// FilterState 把自由文本、日期范围、类型和多选标签组合成一个查询描述；
// 归当前激活视图独占，切换视图时整体重置.
type FilterState struct {
	SearchTerm     string
	DateFrom       *time.Time
	DateTo         *time.Time
	TypeOrCategory string

	tags map[string]struct{}
}

// NewFilterState 返回默认（空）过滤状态.
func NewFilterState() FilterState {
	return FilterState{tags: make(map[string]struct{})}
}

// ToggleTag 切换标签选中状态，返回切换后是否选中.
func (f *FilterState) ToggleTag(tag string) bool {
	if f.tags == nil {
		f.tags = make(map[string]struct{})
	}

	if _, ok := f.tags[tag]; ok {
		delete(f.tags, tag)

		return false
	}

	f.tags[tag] = struct{}{}

	return true
}

// RemoveTag 移除标签；不存在时无操作.
func (f *FilterState) RemoveTag(tag string) {
	delete(f.tags, tag)
}

// Tags 返回选中标签的有序副本.
func (f *FilterState) Tags() []string {
	if len(f.tags) == 0 {
		return nil
	}

	out := make([]string, 0, len(f.tags))
	for tag := range f.tags {
		out = append(out, tag)
	}

	sort.Strings(out)

	return out
}

// Reset 恢复为默认值.
func (f *FilterState) Reset() {
	f.SearchTerm = ""
	f.DateFrom = nil
	f.DateTo = nil
	f.TypeOrCategory = ""
	f.tags = make(map[string]struct{})
}

// IsDefault 判断是否处于默认（无过滤）状态.
func (f *FilterState) IsDefault() bool {
	return f.SearchTerm == "" && f.DateFrom == nil && f.DateTo == nil &&
		f.TypeOrCategory == "" && len(f.tags) == 0
}

// Clone 返回独立副本，用于快照.
func (f *FilterState) Clone() FilterState {
	out := *f

	out.tags = make(map[string]struct{}, len(f.tags))
	for tag := range f.tags {
		out.tags[tag] = struct{}{}
	}

	return out
}

// ToQuery 组装文件列表的后端查询.
// dateFrom > dateTo 时不在本地拦截，原样发送，由服务端返回空结果.
func (f *FilterState) ToQuery(page, limit int, categoryID int64) types.ListFilesQuery {
	return types.ListFilesQuery{
		Search:     f.SearchTerm,
		Type:       f.TypeOrCategory,
		DateFrom:   f.DateFrom,
		DateTo:     f.DateTo,
		CategoryID: categoryID,
		Tags:       f.Tags(),
		Page:       page,
		Limit:      limit,
	}
}
