// Package session 实现浏览会话的状态机：文件夹→分类→文件的导航、
// 搜索/过滤/分页的组合，以及防抖和过期响应丢弃的取数编排.
package session

import (
	"fmt"

	"github.com/digesto-dev/digesto/pkg/internal/types"
)

// View 当前激活的列表视图.
type View int

const (
	ViewFolders View = iota
	ViewCategories
	ViewFiles
)

func (v View) String() string {
	switch v {
	case ViewFolders:
		return "folders"
	case ViewCategories:
		return "categories"
	case ViewFiles:
		return "files"
	default:
		return "unknown"
	}
}

// NavigationState 标记联合：同一时刻只有一个视图处于激活状态.
// Files 视图必有所属 Folder；Category 可选（文件夹直接挂文件和
// 经分类挂文件两种树深都合法）.
type NavigationState struct {
	View     View
	Folder   *types.Folder
	Category *types.Category
}

// Scope 取数作用域标识；过期响应按作用域丢弃.
func (n NavigationState) Scope() string {
	switch n.View {
	case ViewCategories:
		return fmt.Sprintf("categories:%d", n.Folder.ID)
	case ViewFiles:
		if n.Category != nil {
			return fmt.Sprintf("files:%d:%d", n.Folder.ID, n.Category.ID)
		}

		return fmt.Sprintf("files:%d", n.Folder.ID)
	default:
		return "folders"
	}
}

// Snapshot 会话状态的一致快照，发给订阅者渲染.
type Snapshot struct {
	SessionID string
	Nav       NavigationState

	Folders    []types.Folder
	Categories []types.Category
	Files      []types.File

	Filter FilterState

	Page       int
	TotalPages int
	Limit      int
	// PaginationVisible totalPages<=1 时分页控件隐藏，
	// 绝不渲染 "page 1 of 0"
	PaginationVisible bool

	Loading bool
	Err     error
}
