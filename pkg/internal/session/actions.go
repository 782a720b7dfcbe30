package session

import (
	"time"

	"github.com/digesto-dev/digesto/pkg/internal/types"
)

// Action 所有会话状态变更的基础接口.
type Action interface{}

// ===== 导航 =====

// OpenFolderAction 打开文件夹，进入分类列表视图.
type OpenFolderAction struct {
	Folder types.Folder
}

// OpenCategoryAction 打开分类，进入文件列表视图.
type OpenCategoryAction struct {
	Category types.Category
}

// OpenFolderFilesAction 直接进入文件夹的文件列表（无分类的文件夹）.
type OpenFolderFilesAction struct {
	Folder types.Folder
}

// BackAction 返回上一级视图.
type BackAction struct{}

// ===== 过滤 =====

type SetSearchTermAction struct {
	Term string
}

type SetDateFromAction struct {
	Date *time.Time // nil 表示清除
}

type SetDateToAction struct {
	Date *time.Time
}

type SetTypeAction struct {
	Type string
}

type ToggleTagAction struct {
	Tag string
}

type RemoveTagAction struct {
	Tag string
}

type ClearFiltersAction struct{}

// ===== 分页 =====

type GoToPageAction struct {
	Page int
}

type NextPageAction struct{}

type PrevPageAction struct{}

// ===== 变更后的刷新 =====

// UploadCompletedAction 上传完成；保持当前页和过滤器，重新取数.
type UploadCompletedAction struct{}

// RefreshAction 重新拉取当前视图.
type RefreshAction struct{}

// ArchiveFileAction 归档文件；两阶段操作：先确认，确认后调用后端并刷新.
type ArchiveFileAction struct {
	File types.File
}
