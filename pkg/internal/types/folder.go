// Package types 定义门户后端的请求/响应数据结构.
package types

// Folder 根容器；列表由服务端分页.
type Folder struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ColorTag  string `json:"colorTag,omitempty"` // 管理界面中的颜色标记
	CreatedAt string `json:"createdAt,omitempty"`
}

// Category 只存在于文件夹之下；打开文件夹时整表返回，不分页.
type Category struct {
	ID            int64  `json:"id"`
	CategoryLabel string `json:"categoryLabel"`
	FolderID      int64  `json:"folderId"`
	FileCount     int    `json:"fileCount"`
	// RequiresNumber 该分类下的文件是否必须携带决议/条例编号
	RequiresNumber bool `json:"requiresNumber,omitempty"`
}
