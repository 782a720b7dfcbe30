package types

// UploadFileRequest 文件上传请求；提交前在客户端完成校验，
// 校验失败的请求不会发往后端.
type UploadFileRequest struct {
	FilePath string `json:"-"                 rule:"required"` // 本地文件路径
	Title    string `json:"title"             rule:"required"`
	Summary  string `json:"summary,omitempty"`
	Author   string `json:"author,omitempty"`
	FolderID int64  `json:"folderId"          rule:"required,gt=0"`

	CategoryID int64 `json:"categoryId,omitempty"`
	// NumberRequired 由所选分类决定；为 true 时编号必填
	NumberRequired   bool   `json:"-"`
	ResolutionNumber string `json:"resolutionNumber,omitempty" rule:"required_if=NumberRequired true"`
	DateOfResolution string `json:"dateOfResolution,omitempty"`
}

// UploadFileResponse 文件上传响应.
type UploadFileResponse struct {
	Status string `json:"status"`
	Data   File   `json:"data"`
	Error  string `json:"error,omitempty"`
}
