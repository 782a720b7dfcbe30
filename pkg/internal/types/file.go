package types

// File 属于一个文件夹，和可选的一个分类.
type File struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	FileName         string   `json:"fileName"`
	Category         string   `json:"category,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Author           string   `json:"author,omitempty"`
	ResolutionNumber string   `json:"resolutionNumber,omitempty"`
	OrdinanceNumber  string   `json:"ordinanceNumber,omitempty"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	FileSize         int64    `json:"fileSizeBytes,omitempty"` // 字节
	Archived         bool     `json:"archived,omitempty"`      // 软删除标记
}

// HasAnyTag 判断文件是否命中所选标签集合（或语义）；空集合表示不过滤.
func (f File) HasAnyTag(selected []string) bool {
	if len(selected) == 0 {
		return true
	}

	for _, want := range selected {
		for _, have := range f.Tags {
			if have == want {
				return true
			}
		}
	}

	return false
}

// FilterByTags 按所选标签集合过滤文件列表（或语义）.
func FilterByTags(files []File, selected []string) []File {
	if len(selected) == 0 {
		return files
	}

	out := make([]File, 0, len(files))

	for _, f := range files {
		if f.HasAnyTag(selected) {
			out = append(out, f)
		}
	}

	return out
}

// ArchiveFileResponse 归档（软删除）响应.
type ArchiveFileResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
