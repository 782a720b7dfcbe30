package types

// Tag 文件标签.
type Tag struct {
	ID      int64  `json:"id"`
	TagName string `json:"tagName"`
}

// ListTagsResponse 标签列表响应（整表返回，不分页）.
type ListTagsResponse struct {
	Data []Tag `json:"data"`
}

// ListCategoriesResponse 文件夹内分类列表响应.
type ListCategoriesResponse struct {
	Data []Category `json:"data"`
}
