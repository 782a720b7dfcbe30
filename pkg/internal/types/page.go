package types

// Page 服务端分页响应包装.
type Page[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// Empty 判断结果集是否为空.
func (p *Page[T]) Empty() bool {
	return len(p.Data) == 0
}
