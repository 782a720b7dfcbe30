package session

// PageState 分页状态；列表项由会话按视图持有，这里只管页码.
type PageState struct {
	CurrentPage int
	TotalPages  int
	Limit       int
}

// NewPageState 返回第 1 页、尚无总页数的初始状态.
func NewPageState(limit int) PageState {
	return PageState{CurrentPage: 1, Limit: limit}
}

// GoToPage 跳页；越界或 totalPages==0 时静默失败（页码不变），
// 返回是否真的发生了跳转.
func (p *PageState) GoToPage(n int) bool {
	if p.TotalPages == 0 {
		return false
	}

	if n < 1 || n > p.TotalPages || n == p.CurrentPage {
		return false
	}

	p.CurrentPage = n

	return true
}

// Apply 用服务端返回的分页元数据更新状态；过滤导致结果收缩时
// 页码被钳制到 max(1, totalPages).
func (p *PageState) Apply(currentPage, totalPages int) {
	if totalPages < 0 {
		totalPages = 0
	}

	p.TotalPages = totalPages

	if totalPages == 0 {
		p.CurrentPage = 1

		return
	}

	if currentPage >= 1 {
		p.CurrentPage = currentPage
	}

	if p.CurrentPage > totalPages {
		p.CurrentPage = totalPages
	}
}

// Reset 回到第 1 页并丢弃总页数（待下一次取数填充）.
func (p *PageState) Reset() {
	p.CurrentPage = 1
	p.TotalPages = 0
}

// Visible totalPages<=1 时分页控件隐藏或禁用.
func (p *PageState) Visible() bool {
	return p.TotalPages > 1
}
