package types

import (
	"net/url"
	"strconv"
	"time"
)

// DateLayout 查询参数中的日期格式.
const DateLayout = "2006-01-02"

// ListFoldersQuery 文件夹列表查询.
type ListFoldersQuery struct {
	Search string
	Page   int
	Limit  int
}

// Values 序列化为查询字符串；零值字段不输出.
func (q ListFoldersQuery) Values() url.Values {
	v := url.Values{}

	if q.Search != "" {
		v.Set("search", q.Search)
	}

	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}

	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}

	return v
}

// ListFilesQuery 文件列表查询；由当前视图的过滤器和分页状态组装.
type ListFilesQuery struct {
	Search     string
	Type       string // 文件类型或分类标签
	DateFrom   *time.Time
	DateTo     *time.Time
	CategoryID int64
	Tags       []string // 或语义：命中任意一个标签即匹配
	Page       int
	Limit      int
}

// Values 序列化为查询字符串；零值字段不输出.
// dateFrom > dateTo 时原样发送，由服务端返回空结果.
func (q ListFilesQuery) Values() url.Values {
	v := url.Values{}

	if q.Search != "" {
		v.Set("search", q.Search)
	}

	if q.Type != "" {
		v.Set("type", q.Type)
	}

	if q.DateFrom != nil {
		v.Set("dateFrom", q.DateFrom.Format(DateLayout))
	}

	if q.DateTo != nil {
		v.Set("dateTo", q.DateTo.Format(DateLayout))
	}

	if q.CategoryID > 0 {
		v.Set("categoryId", strconv.FormatInt(q.CategoryID, 10))
	}

	for _, tag := range q.Tags {
		v.Add("tags[]", tag)
	}

	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}

	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}

	return v
}
