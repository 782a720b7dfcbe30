package api

import (
	"context"
	"fmt"

	"github.com/digesto-dev/digesto/pkg/internal/types"
)

// ListFolders 获取文件夹列表（服务端分页）.
func (c *Client) ListFolders(ctx context.Context, q types.ListFoldersQuery) (*types.Page[types.Folder], error) {
	var page types.Page[types.Folder]
	if err := c.getJSON(ctx, "/folders", q.Values(), &page); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	return &page, nil
}

// ListCategories 获取文件夹内的分类列表（整表返回）.
func (c *Client) ListCategories(ctx context.Context, folderID int64) ([]types.Category, error) {
	var resp types.ListCategoriesResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/folders/%d/categories", folderID), nil, &resp); err != nil {
		return nil, fmt.Errorf("list categories for folder %d: %w", folderID, err)
	}

	return resp.Data, nil
}
