package api

import (
	"context"
	"fmt"

	"github.com/digesto-dev/digesto/pkg/internal/types"
)

// ListTags 获取全部标签（整表返回）.
func (c *Client) ListTags(ctx context.Context) ([]types.Tag, error) {
	var resp types.ListTagsResponse
	if err := c.getJSON(ctx, "/tags", nil, &resp); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return resp.Data, nil
}
