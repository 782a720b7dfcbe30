package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/digesto-dev/digesto/pkg/internal/types"
	"github.com/digesto-dev/digesto/pkg/rule"
)

// ListFiles 获取文件夹（可选分类）内的文件列表，支持搜索/过滤/分页.
func (c *Client) ListFiles(ctx context.Context, folderID int64, q types.ListFilesQuery) (*types.Page[types.File], error) {
	var page types.Page[types.File]
	if err := c.getJSON(ctx, fmt.Sprintf("/folders/%d/files", folderID), q.Values(), &page); err != nil {
		return nil, fmt.Errorf("list files for folder %d: %w", folderID, err)
	}

	return &page, nil
}

// UploadFile 上传文件（multipart）；先在客户端校验，校验失败不会发请求.
func (c *Client) UploadFile(ctx context.Context, req *types.UploadFileRequest) (*types.File, error) {
	if err := rule.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validate upload request: %w", err)
	}

	f, err := os.Open(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", req.FilePath, err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(req.FilePath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}

	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}

	fields := map[string]string{
		"title":    req.Title,
		"summary":  req.Summary,
		"author":   req.Author,
		"folderId": strconv.FormatInt(req.FolderID, 10),
	}

	if req.CategoryID > 0 {
		fields["categoryId"] = strconv.FormatInt(req.CategoryID, 10)
	}

	if req.ResolutionNumber != "" {
		fields["resolutionNumber"] = req.ResolutionNumber
	}

	if req.DateOfResolution != "" {
		fields["dateOfResolution"] = req.DateOfResolution
	}

	for name, value := range fields {
		if value == "" {
			continue
		}

		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/files", nil, &buf, w.FormDataContentType())
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	var resp types.UploadFileResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	return &resp.Data, nil
}

// ArchiveFile 归档文件（软删除）；后端仅迁移状态，不做物理删除.
func (c *Client) ArchiveFile(ctx context.Context, fileID int64) error {
	body, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/files/%d/archive", fileID), nil, nil, "")
	if err != nil {
		return fmt.Errorf("archive file %d: %w", fileID, err)
	}

	var resp types.ArchiveFileResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode archive response: %w", err)
	}

	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "archive rejected"
		}

		return &BackendError{StatusCode: http.StatusOK, Message: msg}
	}

	return nil
}
