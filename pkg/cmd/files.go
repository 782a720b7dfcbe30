package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/digesto-dev/digesto/pkg/configs"
	"github.com/digesto-dev/digesto/pkg/internal/types"
	"github.com/digesto-dev/digesto/pkg/rule"
)

var (
	filesSearch   string
	filesType     string
	filesFrom     string
	filesTo       string
	filesTags     []string
	filesCategory int64
	filesPage     int
	filesLimit    int

	uploadPath     string
	uploadTitle    string
	uploadSummary  string
	uploadAuthor   string
	uploadFolder   int64
	uploadCategory int64
	uploadNumber   string
	uploadDate     string

	archiveYes bool

	filesCmd = &cobra.Command{
		Use:     "files",
		Short:   "browse and manage portal files",
		Aliases: []string{"file"},
	}

	filesListCmd = &cobra.Command{
		Use:     "list <folder-id>",
		Short:   "list files in a folder with search and filters",
		Aliases: []string{"ls", "l"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folderID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid folder id %q", args[0])
			}

			q := types.ListFilesQuery{
				Search:     filesSearch,
				Type:       filesType,
				CategoryID: filesCategory,
				Tags:       filesTags,
				Page:       filesPage,
				Limit:      filesLimit,
			}

			if q.Limit <= 0 {
				q.Limit = configs.GetConfig().Client.PageSize
			}

			if q.DateFrom, err = parseDateFlag(filesFrom); err != nil {
				return err
			}

			if q.DateTo, err = parseDateFlag(filesTo); err != nil {
				return err
			}

			catalog, err := newCatalog()
			if err != nil {
				return err
			}

			page, err := catalog.ListFiles(cmd.Context(), folderID, q)
			if err != nil {
				return err
			}

			if page.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "no files match")

				return nil
			}

			for _, f := range page.Data {
				line := fmt.Sprintf("%6d  %s", f.ID, f.Title)
				if len(f.Tags) > 0 {
					line += "  [" + strings.Join(f.Tags, ", ") + "]"
				}

				fmt.Fprintln(cmd.OutOrStdout(), line)
			}

			if page.TotalPages > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d\n", page.CurrentPage, page.TotalPages)
			}

			return nil
		},
	}

	filesUploadCmd = &cobra.Command{
		Use:   "upload",
		Short: "upload a document into a folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := newCatalog()
			if err != nil {
				return err
			}

			req := &types.UploadFileRequest{
				FilePath:         uploadPath,
				Title:            uploadTitle,
				Summary:          uploadSummary,
				Author:           uploadAuthor,
				FolderID:         uploadFolder,
				CategoryID:       uploadCategory,
				ResolutionNumber: uploadNumber,
				DateOfResolution: uploadDate,
			}

			// 所选分类可能要求决议编号
			if uploadCategory > 0 {
				cats, catErr := catalog.ListCategories(cmd.Context(), uploadFolder)
				if catErr != nil {
					return catErr
				}

				for _, c := range cats {
					if c.ID == uploadCategory {
						req.NumberRequired = c.RequiresNumber

						break
					}
				}
			}

			file, err := catalog.UploadFile(cmd.Context(), req)
			if err != nil {
				if fields := rule.Errors(err); fields != nil {
					for name, tag := range fields {
						fmt.Fprintf(cmd.ErrOrStderr(), "invalid %s: %s\n", name, tag)
					}
				}

				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %q as file %d\n", file.Title, file.ID)

			return nil
		},
	}

	filesArchiveCmd = &cobra.Command{
		Use:   "archive <file-id>",
		Short: "archive a file (soft delete, kept for audit)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid file id %q", args[0])
			}

			if !archiveYes && !confirmOnTerminal(cmd, fmt.Sprintf("archive file %d?", fileID)) {
				fmt.Fprintln(cmd.OutOrStdout(), "aborted")

				return nil
			}

			catalog, err := newCatalog()
			if err != nil {
				return err
			}

			if err := catalog.ArchiveFile(cmd.Context(), fileID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "file %d archived\n", fileID)

			return nil
		},
	}
)

// parseDateFlag 解析 YYYY-MM-DD 日期参数；空串返回 nil.
func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	d, err := time.Parse(types.DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want %s", s, types.DateLayout)
	}

	return &d, nil
}

// confirmOnTerminal y/N 交互确认.
func confirmOnTerminal(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)

	reader := bufio.NewReader(cmd.InOrStdin())

	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes"
}

// registerFilesCommands 注册文件相关命令.
func registerFilesCommands() {
	filesListCmd.Flags().StringVarP(&filesSearch, "search", "s", "", "filter by title, summary or author")
	filesListCmd.Flags().StringVarP(&filesType, "type", "t", "", "filter by file type or category label")
	filesListCmd.Flags().StringVar(&filesFrom, "from", "", "resolution date lower bound (YYYY-MM-DD)")
	filesListCmd.Flags().StringVar(&filesTo, "to", "", "resolution date upper bound (YYYY-MM-DD)")
	filesListCmd.Flags().StringSliceVar(&filesTags, "tags", nil, "filter by tags (match any)")
	filesListCmd.Flags().Int64Var(&filesCategory, "category", 0, "restrict to one category")
	filesListCmd.Flags().IntVarP(&filesPage, "page", "p", 1, "page number")
	filesListCmd.Flags().IntVarP(&filesLimit, "limit", "n", 0, "items per page (0 = config default)")

	filesUploadCmd.Flags().StringVarP(&uploadPath, "file", "f", "", "path of the document to upload")
	filesUploadCmd.Flags().StringVar(&uploadTitle, "title", "", "document title")
	filesUploadCmd.Flags().StringVar(&uploadSummary, "summary", "", "short summary")
	filesUploadCmd.Flags().StringVar(&uploadAuthor, "author", "", "document author")
	filesUploadCmd.Flags().Int64Var(&uploadFolder, "folder", 0, "destination folder id")
	filesUploadCmd.Flags().Int64Var(&uploadCategory, "category", 0, "destination category id")
	filesUploadCmd.Flags().StringVar(&uploadNumber, "number", "", "resolution or ordinance number")
	filesUploadCmd.Flags().StringVar(&uploadDate, "date", "", "date of resolution (YYYY-MM-DD)")
	_ = filesUploadCmd.MarkFlagRequired("file")
	_ = filesUploadCmd.MarkFlagRequired("title")
	_ = filesUploadCmd.MarkFlagRequired("folder")

	filesArchiveCmd.Flags().BoolVarP(&archiveYes, "yes", "y", false, "skip confirmation")

	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesUploadCmd)
	filesCmd.AddCommand(filesArchiveCmd)
	rootCmd.AddCommand(filesCmd)
}
