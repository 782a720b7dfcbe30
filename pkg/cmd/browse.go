package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/digesto-dev/digesto/pkg/configs"
	"github.com/digesto-dev/digesto/pkg/internal/session"
	"github.com/digesto-dev/digesto/pkg/internal/types"
)

var (
	browseRefresh int

	browseCmd = &cobra.Command{
		Use:   "browse",
		Short: "interactive portal browser",
		Long: `Interactive browsing session over the document portal.

Navigate folders, categories and files with live search, filters and
pagination. Type "help" inside the session for the command list.`,
		RunE: runBrowse,
	}
)

// registerBrowseCommand 注册交互式浏览命令.
func registerBrowseCommand() {
	browseCmd.Flags().IntVar(&browseRefresh, "refresh", 0, "auto refresh interval in seconds (0 = config default)")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg := configs.GetConfig()

	catalog, err := newCatalog()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	ctrl := session.NewController(catalog, session.Options{
		PageSize:           cfg.Client.PageSize,
		FoldersSearchDelay: cfg.Debounce.GetFoldersDelay(),
		FilesSearchDelay:   cfg.Debounce.GetFilesDelay(),
		Timeout:            cfg.Client.GetTimeoutDuration(),
		Confirm: func(f types.File) bool {
			return confirmOnTerminal(cmd, fmt.Sprintf("archive %q?", f.Title))
		},
	})
	defer ctrl.Close()

	unsubscribe := ctrl.Subscribe(func(snap session.Snapshot) {
		if !snap.Loading {
			renderSnapshot(out, snap)
		}
	})
	defer unsubscribe()

	interval := time.Duration(browseRefresh) * time.Second
	if browseRefresh <= 0 {
		interval = cfg.Client.GetRefreshInterval()
	}

	refresher, err := session.StartAutoRefresh(ctrl, interval)
	if err != nil {
		return err
	}
	defer func() { _ = refresher.Stop() }()

	ctrl.Start()

	scanner := bufio.NewScanner(cmd.InOrStdin())

	for {
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		verb, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		if verb == "quit" || verb == "exit" || verb == "q" {
			return nil
		}

		if err := runBrowseCommand(ctrl, out, verb, rest); err != nil {
			fmt.Fprintln(out, err)
		}
	}
}

// runBrowseCommand 把一行输入翻译成会话动作.
func runBrowseCommand(ctrl *session.Controller, out io.Writer, verb, rest string) error {
	snap := ctrl.Snapshot()

	switch verb {
	case "help", "h", "?":
		printBrowseHelp(out)
	case "open", "o":
		return openByIndex(ctrl, snap, rest)
	case "files":
		if snap.Nav.Folder == nil {
			return fmt.Errorf("files: open a folder first")
		}

		ctrl.Dispatch(session.OpenFolderFilesAction{Folder: *snap.Nav.Folder})
	case "back", "b":
		ctrl.Dispatch(session.BackAction{})
	case "page", "p":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("page: want a number, got %q", rest)
		}

		ctrl.Dispatch(session.GoToPageAction{Page: n})
	case "next", "n":
		ctrl.Dispatch(session.NextPageAction{})
	case "prev":
		ctrl.Dispatch(session.PrevPageAction{})
	case "search", "s":
		ctrl.Dispatch(session.SetSearchTermAction{Term: rest})
	case "type", "t":
		ctrl.Dispatch(session.SetTypeAction{Type: rest})
	case "from":
		d, err := parseDateFlag(rest)
		if err != nil {
			return err
		}

		ctrl.Dispatch(session.SetDateFromAction{Date: d})
	case "to":
		d, err := parseDateFlag(rest)
		if err != nil {
			return err
		}

		ctrl.Dispatch(session.SetDateToAction{Date: d})
	case "tag":
		if rest == "" {
			return fmt.Errorf("tag: want a tag name")
		}

		ctrl.Dispatch(session.ToggleTagAction{Tag: rest})
	case "untag":
		if rest == "" {
			return fmt.Errorf("untag: want a tag name")
		}

		ctrl.Dispatch(session.RemoveTagAction{Tag: rest})
	case "clear":
		ctrl.Dispatch(session.ClearFiltersAction{})
	case "archive":
		idx, err := strconv.Atoi(rest)
		if err != nil || idx < 1 || idx > len(snap.Files) {
			return fmt.Errorf("archive: want a file index between 1 and %d", len(snap.Files))
		}

		ctrl.Dispatch(session.ArchiveFileAction{File: snap.Files[idx-1]})
	case "refresh", "r":
		ctrl.Dispatch(session.RefreshAction{})
	default:
		return fmt.Errorf("unknown command %q, try \"help\"", verb)
	}

	return nil
}

// openByIndex 按列表序号打开文件夹或分类.
func openByIndex(ctrl *session.Controller, snap session.Snapshot, rest string) error {
	idx, err := strconv.Atoi(rest)
	if err != nil {
		return fmt.Errorf("open: want a list index, got %q", rest)
	}

	switch snap.Nav.View {
	case session.ViewFolders:
		if idx < 1 || idx > len(snap.Folders) {
			return fmt.Errorf("open: index out of range 1..%d", len(snap.Folders))
		}

		ctrl.Dispatch(session.OpenFolderAction{Folder: snap.Folders[idx-1]})
	case session.ViewCategories:
		if idx < 1 || idx > len(snap.Categories) {
			return fmt.Errorf("open: index out of range 1..%d", len(snap.Categories))
		}

		ctrl.Dispatch(session.OpenCategoryAction{Category: snap.Categories[idx-1]})
	default:
		return fmt.Errorf("open: nothing to open in this view")
	}

	return nil
}

// renderSnapshot 打印当前视图.
func renderSnapshot(out io.Writer, snap session.Snapshot) {
	fmt.Fprintln(out)

	switch snap.Nav.View {
	case session.ViewFolders:
		fmt.Fprintln(out, "== folders ==")
		for i, f := range snap.Folders {
			fmt.Fprintf(out, "%3d. %s\n", i+1, f.Name)
		}
	case session.ViewCategories:
		fmt.Fprintf(out, "== %s / categories ==\n", snap.Nav.Folder.Name)
		for i, c := range snap.Categories {
			fmt.Fprintf(out, "%3d. %-30s %d files\n", i+1, c.CategoryLabel, c.FileCount)
		}
	case session.ViewFiles:
		header := snap.Nav.Folder.Name
		if snap.Nav.Category != nil {
			header += " / " + snap.Nav.Category.CategoryLabel
		}

		fmt.Fprintf(out, "== %s / files ==\n", header)

		for i, f := range snap.Files {
			line := fmt.Sprintf("%3d. %s", i+1, f.Title)
			if len(f.Tags) > 0 {
				line += "  [" + strings.Join(f.Tags, ", ") + "]"
			}

			fmt.Fprintln(out, line)
		}
	}

	if filters := describeFilters(snap.Filter); filters != "" {
		fmt.Fprintln(out, "filters:", filters)
	}

	if snap.PaginationVisible {
		fmt.Fprintf(out, "page %d of %d\n", snap.Page, snap.TotalPages)
	}

	if snap.Err != nil {
		fmt.Fprintln(out, "error:", snap.Err)
	}
}

// describeFilters 把活动过滤器拼成一行.
func describeFilters(f session.FilterState) string {
	var parts []string

	if f.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("search=%q", f.SearchTerm))
	}

	if f.TypeOrCategory != "" {
		parts = append(parts, "type="+f.TypeOrCategory)
	}

	if f.DateFrom != nil {
		parts = append(parts, "from="+f.DateFrom.Format(types.DateLayout))
	}

	if f.DateTo != nil {
		parts = append(parts, "to="+f.DateTo.Format(types.DateLayout))
	}

	if tags := f.Tags(); len(tags) > 0 {
		parts = append(parts, "tags="+strings.Join(tags, ","))
	}

	return strings.Join(parts, " ")
}

// printBrowseHelp 打印会话内命令说明.
func printBrowseHelp(out io.Writer) {
	fmt.Fprint(out, `commands:
  open N        open folder or category number N
  files         browse the current folder's files directly
  back          go up one level
  page N        jump to page N
  next / prev   step through pages
  search TERM   live search in the current view
  type T        filter files by type or category label
  from DATE     resolution date lower bound (YYYY-MM-DD)
  to DATE       resolution date upper bound (YYYY-MM-DD)
  tag NAME      toggle a tag filter (match any)
  untag NAME    drop a tag filter
  clear         reset all filters
  archive N     archive file number N (asks for confirmation)
  refresh       re-fetch the current view
  quit          leave the session
`)
}
