package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/digesto-dev/digesto/pkg/configs"
	"github.com/digesto-dev/digesto/pkg/internal/types"
)

var (
	foldersSearch string
	foldersPage   int
	foldersLimit  int

	foldersCmd = &cobra.Command{
		Use:     "folders",
		Short:   "browse document folders",
		Aliases: []string{"folder", "f"},
	}

	foldersListCmd = &cobra.Command{
		Use:     "list",
		Short:   "list folders (server-side pagination)",
		Aliases: []string{"ls", "l"},
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := newCatalog()
			if err != nil {
				return err
			}

			limit := foldersLimit
			if limit <= 0 {
				limit = configs.GetConfig().Client.PageSize
			}

			page, err := catalog.ListFolders(cmd.Context(), types.ListFoldersQuery{
				Search: foldersSearch,
				Page:   foldersPage,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			if page.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "no folders found")

				return nil
			}

			for _, f := range page.Data {
				fmt.Fprintf(cmd.OutOrStdout(), "%6d  %s\n", f.ID, f.Name)
			}

			if page.TotalPages > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d\n", page.CurrentPage, page.TotalPages)
			}

			return nil
		},
	}

	foldersCategoriesCmd = &cobra.Command{
		Use:     "categories <folder-id>",
		Short:   "list categories inside a folder",
		Aliases: []string{"cat", "c"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folderID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid folder id %q", args[0])
			}

			catalog, err := newCatalog()
			if err != nil {
				return err
			}

			cats, err := catalog.ListCategories(cmd.Context(), folderID)
			if err != nil {
				return err
			}

			if len(cats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no categories in this folder")

				return nil
			}

			for _, c := range cats {
				fmt.Fprintf(cmd.OutOrStdout(), "%6d  %-30s %d files\n", c.ID, c.CategoryLabel, c.FileCount)
			}

			return nil
		},
	}
)

// registerFoldersCommands 注册文件夹相关命令.
func registerFoldersCommands() {
	foldersListCmd.Flags().StringVarP(&foldersSearch, "search", "s", "", "filter folders by name")
	foldersListCmd.Flags().IntVarP(&foldersPage, "page", "p", 1, "page number")
	foldersListCmd.Flags().IntVarP(&foldersLimit, "limit", "n", 0, "items per page (0 = config default)")

	foldersCmd.AddCommand(foldersListCmd)
	foldersCmd.AddCommand(foldersCategoriesCmd)
	rootCmd.AddCommand(foldersCmd)
}
