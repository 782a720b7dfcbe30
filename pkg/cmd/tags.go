package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	tagsCmd = &cobra.Command{
		Use:     "tags",
		Short:   "tag related commands",
		Aliases: []string{"tag", "t"},
	}

	tagsListCmd = &cobra.Command{
		Use:     "list",
		Short:   "list all tags known to the portal",
		Aliases: []string{"ls", "l"},
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := newCatalog()
			if err != nil {
				return err
			}

			tags, err := catalog.ListTags(cmd.Context())
			if err != nil {
				return err
			}

			if len(tags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no tags defined")

				return nil
			}

			for _, tag := range tags {
				fmt.Fprintf(cmd.OutOrStdout(), "%6d  %s\n", tag.ID, tag.TagName)
			}

			return nil
		},
	}
)

// registerTagsCommands 注册标签相关命令.
func registerTagsCommands() {
	tagsCmd.AddCommand(tagsListCmd)
	rootCmd.AddCommand(tagsCmd)
}
