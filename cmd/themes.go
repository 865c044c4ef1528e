package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-coloring-kit/pkg/domain"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "おすすめのテーマを表示するのだ。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		themes, err := domain.SuggestedThemes()
		if err != nil {
			return err
		}
		for _, t := range themes {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	},
}
