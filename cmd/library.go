package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shouni/go-coloring-kit/internal/pipeline"
	"github.com/shouni/go-coloring-kit/pkg/workflow"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "保存済みの本を新しい順に表示するのだ。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ListBooks(cmd.Context(), loadConfig(), cmd.OutOrStdout())
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <book-id>",
	Short: "保存済みの本を削除するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !opts.Yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), workflow.ConfirmDelete) {
			fmt.Fprintln(cmd.OutOrStdout(), "Annulé.")
			return nil
		}
		return pipeline.DeleteBook(cmd.Context(), loadConfig(), args[0])
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <book-id>",
	Short: "保存済みの本を PDF に書き出すのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := pipeline.ExportBook(cmd.Context(), loadConfig(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "確認せずに削除するのだ。")
}

// confirm は質問を表示し、肯定の返事があれば true を返すのだ。
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [o/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "o", "oui", "y", "yes":
		return true
	}
	return false
}
