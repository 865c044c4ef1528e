package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shouni/go-coloring-kit/internal/pipeline"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "セッション単位で生成と再生成を操作する HTTP API を起動するのだ。",
	Args:    cobra.NoArgs,
	PreRunE: preRunAppE,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return pipeline.ExecuteServe(ctx, loadConfig())
	},
}

func init() {
	serveCmd.Flags().StringVar(&opts.Addr, "addr", "", "待ち受けアドレスなのだ（既定: $COLORING_HTTP_ADDR か :8080）。")
	addGenerationFlags(serveCmd)
}
