package pipeline

import (
	"context"
	"fmt"

	"github.com/shouni/go-coloring-kit/internal/builder"
	"github.com/shouni/go-coloring-kit/internal/config"
	"github.com/shouni/go-coloring-kit/internal/server"
)

// ExecuteServe は ctx がキャンセルされるまで HTTP API を提供するのだ。
func ExecuteServe(ctx context.Context, cfg *config.Config) error {
	appCtx, err := builder.NewAppContext(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	orch, err := builder.BuildOrchestrator(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("Orchestrator の初期化に失敗しました: %w", err)
	}

	srv := server.New(orch, appCtx.Library, server.DefaultOptions())
	return srv.ListenAndServe(ctx, cfg.HTTPAddr)
}
