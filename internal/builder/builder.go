package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/shouni/go-coloring-kit/pkg/generator"
	"github.com/shouni/go-coloring-kit/pkg/publisher"
	"github.com/shouni/go-coloring-kit/pkg/runner"
	"github.com/shouni/go-coloring-kit/pkg/workflow"
)

// InitializeImageGenerator は Gemini API を使う ImageGenerator を初期化します。
func InitializeImageGenerator(ctx context.Context, appCtx *AppContext) (generator.ImageGenerator, error) {
	if appCtx.Config.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY が設定されていません")
	}

	client, err := generator.NewGeminiClient(ctx, appCtx.Config.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	imgGen, err := generator.NewGeminiGenerator(client.Models, appCtx.Config.GeminiImageModel)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}
	return imgGen, nil
}

// BuildOrchestrator は生成と再生成を担当する Orchestrator を構築します。
func BuildOrchestrator(ctx context.Context, appCtx *AppContext) (*workflow.Orchestrator, error) {
	imgGen, err := InitializeImageGenerator(ctx, appCtx)
	if err != nil {
		return nil, err
	}

	return workflow.NewOrchestrator(imgGen, appCtx.Library, workflow.Options{
		RateInterval: appCtx.Config.RateInterval,
	})
}

// BuildGenerateRunner は1冊の生成を担当する Runner を構築します。
func BuildGenerateRunner(ctx context.Context, appCtx *AppContext, onProgress func(string)) (*runner.GenerateRunner, error) {
	orch, err := BuildOrchestrator(ctx, appCtx)
	if err != nil {
		return nil, err
	}
	return runner.NewGenerateRunner(orch, onProgress), nil
}

// BuildExportRunner は PDF の書き出しを担当する Runner を構築します。
func BuildExportRunner(appCtx *AppContext) *runner.ExportRunner {
	return runner.NewExportRunner(publisher.NewPDFAssembler(), appCtx.Assets)
}
