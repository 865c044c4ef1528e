package runner

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/workflow"
)

var (
	// ErrDraftIncomplete は名前かテーマが未入力で生成を始められないことを表します。
	ErrDraftIncomplete = errors.New("名前とテーマは必須です")
	// ErrGenerationFailed は生成が失敗し本が得られなかったことを表します。
	ErrGenerationFailed = errors.New(workflow.NoticeGenerationFailed)
)

// GenerateResult は1回の生成の結果です。
type GenerateResult struct {
	Book  domain.Book
	Saved bool
}

// GenerateRunner は Orchestrator を使って1冊をその場で生成します。
type GenerateRunner struct {
	orchestrator *workflow.Orchestrator
	onProgress   func(string)
}

// NewGenerateRunner は進捗の通知先を受け取って初期化します。onProgress は nil でも構いません。
func NewGenerateRunner(orchestrator *workflow.Orchestrator, onProgress func(string)) *GenerateRunner {
	return &GenerateRunner{
		orchestrator: orchestrator,
		onProgress:   onProgress,
	}
}

// Run は draft の内容で表紙と全ページを生成し、ライブラリに保存します。
func (r *GenerateRunner) Run(ctx context.Context, draft domain.Draft) (GenerateResult, error) {
	c := workflow.NewContainer()
	c.Update(func(s workflow.State) workflow.State {
		return s.StartNewBook().UpdateDraft(draft)
	})

	last := ""
	c.Watch(func(s workflow.State) {
		if s.Progress != "" && s.Progress != last {
			last = s.Progress
			if r.onProgress != nil {
				r.onProgress(s.Progress)
			}
		}
	})

	if !r.orchestrator.Generate(ctx, c) {
		return GenerateResult{}, ErrDraftIncomplete
	}

	s := c.State()
	if s.Book == nil {
		return GenerateResult{}, ErrGenerationFailed
	}

	saved := s.Notice != workflow.NoticeSaveFailed
	if !saved {
		slog.WarnContext(ctx, "Book generated but not saved to library", "book_id", s.Book.ID)
	}
	return GenerateResult{Book: *s.Book, Saved: saved}, nil
}
