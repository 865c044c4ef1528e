package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/generator"
)

// Saver は完成した本を永続化します。
type Saver interface {
	Save(ctx context.Context, book domain.Book) error
}

// Options は Orchestrator の動作設定です。
type Options struct {
	// RateInterval が正のとき、画像生成の呼び出しごとにこの間隔で待機します。
	RateInterval time.Duration
}

// Job は Begin* で受け付けた処理の本体です。ネットワーク呼び出しはここで行います。
type Job func(ctx context.Context)

// Orchestrator は本の生成と再生成を進め、その結果を Container に反映します。
type Orchestrator struct {
	generator generator.ImageGenerator
	saver     Saver
	limiter   *rate.Limiter
	newID     func() string
	now       func() time.Time
}

// NewOrchestrator は依存関係を注入して初期化します。
func NewOrchestrator(gen generator.ImageGenerator, saver Saver, opts Options) (*Orchestrator, error) {
	if gen == nil {
		return nil, errors.New("generator は必須です")
	}
	if saver == nil {
		return nil, errors.New("saver は必須です")
	}

	var limiter *rate.Limiter
	if opts.RateInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.RateInterval), 1)
	}

	return &Orchestrator{
		generator: gen,
		saver:     saver,
		limiter:   limiter,
		newID:     uuid.NewString,
		now:       time.Now,
	}, nil
}

// BeginGenerate はフォームの内容で初回生成を受け付けます。
// 入力が揃っていない場合やフォーム表示中でない場合は何もせず false を返します。
func (o *Orchestrator) BeginGenerate(c *Container) (Job, bool) {
	var draft domain.Draft
	ok := c.TryUpdate(func(s State) (State, bool) {
		draft = s.Draft
		return s.BeginGeneration()
	})
	if !ok {
		return nil, false
	}
	return func(ctx context.Context) { o.runGeneration(ctx, c, draft) }, true
}

// BeginRegeneratePage は index 番目（0始まり）のページの再生成を受け付けます。
func (o *Orchestrator) BeginRegeneratePage(c *Container, index int) (Job, bool) {
	m := PageMarker(index)
	book, ok := o.beginRegeneration(c, m)
	if !ok {
		return nil, false
	}
	return func(ctx context.Context) {
		req := domain.PageRequest{Theme: book.Theme, Age: book.Age, Index: index}
		image, err := o.generate(ctx, req)
		if err != nil {
			o.failRegeneration(ctx, c, m, err)
			return
		}
		c.Update(func(s State) State {
			return s.CompleteRegeneration(m, func(b domain.Book) domain.Book {
				updated, err := b.WithPage(index, image)
				if err != nil {
					return b
				}
				return updated
			})
		})
		slog.InfoContext(ctx, "Page regenerated", "book_id", book.ID, slog.Int("page", index+1))
	}, true
}

// BeginRegenerateCover は表紙の再生成を受け付けます。
func (o *Orchestrator) BeginRegenerateCover(c *Container) (Job, bool) {
	book, ok := o.beginRegeneration(c, CoverMarker)
	if !ok {
		return nil, false
	}
	return func(ctx context.Context) {
		cover, err := o.generate(ctx, coverRequest(book.Theme, book.Age))
		if err != nil {
			o.failRegeneration(ctx, c, CoverMarker, err)
			return
		}
		c.Update(func(s State) State {
			return s.CompleteRegeneration(CoverMarker, func(b domain.Book) domain.Book {
				return b.WithCover(cover)
			})
		})
		slog.InfoContext(ctx, "Cover regenerated", "book_id", book.ID)
	}, true
}

// BeginRegenerateAll は表紙と全ページの作り直しを受け付けます。
// 1枚でも失敗した場合、作業中の本は一切変わりません。
func (o *Orchestrator) BeginRegenerateAll(c *Container) (Job, bool) {
	book, ok := o.beginRegeneration(c, AllMarker)
	if !ok {
		return nil, false
	}
	return func(ctx context.Context) {
		reqs := append([]domain.PageRequest{coverRequest(book.Theme, book.Age)}, pageRequests(book.Theme, book.Age)...)
		images, err := o.fanOut(ctx, reqs, nil)
		if err != nil {
			o.failRegeneration(ctx, c, AllMarker, err)
			return
		}
		c.Update(func(s State) State {
			return s.CompleteRegeneration(AllMarker, func(b domain.Book) domain.Book {
				return b.WithImages(images[0], images[1:])
			})
		})
		slog.InfoContext(ctx, "Whole book regenerated", "book_id", book.ID)
	}, true
}

// Generate は初回生成を受け付けて完了まで実行します。受け付けられなかった場合は false を返します。
func (o *Orchestrator) Generate(ctx context.Context, c *Container) bool {
	job, ok := o.BeginGenerate(c)
	return run(ctx, job, ok)
}

// RegeneratePage はページの再生成を完了まで実行します。
func (o *Orchestrator) RegeneratePage(ctx context.Context, c *Container, index int) bool {
	job, ok := o.BeginRegeneratePage(c, index)
	return run(ctx, job, ok)
}

// RegenerateCover は表紙の再生成を完了まで実行します。
func (o *Orchestrator) RegenerateCover(ctx context.Context, c *Container) bool {
	job, ok := o.BeginRegenerateCover(c)
	return run(ctx, job, ok)
}

// RegenerateAll は全体の再生成を完了まで実行します。
func (o *Orchestrator) RegenerateAll(ctx context.Context, c *Container) bool {
	job, ok := o.BeginRegenerateAll(c)
	return run(ctx, job, ok)
}

func run(ctx context.Context, job Job, ok bool) bool {
	if !ok {
		return false
	}
	job(ctx)
	return true
}

func (o *Orchestrator) runGeneration(ctx context.Context, c *Container, draft domain.Draft) {
	slog.InfoContext(ctx, "Starting coloring book generation",
		"name", draft.Name,
		"theme", draft.Theme,
		"age", string(draft.Age),
	)

	// 1. 表紙
	cover, err := o.generate(ctx, coverRequest(draft.Theme, draft.Age))
	if err != nil {
		o.failGeneration(ctx, c, err)
		return
	}
	c.Update(func(s State) State { return s.WithProgress(MsgCoverDone) })

	// 2. 中ページを並列に生成
	pages, err := o.fanOut(ctx, pageRequests(draft.Theme, draft.Age), func(req domain.PageRequest) {
		msg := fmt.Sprintf(MsgPageDone, req.Index+1, domain.PageCount)
		c.Update(func(s State) State { return s.WithProgress(msg) })
	})
	if err != nil {
		o.failGeneration(ctx, c, err)
		return
	}

	// 3. 組み立てて保存
	book := domain.Book{
		ID:        o.newID(),
		Name:      draft.Name,
		Theme:     draft.Theme,
		Age:       draft.Age,
		Cover:     cover,
		Pages:     pages,
		CreatedAt: o.now(),
	}
	c.Update(func(s State) State { return s.CompleteGeneration(book) })
	slog.InfoContext(ctx, "Coloring book generated", "book_id", book.ID, slog.Int("pages", len(book.Pages)))

	if err := o.saver.Save(ctx, book); err != nil {
		slog.ErrorContext(ctx, "Failed to save book", "book_id", book.ID, "error", err)
		c.Update(func(s State) State { return s.WithNotice(NoticeSaveFailed) })
	}
}

func (o *Orchestrator) failGeneration(ctx context.Context, c *Container, err error) {
	slog.ErrorContext(ctx, "Coloring book generation failed", "error", err)
	c.Update(State.FailGeneration)
}

func (o *Orchestrator) beginRegeneration(c *Container, m Marker) (domain.Book, bool) {
	var book domain.Book
	ok := c.TryUpdate(func(s State) (State, bool) {
		next, ok := s.BeginRegeneration(m)
		if ok {
			book = s.Book.Clone()
		}
		return next, ok
	})
	return book, ok
}

func (o *Orchestrator) failRegeneration(ctx context.Context, c *Container, m Marker, err error) {
	slog.ErrorContext(ctx, "Regeneration failed", "target", string(m.Kind), slog.Int("index", m.Index), "error", err)
	c.Update(func(s State) State { return s.FailRegeneration(m) })
}

// generate は必要なら待機してから画像を1枚生成します。
func (o *Orchestrator) generate(ctx context.Context, req domain.PageRequest) (string, error) {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return "", &domain.GenerationError{Unit: req.Unit(), Err: err}
		}
	}
	return o.generator.GenerateColoringPage(ctx, req)
}

// fanOut は reqs を並列に生成し、要求と同じ順序で結果を返します。
// onDone は1枚完了するごとに呼ばれます（呼ばれる順序は不定）。
func (o *Orchestrator) fanOut(ctx context.Context, reqs []domain.PageRequest, onDone func(domain.PageRequest)) ([]string, error) {
	images := make([]string, len(reqs))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, req := range reqs {
		eg.Go(func() error {
			image, err := o.generate(egCtx, req)
			if err != nil {
				return err
			}
			images[i] = image
			if onDone != nil {
				onDone(req)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func coverRequest(theme string, age domain.AgeBracket) domain.PageRequest {
	return domain.PageRequest{Theme: theme, Age: age, IsCover: true}
}

func pageRequests(theme string, age domain.AgeBracket) []domain.PageRequest {
	reqs := make([]domain.PageRequest, domain.PageCount)
	for i := range reqs {
		reqs[i] = domain.PageRequest{Theme: theme, Age: age, Index: i}
	}
	return reqs
}
