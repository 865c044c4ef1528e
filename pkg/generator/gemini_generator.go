package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/prompts"

	"github.com/vincent-petithory/dataurl"
	"google.golang.org/genai"
)

// GeminiGenerator は Gemini の画像モデルで塗り絵を生成します。
// リトライ・キャッシュ・レート制御は行いません（呼び出し側の責務です）。
type GeminiGenerator struct {
	models ContentGenerator
	model  string
}

// NewGeminiGenerator は GeminiGenerator を初期化します。model が空ならデフォルトモデルを使います。
func NewGeminiGenerator(models ContentGenerator, model string) (*GeminiGenerator, error) {
	if models == nil {
		return nil, fmt.Errorf("ContentGenerator は必須です")
	}
	if model == "" {
		model = DefaultImageModel
	}
	return &GeminiGenerator{
		models: models,
		model:  model,
	}, nil
}

// NewGeminiClient は APIキーから genai クライアントを作成します。
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY が設定されていません")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai クライアントの初期化に失敗しました: %w", err)
	}
	return client, nil
}

// GenerateColoringPage はリクエストからプロンプトを組み立て、1回だけ生成APIを呼び出します。
// レスポンス中の最初のインライン画像を data URI にして返します。
func (g *GeminiGenerator) GenerateColoringPage(ctx context.Context, req domain.PageRequest) (string, error) {
	prompt := prompts.BuildForRequest(req)
	unit := req.Unit()

	logger := slog.With("unit", unit, "model", g.model, "age", string(req.Age))
	logger.Debug("Starting coloring page generation")

	startTime := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: PageAspectRatio,
		},
	})
	if err != nil {
		return "", &domain.GenerationError{Unit: unit, Err: err}
	}

	data := firstInlineImage(resp)
	if len(data) == 0 {
		return "", &domain.GenerationError{Unit: unit, Err: domain.ErrNoImageGenerated}
	}

	logger.Debug("Coloring page generation completed",
		"duration", time.Since(startTime).Round(time.Millisecond),
		slog.Int("bytes", len(data)),
	)
	return EncodeDataURI(data), nil
}

// firstInlineImage は最初の候補から最初のインラインデータを取り出します。
func firstInlineImage(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return nil
	}
	for _, part := range content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}
	return nil
}

// EncodeDataURI は画像バイト列を data:image/png;base64,... 形式に変換します。
func EncodeDataURI(data []byte) string {
	return dataurl.New(data, dataURIMediaType).String()
}
