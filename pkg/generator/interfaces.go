package generator

import (
	"context"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"google.golang.org/genai"
)

// ImageGenerator は塗り絵1枚を生成し、data URI 形式で返すための契約です。
type ImageGenerator interface {
	GenerateColoringPage(ctx context.Context, req domain.PageRequest) (string, error)
}

// ContentGenerator は genai の Models が満たす最小限のインターフェースです。
// テストでは固定レスポンスを返す実装に差し替えます。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}
