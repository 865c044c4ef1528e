package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-coloring-kit/pkg/domain"
)

// Build はテーマと年齢区分から画像生成プロンプトを組み立てます。
// 同じ入力なら常に同じ文字列を返します。
func Build(theme string, age domain.AgeBracket, isCover bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(coloringBaseTemplate, theme))
	sb.WriteString(" ")
	sb.WriteString(DetailClause(age))

	if isCover {
		sb.WriteString(" ")
		sb.WriteString(CoverCompositionClause)
	}
	return sb.String()
}

// SceneTheme は index 番目（0始まり）の中ページに使うテーマ文字列を返します。
func SceneTheme(theme string, index int) string {
	return fmt.Sprintf(sceneThemeFormat, theme, index+1)
}

// BuildForRequest は生成要求からプロンプトを組み立てます。
// 中ページではテーマにシーン番号を埋め込みます。
func BuildForRequest(req domain.PageRequest) string {
	theme := req.Theme
	if !req.IsCover {
		theme = SceneTheme(theme, req.Index)
	}
	return Build(theme, req.Age, req.IsCover)
}
