package prompts

import "github.com/shouni/go-coloring-kit/pkg/domain"

const (
	// coloringBaseTemplate は全ページ共通の塗り絵用指示です。%s にテーマが入ります。
	coloringBaseTemplate = "A children's coloring page about %s. Pure white background, thick black outlines only. No shading, no grayscale, no black fills, no colors. Cute cartoon style. No text, no words, no letters, no numbers."

	// CoverCompositionClause は表紙のときだけ末尾に付与する構図指示です。
	CoverCompositionClause = "Central composition, large margins around the edge."

	// sceneThemeFormat は中ページ用のテーマ表記です（シーン番号は1始まり）。
	sceneThemeFormat = "%s, scene %d"
)

// ageDetailClauses は年齢区分ごとの描き込み量の指示です。
var ageDetailClauses = map[domain.AgeBracket]string{
	domain.AgeYoung:  "Very simple shapes, large areas to color, minimal details, suitable for a toddler.",
	domain.AgeMiddle: "Complete scene, moderate details, balanced composition, suitable for a young child.",
	domain.AgeOlder:  "Rich illustration, full background, extra details, suitable for an older child.",
}

// DetailClause は年齢区分に対応する指示文を返します。未定義の区分なら空文字です。
func DetailClause(age domain.AgeBracket) string {
	return ageDetailClauses[age]
}
