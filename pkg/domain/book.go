package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// PageCount は1冊の塗り絵本に含まれる中ページの枚数です（表紙は含みません）。
const PageCount = 5

// Book は生成が完了した塗り絵本1冊分のデータを保持します。
// 画像はすべて data URI 形式の文字列で保持します。
type Book struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Theme     string     `json:"theme"`
	Age       AgeBracket `json:"age"`
	Cover     string     `json:"cover"`
	Pages     []string   `json:"pages"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Complete は表紙と全ページが揃っているかどうかを返します。
func (b Book) Complete() bool {
	if b.Cover == "" || len(b.Pages) != PageCount {
		return false
	}
	for _, p := range b.Pages {
		if p == "" {
			return false
		}
	}
	return true
}

// Clone はページスライスを共有しないコピーを返します。
func (b Book) Clone() Book {
	c := b
	c.Pages = slices.Clone(b.Pages)
	return c
}

// WithCover は表紙だけを差し替えたコピーを返します。
func (b Book) WithCover(cover string) Book {
	c := b.Clone()
	c.Cover = cover
	return c
}

// WithPage は index 番目（0始まり）のページだけを差し替えたコピーを返します。
func (b Book) WithPage(index int, image string) (Book, error) {
	if index < 0 || index >= len(b.Pages) {
		return b, fmt.Errorf("ページ番号が範囲外です: %d (ページ数: %d)", index, len(b.Pages))
	}
	c := b.Clone()
	c.Pages[index] = image
	return c, nil
}

// WithImages は表紙と全ページを丸ごと差し替えたコピーを返します。
func (b Book) WithImages(cover string, pages []string) Book {
	c := b
	c.Cover = cover
	c.Pages = slices.Clone(pages)
	return c
}

// SortNewestFirst は作成日時の新しい順に並べ替えます。
func SortNewestFirst(books []Book) {
	slices.SortStableFunc(books, func(a, b Book) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// Draft は生成前の入力フォームの状態です。
type Draft struct {
	Name  string     `json:"name"`
	Age   AgeBracket `json:"age"`
	Theme string     `json:"theme"`
}

// NewDraft は年齢区分をデフォルト値にした空のフォームを返します。
func NewDraft() Draft {
	return Draft{Age: DefaultAgeBracket}
}

// Ready は名前とテーマが両方入力されているかを返します。
func (d Draft) Ready() bool {
	return strings.TrimSpace(d.Name) != "" && strings.TrimSpace(d.Theme) != ""
}

// PageRequest は画像1枚分の生成要求です。
type PageRequest struct {
	Theme   string
	Age     AgeBracket
	IsCover bool
	Index   int // 中ページの番号（0始まり）。表紙では無視します。
}

// Unit はログやエラーに使う生成単位の名前を返します。
func (r PageRequest) Unit() string {
	if r.IsCover {
		return "cover"
	}
	return fmt.Sprintf("page %d", r.Index+1)
}
