package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func sampleBook() Book {
	return Book{
		ID:        "book-1",
		Name:      "Léo",
		Theme:     "Dinosaures",
		Age:       AgeMiddle,
		Cover:     "cover",
		Pages:     []string{"p1", "p2", "p3", "p4", "p5"},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestBook_Complete(t *testing.T) {
	if !sampleBook().Complete() {
		t.Fatal("表紙と5ページが揃っているのに未完成と判定されました")
	}

	short := sampleBook()
	short.Pages = short.Pages[:4]
	if short.Complete() {
		t.Error("4ページしかないのに完成と判定されました")
	}

	noCover := sampleBook()
	noCover.Cover = ""
	if noCover.Complete() {
		t.Error("表紙がないのに完成と判定されました")
	}
}

func TestBook_WithPage(t *testing.T) {
	t.Run("指定したページだけが差し替わること", func(t *testing.T) {
		orig := sampleBook()
		updated, err := orig.WithPage(2, "new")
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}

		want := []string{"p1", "p2", "new", "p4", "p5"}
		if diff := cmp.Diff(want, updated.Pages); diff != "" {
			t.Errorf("ページ内容が違います (-want +got):\n%s", diff)
		}
		if updated.Cover != orig.Cover {
			t.Errorf("表紙が変わってしまいました: %s", updated.Cover)
		}
		if diff := cmp.Diff(sampleBook(), orig); diff != "" {
			t.Errorf("元の Book が変更されています (-want +got):\n%s", diff)
		}
	})

	t.Run("範囲外のインデックスはエラーになること", func(t *testing.T) {
		for _, idx := range []int{-1, PageCount} {
			if _, err := sampleBook().WithPage(idx, "x"); err == nil {
				t.Errorf("index=%d でエラーになりませんでした", idx)
			}
		}
	})
}

func TestBook_WithCoverAndImages(t *testing.T) {
	orig := sampleBook()

	c := orig.WithCover("new-cover")
	if c.Cover != "new-cover" {
		t.Errorf("表紙が差し替わっていません: %s", c.Cover)
	}
	if diff := cmp.Diff(orig.Pages, c.Pages); diff != "" {
		t.Errorf("表紙の差し替えでページが変わりました (-want +got):\n%s", diff)
	}

	pages := []string{"a", "b", "c", "d", "e"}
	all := orig.WithImages("z", pages)
	pages[0] = "mutated"
	if all.Pages[0] != "a" {
		t.Error("WithImages が呼び出し元のスライスを共有しています")
	}
	if orig.Cover != "cover" {
		t.Error("WithImages が元の Book を変更しました")
	}
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	books := []Book{
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "mid", CreatedAt: base.Add(time.Hour)},
	}
	SortNewestFirst(books)

	var got []string
	for _, b := range books {
		got = append(got, b.ID)
	}
	if diff := cmp.Diff([]string{"new", "mid", "old"}, got); diff != "" {
		t.Errorf("並び順が違います (-want +got):\n%s", diff)
	}
}

func TestDraft_Ready(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		want  bool
	}{
		{"名前とテーマあり", Draft{Name: "Léo", Theme: "Dinosaures"}, true},
		{"名前が空", Draft{Name: "", Theme: "Dinosaures"}, false},
		{"テーマが空", Draft{Name: "Léo", Theme: ""}, false},
		{"空白だけの名前", Draft{Name: "   ", Theme: "Robots"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.draft.Ready(); got != tt.want {
				t.Errorf("期待値 %v, 実際の値 %v", tt.want, got)
			}
		})
	}

	if NewDraft().Age != AgeYoung {
		t.Errorf("デフォルトの年齢区分が 3-5 ではありません: %s", NewDraft().Age)
	}
}

func TestParseAgeBracket(t *testing.T) {
	for _, a := range AgeBrackets() {
		got, err := ParseAgeBracket(string(a))
		if err != nil || got != a {
			t.Errorf("'%s' のパースに失敗しました: %v", a, err)
		}
	}
	if _, err := ParseAgeBracket("13-15"); err == nil {
		t.Error("未定義の区分でエラーになりませんでした")
	}
}

func TestErrors_Unwrap(t *testing.T) {
	genErr := error(&GenerationError{Unit: "cover", Err: ErrNoImageGenerated})
	if !errors.Is(genErr, ErrNoImageGenerated) {
		t.Error("GenerationError から ErrNoImageGenerated を取り出せません")
	}

	cause := errors.New("disk full")
	storeErr := error(&StoreError{Op: "save", Err: cause})
	var se *StoreError
	if !errors.As(storeErr, &se) || se.Op != "save" || !errors.Is(storeErr, cause) {
		t.Errorf("StoreError のアンラップが正しくありません: %v", storeErr)
	}
}

func TestSuggestedThemes(t *testing.T) {
	themes, err := SuggestedThemes()
	if err != nil {
		t.Fatalf("埋め込みテーマの読み込みに失敗しました: %v", err)
	}
	want := []string{
		"Dinosaures de l'espace",
		"Princesses aventurières",
		"Robots rigolos",
		"Animaux fantastiques",
		"Super-héros mignons",
	}
	if diff := cmp.Diff(want, themes); diff != "" {
		t.Errorf("テーマ一覧が違います (-want +got):\n%s", diff)
	}

	if _, err := parseThemes([]byte("themes: [")); err == nil {
		t.Error("不正なYAMLでエラーになりませんでした")
	}
}
