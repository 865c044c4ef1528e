package publisher

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vincent-petithory/dataurl"

	"github.com/shouni/go-coloring-kit/pkg/domain"
)

// whitePNG は 3:4 の白い PNG をデータURIとして返します。
func whitePNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 30, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 30; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("PNG のエンコードに失敗しました: %v", err)
	}
	return dataurl.New(buf.Bytes(), "image/png").String()
}

func TestFit(t *testing.T) {
	tests := []struct {
		name    string
		isCover bool
		want    Rect
	}{
		{"中ページは幅いっぱいで上下中央", false, Rect{X: 15, Y: 28.5, W: 180, H: 240}},
		{"表紙は高さで制限され上端固定", true, Rect{X: 19.875, Y: 45, W: 170.25, H: 227}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Fit(tt.isCover)); diff != "" {
				t.Errorf("配置が違います (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"Léo":         "coloriage-l-o.pdf",
		"Emma":        "coloriage-emma.pdf",
		"Jean Pierre": "coloriage-jean-pierre.pdf",
		"Zoé-2":       "coloriage-zo--2.pdf",
		"Mia🦄":        "coloriage-mia--.pdf",
	}
	for in, want := range tests {
		if got := FileName(in); got != want {
			t.Errorf("FileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPDFAssembler_Assemble(t *testing.T) {
	img := whitePNG(t)
	pages := []string{img, img, img, img, img}

	t.Run("表紙と5ページで6ページのPDFになること", func(t *testing.T) {
		doc, err := NewPDFAssembler().Assemble("Léo", "Dinosaures", img, pages)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if doc.PageCount != 6 {
			t.Errorf("PageCount = %d, want 6", doc.PageCount)
		}
		if doc.FileName != "coloriage-l-o.pdf" {
			t.Errorf("FileName = %s", doc.FileName)
		}
		if !bytes.HasPrefix(doc.Data, []byte("%PDF-")) {
			t.Error("PDF のヘッダーがありません")
		}
	})

	t.Run("Book からも同じように組み立てられること", func(t *testing.T) {
		book := domain.Book{Name: "Emma", Theme: "Robots", Cover: img, Pages: pages[:2]}
		doc, err := NewPDFAssembler().AssembleBook(book)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if doc.PageCount != 3 {
			t.Errorf("PageCount = %d, want 3", doc.PageCount)
		}
	})

	t.Run("画像でないデータはエラーになること", func(t *testing.T) {
		bogus := dataurl.New([]byte("not an image"), "image/png").String()
		_, err := NewPDFAssembler().Assemble("Léo", "Dinosaures", bogus, pages)
		if err == nil {
			t.Fatal("エラーになるはずでした")
		}
		if !strings.Contains(err.Error(), "表紙") {
			t.Errorf("表紙のエラーであることが分かりません: %v", err)
		}
	})

	t.Run("データURIでない文字列はエラーになること", func(t *testing.T) {
		_, err := NewPDFAssembler().Assemble("Léo", "Dinosaures", img, []string{"plain text"})
		if err == nil {
			t.Fatal("エラーになるはずでした")
		}
	})
}

func TestAssetManager_SaveDocument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	am := NewAssetManager(LocalWriter{}, dir)
	doc := &Document{FileName: "coloriage-l-o.pdf", Data: []byte("%PDF-1.3 test")}

	path, err := am.SaveDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if path != filepath.Join(dir, "coloriage-l-o.pdf") {
		t.Errorf("保存先 = %s", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("保存したファイルが読めません: %v", err)
	}
	if string(got) != "%PDF-1.3 test" {
		t.Errorf("内容が違います: %q", got)
	}
}

func TestResolveOutputPath(t *testing.T) {
	if _, err := ResolveOutputPath("out", "../escape.pdf"); err == nil {
		t.Error("ディレクトリ成分を含む名前はエラーになるはずでした")
	}
	got, err := ResolveOutputPath("", "a.pdf")
	if err != nil || got != "a.pdf" {
		t.Errorf("got %q, %v", got, err)
	}
}
