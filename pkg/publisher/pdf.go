package publisher

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jung-kurt/gofpdf"
	"github.com/vincent-petithory/dataurl"

	"github.com/shouni/go-coloring-kit/pkg/domain"
)

const (
	titleFont    = "Helvetica"
	titleSize    = 28
	titleY       = 25
	subtitleSize = 16
	subtitleY    = 35
)

// Document は組版済みの PDF です。
type Document struct {
	FileName  string
	Data      []byte
	PageCount int
}

// PDFAssembler は表紙と中ページを A4 の PDF にまとめます。
type PDFAssembler struct{}

func NewPDFAssembler() *PDFAssembler {
	return &PDFAssembler{}
}

// AssembleBook は Book の内容から PDF を組み立てます。
func (a *PDFAssembler) AssembleBook(book domain.Book) (*Document, error) {
	return a.Assemble(book.Name, book.Theme, book.Cover, book.Pages)
}

// Assemble は1ページ目に表紙、続く各ページに中ページ画像を1枚ずつ配置します。
func (a *PDFAssembler) Assemble(name, theme, cover string, pages []string) (*Document, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// 1. 表紙
	pdf.AddPage()
	drawCentered(pdf, tr(fmt.Sprintf("Le livre de coloriage de %s", name)), "B", titleSize, titleY, 30, 41, 59)
	drawCentered(pdf, tr(fmt.Sprintf("Theme: %s", theme)), "", subtitleSize, subtitleY, 100, 116, 139)
	if err := placeImage(pdf, "cover", cover, Fit(true)); err != nil {
		return nil, fmt.Errorf("表紙の配置に失敗しました: %w", err)
	}

	// 2. 中ページ
	for i, page := range pages {
		pdf.AddPage()
		if err := placeImage(pdf, fmt.Sprintf("page-%d", i+1), page, Fit(false)); err != nil {
			return nil, fmt.Errorf("ページ %d の配置に失敗しました: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF の出力に失敗しました: %w", err)
	}

	doc := &Document{
		FileName:  FileName(name),
		Data:      buf.Bytes(),
		PageCount: pdf.PageCount(),
	}
	slog.Debug("PDF assembled",
		"file", doc.FileName,
		slog.Int("pages", doc.PageCount),
		slog.Int("bytes", len(doc.Data)),
	)
	return doc, nil
}

func drawCentered(pdf *gofpdf.Fpdf, text, style string, size, y float64, r, g, b int) {
	pdf.SetFont(titleFont, style, size)
	pdf.SetTextColor(r, g, b)
	x := (PageWidth - pdf.GetStringWidth(text)) / 2
	pdf.Text(x, y, text)
}

func placeImage(pdf *gofpdf.Fpdf, imageName, dataURI string, rect Rect) error {
	du, err := dataurl.DecodeString(dataURI)
	if err != nil {
		return fmt.Errorf("データURIのデコードに失敗しました: %w", err)
	}

	imageType, err := detectImageType(du.Data)
	if err != nil {
		return err
	}

	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(du.Data))
	if pdf.Err() {
		return pdf.Error()
	}
	pdf.ImageOptions(imageName, rect.X, rect.Y, rect.W, rect.H, false, opts, 0, "")
	return pdf.Error()
}

// detectImageType は宣言された MIME ではなく実際のバイト列から形式を判定します。
func detectImageType(data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is("image/png"):
		return "PNG", nil
	case mtype.Is("image/jpeg"):
		return "JPG", nil
	case mtype.Is("image/gif"):
		return "GIF", nil
	default:
		return "", fmt.Errorf("未対応の画像形式です: %s", mtype.String())
	}
}
