package publisher

// A4 縦向き (mm)
const (
	PageWidth  = 210.0
	PageHeight = 297.0

	pageMargin       = 15.0
	coverTitleSpace  = 40.0
	coverImageTop    = pageMargin + 30
	imageAspectRatio = 3.0 / 4.0
)

// Rect はページ上の配置矩形 (mm) です。
type Rect struct {
	X, Y, W, H float64
}

// Fit は 3:4 の画像をページ内に収める配置を返します。
// 表紙はタイトル領域の分だけ高さを詰め、上端を固定します。
// 中ページは上下左右とも中央寄せです。
func Fit(isCover bool) Rect {
	maxW := PageWidth - pageMargin*2
	maxH := PageHeight - pageMargin*2
	if isCover {
		maxH -= coverTitleSpace
	}

	w := maxW
	h := w / imageAspectRatio
	if h > maxH {
		h = maxH
		w = h * imageAspectRatio
	}

	x := (PageWidth - w) / 2
	y := (PageHeight - h) / 2
	if isCover {
		y = coverImageTop
	}
	return Rect{X: x, Y: y, W: w, H: h}
}
