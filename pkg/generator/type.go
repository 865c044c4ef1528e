package generator

const (
	// DefaultImageModel は塗り絵生成に使う Gemini の画像モデルです。
	DefaultImageModel = "gemini-2.5-flash-image"
	// PageAspectRatio は表紙・中ページ共通のアスペクト比です。
	PageAspectRatio = "3:4"
	// dataURIMediaType は data URI に付与するメディアタイプです。
	dataURIMediaType = "image/png"
)
