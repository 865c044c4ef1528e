package publisher

import (
	"strings"
	"unicode/utf16"
)

// Slug は名前を小文字化し、[a-z0-9] 以外を "-" に置き換えます。
// 置き換えは UTF-16 の符号単位ごとなので、絵文字のようなサロゲートペアは "--" になります。
func Slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteString(strings.Repeat("-", max(utf16.RuneLen(r), 1)))
	}
	return b.String()
}

// FileName は書き出す PDF のファイル名を返します。
func FileName(name string) string {
	return "coloriage-" + Slug(name) + ".pdf"
}
