package main

import (
	"github.com/shouni/go-coloring-kit/cmd"
)

// main はアプリケーションの唯一のエントリーポイントなのだ！
// コマンドライン解析と実行はすべて cmd パッケージに委ねるのだよ。
func main() {
	cmd.Execute()
}
