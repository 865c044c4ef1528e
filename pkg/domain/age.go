package domain

import (
	"fmt"
	"strings"
)

// AgeBracket は対象年齢の区分です。値はそのまま保存・表示に使います。
type AgeBracket string

const (
	AgeYoung  AgeBracket = "3-5"
	AgeMiddle AgeBracket = "6-8"
	AgeOlder  AgeBracket = "9-12"

	// DefaultAgeBracket はフォーム初期状態の年齢区分です。
	DefaultAgeBracket = AgeYoung
)

// AgeBrackets は選択可能な年齢区分を表示順で返します。
func AgeBrackets() []AgeBracket {
	return []AgeBracket{AgeYoung, AgeMiddle, AgeOlder}
}

// Valid は定義済みの区分かどうかを返します。
func (a AgeBracket) Valid() bool {
	switch a {
	case AgeYoung, AgeMiddle, AgeOlder:
		return true
	}
	return false
}

// ParseAgeBracket は "6-8" のような文字列を AgeBracket に変換します。
func ParseAgeBracket(s string) (AgeBracket, error) {
	a := AgeBracket(strings.TrimSpace(s))
	if !a.Valid() {
		return "", fmt.Errorf("未対応の年齢区分です: '%s'（指定可能: 3-5, 6-8, 9-12）", s)
	}
	return a, nil
}
