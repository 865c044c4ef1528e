package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed themes.yaml
var themesYAML []byte

type themeCatalog struct {
	Themes []struct {
		Name string `yaml:"name"`
	} `yaml:"themes"`
}

// SuggestedThemes は埋め込みのおすすめテーマを定義順で返します。
func SuggestedThemes() ([]string, error) {
	return parseThemes(themesYAML)
}

func parseThemes(data []byte) ([]string, error) {
	var catalog themeCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("テーマ一覧のパースに失敗しました: %w", err)
	}
	themes := make([]string, 0, len(catalog.Themes))
	for _, t := range catalog.Themes {
		if t.Name == "" {
			continue
		}
		themes = append(themes, t.Name)
	}
	return themes, nil
}
