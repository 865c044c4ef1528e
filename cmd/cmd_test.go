package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"oui\n", true},
		{"O\n", true},
		{"y\n", true},
		{"non\n", false},
		{"\n", false},
		{"", false},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got := confirm(strings.NewReader(tt.input), &out, "Voulez-vous vraiment supprimer ce livre ?")
			if got != tt.want {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.HasPrefix(out.String(), "Voulez-vous vraiment supprimer ce livre ?") {
				t.Errorf("質問が表示されません: %q", out.String())
			}
		})
	}
}

func TestRootCommands(t *testing.T) {
	want := []string{"delete", "export", "generate", "list", "serve", "themes"}
	var got []string
	for _, c := range rootCmd.Commands() {
		switch c.Name() {
		case "help", "completion":
			continue
		}
		got = append(got, c.Name())
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("サブコマンド = %v, want %v", got, want)
	}
}

func TestThemesCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"themes"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 {
		t.Errorf("テーマの数 = %d, want 5:\n%s", len(lines), out.String())
	}
}
