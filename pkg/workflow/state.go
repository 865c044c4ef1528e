package workflow

import (
	"fmt"

	"github.com/shouni/go-coloring-kit/pkg/domain"
)

// Tab は表示中のタブです。
type Tab string

const (
	TabHome     Tab = "home"
	TabCreate   Tab = "create"
	TabBooks    Tab = "books"
	TabSettings Tab = "settings"
)

// ParseTab は文字列を Tab に変換します。
func ParseTab(s string) (Tab, error) {
	switch t := Tab(s); t {
	case TabHome, TabCreate, TabBooks, TabSettings:
		return t, nil
	}
	return "", fmt.Errorf("不明なタブです: %q", s)
}

// Step は作成フローの段階です。
type Step string

const (
	StepForm       Step = "form"
	StepGenerating Step = "generating"
	StepPreview    Step = "preview"
)

// MarkerKind は再生成中の対象の種類です。
type MarkerKind string

const (
	MarkerIdle  MarkerKind = "idle"
	MarkerCover MarkerKind = "cover"
	MarkerPage  MarkerKind = "page"
	MarkerAll   MarkerKind = "all"
)

// Marker は進行中の再生成を表します。同時に1つまでです。
type Marker struct {
	Kind  MarkerKind `json:"kind"`
	Index int        `json:"index,omitempty"` // MarkerPage のときだけ意味を持つ
}

var (
	IdleMarker  = Marker{Kind: MarkerIdle}
	CoverMarker = Marker{Kind: MarkerCover}
	AllMarker   = Marker{Kind: MarkerAll}
)

// PageMarker は index 番目のページの再生成を表します。
func PageMarker(index int) Marker {
	return Marker{Kind: MarkerPage, Index: index}
}

// Active は再生成が進行中かどうかを返します。
func (m Marker) Active() bool {
	return m.Kind != "" && m.Kind != MarkerIdle
}

// State はアプリケーション全体の状態です。
// 各操作は State を書き換えず、新しい State を返します。
type State struct {
	Tab          Tab          `json:"tab"`
	Step         Step         `json:"step"`
	Draft        domain.Draft `json:"draft"`
	Book         *domain.Book `json:"book,omitempty"`
	Regenerating Marker       `json:"regenerating"`
	Progress     string       `json:"progress,omitempty"`
	Notice       string       `json:"notice,omitempty"`
}

// NewState は起動直後の状態を返します。
func NewState() State {
	return State{
		Tab:          TabHome,
		Step:         StepForm,
		Draft:        domain.NewDraft(),
		Regenerating: IdleMarker,
	}
}

// Clone は作業中の本を共有しないコピーを返します。
func (s State) Clone() State {
	if s.Book != nil {
		b := s.Book.Clone()
		s.Book = &b
	}
	return s
}

func (s State) generating() bool {
	return s.Step == StepGenerating
}

// busy は生成か再生成のどちらかが進行中かどうかを返します。
func (s State) busy() bool {
	return s.generating() || s.Regenerating.Active()
}

// SelectTab はタブだけを切り替えます。
func (s State) SelectTab(tab Tab) State {
	s.Tab = tab
	return s
}

// StartNewBook はフォームを初期化して作成タブに移ります。
// 生成中と再生成中は何もしません。
func (s State) StartNewBook() State {
	if s.busy() {
		return s
	}
	s.Tab = TabCreate
	s.Step = StepForm
	s.Draft = domain.NewDraft()
	s.Book = nil
	s.Regenerating = IdleMarker
	s.Progress = ""
	return s
}

// SelectTheme はおすすめテーマをフォームに入れて作成タブに移ります。
// 名前と年齢区分はそのまま残します。生成中と再生成中は何もしません。
func (s State) SelectTheme(theme string) State {
	if s.busy() {
		return s
	}
	s.Draft.Theme = theme
	s.Tab = TabCreate
	s.Step = StepForm
	return s
}

// UpdateDraft はフォームの入力を置き換えます。フォーム表示中以外は無視します。
func (s State) UpdateDraft(d domain.Draft) State {
	if s.Step != StepForm {
		return s
	}
	if !d.Age.Valid() {
		d.Age = s.Draft.Age
	}
	s.Draft = d
	return s
}

// DismissNotice は通知を消します。
func (s State) DismissNotice() State {
	s.Notice = ""
	return s
}

// BeginGeneration は生成を開始できる場合だけ生成中の状態に遷移します。
func (s State) BeginGeneration() (State, bool) {
	if s.Step != StepForm || !s.Draft.Ready() {
		return s, false
	}
	s.Step = StepGenerating
	s.Notice = ""
	s.Progress = fmt.Sprintf(MsgGenerating, s.Draft.Name)
	return s, true
}

// WithProgress は生成中の進捗メッセージを更新します。
func (s State) WithProgress(msg string) State {
	if !s.generating() {
		return s
	}
	s.Progress = msg
	return s
}

// CompleteGeneration は生成された本をプレビューに表示します。
func (s State) CompleteGeneration(book domain.Book) State {
	if !s.generating() {
		return s
	}
	b := book.Clone()
	s.Book = &b
	s.Step = StepPreview
	s.Progress = ""
	s.Regenerating = IdleMarker
	return s
}

// FailGeneration は部分的な結果を捨ててフォームに戻ります。
func (s State) FailGeneration() State {
	if !s.generating() {
		return s
	}
	s.Step = StepForm
	s.Book = nil
	s.Progress = ""
	s.Notice = NoticeGenerationFailed
	return s
}

// WithNotice は通知を設定します。
func (s State) WithNotice(msg string) State {
	s.Notice = msg
	return s
}

// BeginRegeneration はプレビュー中で他の再生成が進んでいない場合だけ m を進行中にします。
func (s State) BeginRegeneration(m Marker) (State, bool) {
	if s.Step != StepPreview || s.Book == nil || s.Regenerating.Active() || !m.Active() {
		return s, false
	}
	if m.Kind == MarkerPage && (m.Index < 0 || m.Index >= len(s.Book.Pages)) {
		return s, false
	}
	s.Regenerating = m
	s.Notice = ""
	return s, true
}

// CompleteRegeneration は apply で作業中の本を差し替え、進行中の表示を解除します。
// m が進行中の再生成と一致しない場合は何もしません。
func (s State) CompleteRegeneration(m Marker, apply func(domain.Book) domain.Book) State {
	if s.Regenerating != m || s.Book == nil {
		return s
	}
	b := apply(s.Book.Clone())
	s.Book = &b
	s.Regenerating = IdleMarker
	return s
}

// FailRegeneration は作業中の本を変えずに通知だけを出します。
func (s State) FailRegeneration(m Marker) State {
	if s.Regenerating != m {
		return s
	}
	s.Regenerating = IdleMarker
	s.Notice = NoticeRegenerationFailed
	return s
}
