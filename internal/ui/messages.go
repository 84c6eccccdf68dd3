package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	audiofilter "github.com/tphakala/go-audio-filter"
	"github.com/tphakala/go-audio-filter/internal/app"
)

// ResultMsg carries a finished filtering run
type ResultMsg struct {
	Result *app.Result
	Err    error
}

// PlayDoneMsg indicates playback has finished or failed
type PlayDoneMsg struct {
	Err error
}

// ExportDoneMsg reports the files written by an export
type ExportDoneMsg struct {
	Paths app.ExportPaths
	Err   error
}

func applyPresetCmd(ctx context.Context, s *app.Session, name string) tea.Cmd {
	return func() tea.Msg {
		r, err := s.ApplyPreset(ctx, name)
		return ResultMsg{Result: r, Err: err}
	}
}

func applyDesignCmd(ctx context.Context, s *app.Session, p audiofilter.DesignParams) tea.Cmd {
	return func() tea.Msg {
		r, err := s.ApplyDesign(ctx, p)
		return ResultMsg{Result: r, Err: err}
	}
}

func playCmd(ctx context.Context, s *app.Session, r *app.Result) tea.Cmd {
	return func() tea.Msg {
		return PlayDoneMsg{Err: s.Play(ctx, r)}
	}
}

func exportCmd(s *app.Session, r *app.Result) tea.Cmd {
	return func() tea.Msg {
		paths, err := s.Export(r, "")
		return ExportDoneMsg{Paths: paths, Err: err}
	}
}
