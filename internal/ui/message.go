package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/streamgrid/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgFetched MsgKind = iota
	MsgTick
	MsgNotice
)

type fetched struct {
	results []tasks.Result
	elapsed time.Duration
	err     error
}

type notice struct {
	text string
	err  error
}

// fetchedMsg is the constructor for [MsgFetched]
func fetchedMsg(results []tasks.Result, elapsed time.Duration, err error) Msg {
	return Msg{kind: MsgFetched, data: fetched{results, elapsed, err}}
}

// tickMsg is the constructor for [MsgTick]
func tickMsg() Msg {
	return Msg{kind: MsgTick}
}

// noticeMsg is the constructor for [MsgNotice]
func noticeMsg(text string, err error) Msg {
	return Msg{kind: MsgNotice, data: notice{text, err}}
}
