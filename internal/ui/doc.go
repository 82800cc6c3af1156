// Package ui implements the interactive terminal grid using bubbletea's Elm architecture.
//
// The (view) [Model] wraps a [tasks.Tracker] and draws every rendered item as a lipgloss box in its
// palette colors, laid out in as many columns as the terminal allows. Refreshes run inside a [tea.Cmd]
// and their results are applied when the completion [Msg] reaches Update, so the tracker is only ever
// mutated from the event loop. With a refresh interval set, the next refresh is scheduled with
// [tea.Tick] once the previous one lands.
//
// Keyboard navigation uses vim-style bindings (h/j/k/l, enter, t, r, a, x, e, o, q) with contextual help
// displayed via charmbracelet/bubbles/help.
package ui
