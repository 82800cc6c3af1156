// Package view derives the display grid from registry contents.
//
// [Render] is a pure function: it never mutates the registry, and the same
// entries, filter and palette always produce the same items. Front ends (the
// terminal grid, the web page, the CLI formatters) only decide how to draw a
// [DisplayItem].
package view
