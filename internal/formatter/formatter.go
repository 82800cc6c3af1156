// package formatter converts channel lists and rendered grids to text, JSON, CSV and Markdown
package formatter

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/desertthunder/streamgrid/internal/shared"
	"github.com/desertthunder/streamgrid/internal/view"
)

// Output formats accepted by [RenderItems] and [ExportNames].
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Formats lists every supported format.
var Formats = []string{FormatText, FormatJSON, FormatCSV, FormatMarkdown}

// ValidFormat reports whether f is one of [Formats]. An empty string means text.
func ValidFormat(f string) bool {
	return f == "" || slices.Contains(Formats, f)
}

// MaxNameLength bounds an imported line; longer lines are skipped.
const MaxNameLength = 256

// ParseNames reads one channel name per line, normalizing each and skipping
// blank and overlong lines.
func ParseNames(r io.Reader) ([]string, error) {
	var (
		names []string
		line  []byte
		skip  bool
	)

	br := bufio.NewReader(r)
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read names: %w", err)
		}

		if !skip {
			line = append(line, chunk...)
			skip = len(line) > MaxNameLength
		}
		if isPrefix {
			continue
		}

		if name := shared.NormalizeChannelName(string(line)); name != "" && !skip {
			names = append(names, name)
		}
		line, skip = line[:0], false
	}
	return names, nil
}

// ExportNames encodes names in format. Text and Markdown are one name per line,
// CSV a single "name" column.
func ExportNames(names []string, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		if names == nil {
			names = []string{}
		}
		return shared.MarshalJSON(names, true)
	case FormatCSV:
		rows := make([][]string, 0, len(names)+1)
		rows = append(rows, []string{"name"})
		for _, n := range names {
			rows = append(rows, []string{n})
		}
		return writeCSV(rows)
	case FormatMarkdown:
		var buf bytes.Buffer
		for _, n := range names {
			buf.WriteString(fmt.Sprintf("- %s\n", n))
		}
		return buf.Bytes(), nil
	case FormatText, "":
		var buf bytes.Buffer
		for _, n := range names {
			buf.WriteString(n)
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// RenderItems formats a rendered grid. Filler items are omitted; details are
// included for live channels when details is set (always for JSON and CSV).
func RenderItems(items []view.DisplayItem, format string, details bool) ([]byte, error) {
	visible := make([]view.DisplayItem, 0, len(items))
	for _, it := range items {
		if it.Kind != view.KindFiller {
			visible = append(visible, it)
		}
	}

	switch format {
	case FormatJSON:
		return shared.MarshalJSON(visible, true)
	case FormatCSV:
		return itemsToCSV(visible)
	case FormatMarkdown:
		return itemsToMarkdown(visible, details), nil
	case FormatText, "":
		return itemsToText(visible, details), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// Detail returns the value of the detail with the given heading, or "".
func Detail(it view.DisplayItem, heading string) string {
	for _, d := range it.Details {
		if d.Heading == heading {
			return d.Value
		}
	}
	return ""
}

func itemsToText(items []view.DisplayItem, details bool) []byte {
	var buf bytes.Buffer
	for _, it := range items {
		switch it.Kind {
		case view.KindPlaceholder:
			buf.WriteString(it.Label + "\n")
			continue
		case view.KindError:
			buf.WriteString(fmt.Sprintf("%-8s %s (%s)\n", "error", it.Label, it.Name))
			continue
		case view.KindOffline:
			buf.WriteString(fmt.Sprintf("%-8s %s\n", "offline", it.Label))
			continue
		}

		buf.WriteString(fmt.Sprintf("%-8s %s", "live", it.Label))
		if game := Detail(it, "Game"); game != "" && game != "-" {
			buf.WriteString(" - " + game)
		}
		buf.WriteByte('\n')

		if details {
			for _, d := range it.Details {
				buf.WriteString(fmt.Sprintf("         %s: %s\n", d.Heading, d.Value))
			}
			if it.ProfileURL != "" {
				buf.WriteString(fmt.Sprintf("         Link: %s\n", it.ProfileURL))
			}
		}
	}
	return buf.Bytes()
}

func itemsToMarkdown(items []view.DisplayItem, details bool) []byte {
	var buf bytes.Buffer
	buf.WriteString("| Channel | Status | Game | Viewers |\n")
	buf.WriteString("|---|---|---|---|\n")

	for _, it := range items {
		if it.Kind == view.KindPlaceholder {
			buf.WriteString(fmt.Sprintf("| %s | | | |\n", escapeCell(it.Label)))
			continue
		}

		label := escapeCell(it.Label)
		if it.ProfileURL != "" {
			label = fmt.Sprintf("[%s](%s)", label, it.ProfileURL)
		}
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			label, it.Kind, escapeCell(Detail(it, "Game")), Detail(it, "Viewers")))
	}

	if details {
		for _, it := range items {
			if it.Kind != view.KindLive {
				continue
			}
			buf.WriteString(fmt.Sprintf("\n## %s\n\n", it.Label))
			for _, d := range it.Details {
				buf.WriteString(fmt.Sprintf("- **%s**: %s\n", d.Heading, d.Value))
			}
		}
	}
	return buf.Bytes()
}

func itemsToCSV(items []view.DisplayItem) ([]byte, error) {
	rows := [][]string{{"Name", "Status", "Label", "Game", "Title", "Viewers", "Video", "Views", "Delay", "Link"}}
	for _, it := range items {
		if !it.IsReal() {
			continue
		}
		rows = append(rows, []string{
			it.Name,
			it.Kind.String(),
			it.Label,
			Detail(it, "Game"),
			Detail(it, "Status"),
			Detail(it, "Viewers"),
			Detail(it, "Video"),
			Detail(it, "Views"),
			Detail(it, "Delay"),
			it.ProfileURL,
		})
	}
	return writeCSV(rows)
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, record := range rows {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
