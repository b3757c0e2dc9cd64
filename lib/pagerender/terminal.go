// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pagerender

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/bureau-foundation/folio/lib/tui"
)

// wrapBreakpoints are the characters ansi.Wrap may break after in
// addition to whitespace.
const wrapBreakpoints = " ,.;-+|/"

var (
	markdownOnce   sync.Once
	markdownParser goldmark.Markdown
)

func parser() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

// renderTerminal walks the markdown AST and returns styled lines. Soft
// line breaks reflow as spaces so pages wrap to any width.
func renderTerminal(markdown string, theme tui.Theme, width int) string {
	if markdown == "" {
		return ""
	}
	source := []byte(markdown)
	document := parser().Parser().Parse(text.NewReader(source))

	// Output always lands in a bubbletea view, so color detection
	// against the real terminal (or a test's lack of one) is skipped.
	styles := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	styles.SetColorProfile(termenv.ANSI256)

	writer := &terminalWriter{
		source: source,
		theme:  theme,
		width:  width,
		styles: styles,
	}
	ast.Walk(document, writer.visit)
	return strings.TrimRight(writer.output.String(), "\n")
}

type terminalWriter struct {
	source []byte
	theme  tui.Theme
	width  int
	styles *lipgloss.Renderer

	output   strings.Builder
	trailing int // newlines at the end of output

	// inline collects the styled fragments of the current paragraph
	// or heading until the block closes and wraps them as a unit.
	inline strings.Builder

	margin margin
	lists  []listLevel

	bold, italic, struck int
}

// margin is the stack of line prefixes contributed by enclosing
// blockquotes and list items.
type margin struct {
	levels []string
	text   string
	width  int
	// bullet replaces text for the next emitted line only.
	bullet string
}

func (m *margin) push(prefix string) {
	m.levels = append(m.levels, prefix)
	m.text += prefix
	m.width += ansi.StringWidth(prefix)
}

func (m *margin) pop() {
	if len(m.levels) == 0 {
		return
	}
	last := m.levels[len(m.levels)-1]
	m.levels = m.levels[:len(m.levels)-1]
	m.text = m.text[:len(m.text)-len(last)]
	m.width -= ansi.StringWidth(last)
}

func (m *margin) next() string {
	if m.bullet != "" {
		bullet := m.bullet
		m.bullet = ""
		return bullet
	}
	return m.text
}

// indent prefixes every line of block with the current margin.
func (m *margin) indent(block string) string {
	lines := strings.Split(block, "\n")
	lines[0] = m.next() + lines[0]
	for index := 1; index < len(lines); index++ {
		lines[index] = m.text + lines[index]
	}
	return strings.Join(lines, "\n")
}

type listLevel struct {
	ordered bool
	number  int
	tight   bool
}

func (w *terminalWriter) style() lipgloss.Style {
	return w.styles.NewStyle()
}

func (w *terminalWriter) available() int {
	return max(w.width-w.margin.width, 10)
}

func (w *terminalWriter) tight() bool {
	return len(w.lists) > 0 && w.lists[len(w.lists)-1].tight
}

func (w *terminalWriter) write(s string) {
	if s == "" {
		return
	}
	w.output.WriteString(s)
	trimmed := strings.TrimRight(s, "\n")
	if trimmed == "" {
		w.trailing += len(s)
	} else {
		w.trailing = len(s) - len(trimmed)
	}
}

func (w *terminalWriter) newline() {
	if w.trailing < 1 {
		w.write("\n")
	}
}

func (w *terminalWriter) blank() {
	if w.output.Len() == 0 {
		return
	}
	for w.trailing < 2 {
		w.write("\n")
	}
}

// block writes a finished block of lines under the current margin.
func (w *terminalWriter) block(lines string) {
	if lines == "" {
		return
	}
	w.write(w.margin.indent(lines))
	w.newline()
	if !w.tight() {
		w.blank()
	}
}

func (w *terminalWriter) flush() string {
	content := w.inline.String()
	w.inline.Reset()
	if strings.TrimSpace(ansi.Strip(content)) == "" {
		return ""
	}
	return ansi.Wrap(content, w.available(), wrapBreakpoints)
}

func (w *terminalWriter) styled(s string) string {
	style := w.style().Foreground(w.theme.NormalText)
	if w.bold > 0 {
		style = style.Bold(true)
	}
	if w.italic > 0 {
		style = style.Italic(true)
	}
	if w.struck > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(s)
}

// children renders the inline content of node into a string without
// disturbing the paragraph being accumulated.
func (w *terminalWriter) children(node ast.Node) string {
	saved := w.inline.String()
	bold, italic, struck := w.bold, w.italic, w.struck
	w.inline.Reset()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		ast.Walk(child, w.visit)
	}
	rendered := w.inline.String()
	w.inline.Reset()
	w.inline.WriteString(saved)
	w.bold, w.italic, w.struck = bold, italic, struck
	return rendered
}

func (w *terminalWriter) lines(node ast.Node) string {
	var builder strings.Builder
	segments := node.Lines()
	for index := 0; index < segments.Len(); index++ {
		segment := segments.At(index)
		builder.Write(segment.Value(w.source))
	}
	return builder.String()
}

func (w *terminalWriter) visit(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := node.(type) {
	case *ast.Document:

	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			w.inline.Reset()
		} else {
			w.block(w.flush())
		}

	case *ast.Heading:
		if entering {
			w.inline.Reset()
		} else {
			w.heading(node.Level)
		}

	case *ast.FencedCodeBlock:
		if entering {
			w.code(w.lines(node), string(node.Language(w.source)))
		}
		return ast.WalkSkipChildren, nil

	case *ast.CodeBlock:
		if entering {
			w.code(w.lines(node), "")
		}
		return ast.WalkSkipChildren, nil

	case *ast.Blockquote:
		if entering {
			w.margin.push(w.style().Foreground(w.theme.BorderColor).Render("│") + " ")
		} else {
			w.margin.pop()
			w.blank()
		}

	case *ast.List:
		if entering {
			w.lists = append(w.lists, listLevel{ordered: node.IsOrdered(), number: node.Start, tight: node.IsTight})
		} else {
			w.lists = w.lists[:len(w.lists)-1]
			if !w.tight() {
				w.blank()
			}
		}

	case *ast.ListItem:
		if entering {
			w.enterItem()
		} else {
			w.margin.pop()
			if w.tight() {
				w.newline()
			} else {
				w.blank()
			}
		}

	case *ast.ThematicBreak:
		if entering {
			w.blank()
			w.block(w.style().Foreground(w.theme.BorderColor).Render(strings.Repeat("─", w.available())))
		}

	case *ast.HTMLBlock:
		if entering {
			if stripped := strings.TrimSpace(plainText(w.lines(node))); stripped != "" {
				w.block(w.style().Foreground(w.theme.FaintText).Render(stripped))
			}
		}
		return ast.WalkSkipChildren, nil

	case *ast.Text:
		if entering {
			w.inline.WriteString(w.styled(string(node.Segment.Value(w.source))))
			if node.HardLineBreak() {
				w.inline.WriteString("\n")
			} else if node.SoftLineBreak() {
				w.inline.WriteString(" ")
			}
		}

	case *ast.String:
		if entering {
			w.inline.WriteString(w.styled(string(node.Value)))
		}

	case *ast.Emphasis:
		counter := &w.italic
		if node.Level >= 2 {
			counter = &w.bold
		}
		if entering {
			*counter++
		} else {
			*counter--
		}

	case *extast.Strikethrough:
		if entering {
			w.struck++
		} else {
			w.struck--
		}

	case *ast.CodeSpan:
		if entering {
			span := ansi.Strip(w.children(node))
			w.inline.WriteString(w.style().Foreground(w.theme.AccentSoft).Render(span))
		}
		return ast.WalkSkipChildren, nil

	case *ast.Link:
		if entering {
			w.link(w.children(node), string(node.Destination))
		}
		return ast.WalkSkipChildren, nil

	case *ast.AutoLink:
		if entering {
			w.link("", string(node.URL(w.source)))
		}
		return ast.WalkSkipChildren, nil

	case *ast.Image:
		if entering {
			w.image(ansi.Strip(w.children(node)), string(node.Destination))
		}
		return ast.WalkSkipChildren, nil

	case *ast.RawHTML:
		if entering {
			var raw strings.Builder
			for index := 0; index < node.Segments.Len(); index++ {
				segment := node.Segments.At(index)
				raw.Write(segment.Value(w.source))
			}
			if stripped := plainText(raw.String()); stripped != "" {
				w.inline.WriteString(w.styled(stripped))
			}
		}
		return ast.WalkSkipChildren, nil

	case *extast.Table:
		if entering {
			w.table(node)
		}
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

// heading styles by level: top-level and section headings in the
// accent color with a rule under section headings, subsections in
// the softer accent, anything deeper in bold body text.
func (w *terminalWriter) heading(level int) {
	content := ansi.Strip(w.inline.String())
	w.inline.Reset()
	if strings.TrimSpace(content) == "" {
		return
	}

	style := w.style().Bold(true)
	switch {
	case level <= 2:
		style = style.Foreground(w.theme.Accent)
	case level == 3:
		style = style.Foreground(w.theme.AccentSoft)
	default:
		style = style.Foreground(w.theme.NormalText)
	}
	wrapped := ansi.Wrap(style.Render(content), w.available(), wrapBreakpoints)

	w.blank()
	w.write(w.margin.indent(wrapped))
	w.newline()
	if level == 2 {
		rule := strings.Repeat("─", min(ansi.StringWidth(content), w.available()))
		w.write(w.margin.indent(w.style().Foreground(w.theme.BorderColor).Render(rule)))
		w.newline()
	}
	w.blank()
}

func (w *terminalWriter) code(code, language string) {
	highlighted := w.highlight(code, language)
	w.blank()
	for _, line := range strings.Split(strings.TrimRight(highlighted, "\n"), "\n") {
		w.write(w.margin.next() + line)
		w.newline()
	}
	w.blank()
}

func (w *terminalWriter) highlight(code, language string) string {
	faint := w.style().Foreground(w.theme.FaintText)
	if language == "" {
		return faint.Render(code)
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err != nil {
		return faint.Render(code)
	}
	return buffer.String()
}

func (w *terminalWriter) enterItem() {
	if len(w.lists) == 0 {
		return
	}
	level := &w.lists[len(w.lists)-1]
	bullet := "• "
	if level.ordered {
		bullet = fmt.Sprintf("%d. ", level.number)
		level.number++
	}
	bulletStyle := w.style().Foreground(w.theme.Accent)
	w.margin.bullet = w.margin.text + bulletStyle.Render(bullet)
	w.margin.push(strings.Repeat(" ", ansi.StringWidth(bullet)))
}

func (w *terminalWriter) link(label, destination string) {
	linkStyle := w.style().Foreground(w.theme.LinkForeground).Underline(true)
	plain := strings.TrimSpace(ansi.Strip(label))
	if plain == "" || plain == destination {
		w.inline.WriteString(linkStyle.Render(destination))
		return
	}
	w.inline.WriteString(w.style().Foreground(w.theme.LinkForeground).Render(plain))
	if destination != "" {
		w.inline.WriteString(" " + w.style().Foreground(w.theme.FaintText).Render("("+destination+")"))
	}
}

// image renders as a labelled placeholder with the resolved path.
func (w *terminalWriter) image(alt, destination string) {
	if alt == "" {
		alt = "image"
	}
	w.inline.WriteString(w.style().Foreground(w.theme.AccentSoft).Render("▣ " + alt))
	if destination != "" {
		w.inline.WriteString(" " + w.style().Foreground(w.theme.FaintText).Render("("+destination+")"))
	}
}

func (w *terminalWriter) table(table *extast.Table) {
	var header []string
	var rows [][]string
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *extast.TableHeader:
			header = w.cells(child)
		case *extast.TableRow:
			rows = append(rows, w.cells(child))
		}
	}

	columns := len(header)
	for _, row := range rows {
		columns = max(columns, len(row))
	}
	if columns == 0 {
		return
	}

	widths := make([]int, columns)
	measure := func(row []string) {
		for index, cell := range row {
			widths[index] = max(widths[index], lipgloss.Width(cell))
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}

	const gap = "  "
	total := len(gap) * (columns - 1)
	for _, width := range widths {
		total += width
	}
	if available := w.available(); total > available {
		usable := max(available-len(gap)*(columns-1), columns*3)
		for index := range widths {
			widths[index] = max(widths[index]*usable/total, 3)
		}
	}

	w.blank()
	if len(header) > 0 {
		w.write(w.margin.next() + w.row(header, widths, table.Alignments, w.style().Bold(true)))
		w.newline()
		rules := make([]string, columns)
		for index, width := range widths {
			rules[index] = strings.Repeat("─", width)
		}
		w.write(w.margin.text + w.style().Foreground(w.theme.BorderColor).Render(strings.Join(rules, gap)))
		w.newline()
	}
	for _, row := range rows {
		w.write(w.margin.next() + w.row(row, widths, table.Alignments, w.style()))
		w.newline()
	}
	w.blank()
}

func (w *terminalWriter) cells(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if _, ok := cell.(*extast.TableCell); ok {
			cells = append(cells, w.children(cell))
		}
	}
	return cells
}

func (w *terminalWriter) row(cells []string, widths []int, alignments []extast.Alignment, base lipgloss.Style) string {
	parts := make([]string, len(widths))
	for index, width := range widths {
		var cell string
		if index < len(cells) {
			cell = cells[index]
		}
		if lipgloss.Width(cell) > width {
			cell = ansi.Truncate(cell, width, "…")
		}
		padding := max(width-lipgloss.Width(cell), 0)

		alignment := extast.AlignNone
		if index < len(alignments) {
			alignment = alignments[index]
		}
		switch alignment {
		case extast.AlignRight:
			cell = strings.Repeat(" ", padding) + cell
		case extast.AlignCenter:
			cell = strings.Repeat(" ", padding/2) + cell + strings.Repeat(" ", padding-padding/2)
		default:
			cell += strings.Repeat(" ", padding)
		}
		parts[index] = cell
	}
	return base.Render(strings.Join(parts, "  "))
}
