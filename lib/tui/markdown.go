// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// wrapBreakpoints are the extra characters ansi.Wrap may break after.
const wrapBreakpoints = " ,.;-+|"

// minimumMarkdownWidth keeps deeply nested content readable.
const minimumMarkdownWidth = 10

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

// RenderMarkdown renders free-form notes for a terminal pane of the
// given width. Paragraphs reflow, so hard-wrapped source text fits any
// width. Fenced code blocks with a language are syntax highlighted;
// other code renders faint and unwrapped.
func RenderMarkdown(input string, theme Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := parser().Parser().Parse(text.NewReader(source))

	writer := &markdownWriter{source: source, theme: theme, width: width}
	ast.Walk(document, writer.walk)
	return strings.TrimRight(writer.output.String(), "\n")
}

type markdownWriter struct {
	source []byte
	theme  Theme
	width  int

	output   strings.Builder
	trailing int // newlines at the end of output

	// inline collects styled fragments of the open paragraph or
	// heading; it is wrapped as a unit when the block closes.
	inline strings.Builder

	prefix      string
	prefixWidth int
	prefixes    []int // byte length of each pushed prefix

	// bullet replaces prefix on the next emitted line.
	bullet string

	bold, italic, struck int
	lists                []listLevel
}

type listLevel struct {
	ordered bool
	next    int
	tight   bool
}

func (writer *markdownWriter) write(s string) {
	if s == "" {
		return
	}
	writer.output.WriteString(s)
	trimmed := strings.TrimRight(s, "\n")
	if trimmed == "" {
		writer.trailing += len(s)
	} else {
		writer.trailing = len(s) - len(trimmed)
	}
}

func (writer *markdownWriter) newline() {
	if writer.trailing < 1 {
		writer.write("\n")
	}
}

func (writer *markdownWriter) blankLine() {
	if writer.output.Len() == 0 {
		return
	}
	for writer.trailing < 2 {
		writer.write("\n")
	}
}

func (writer *markdownWriter) push(prefix string, width int) {
	writer.prefix += prefix
	writer.prefixWidth += width
	writer.prefixes = append(writer.prefixes, len(prefix))
}

func (writer *markdownWriter) pop(width int) {
	if len(writer.prefixes) == 0 {
		return
	}
	last := writer.prefixes[len(writer.prefixes)-1]
	writer.prefixes = writer.prefixes[:len(writer.prefixes)-1]
	writer.prefix = writer.prefix[:len(writer.prefix)-last]
	writer.prefixWidth -= width
}

func (writer *markdownWriter) contentWidth() int {
	return max(writer.width-writer.prefixWidth, minimumMarkdownWidth)
}

func (writer *markdownWriter) tight() bool {
	return len(writer.lists) > 0 && writer.lists[len(writer.lists)-1].tight
}

// emitLines writes content line by line under the current prefixes,
// the first line taking a pending bullet.
func (writer *markdownWriter) emitLines(content string) {
	for _, line := range strings.Split(content, "\n") {
		prefix := writer.prefix
		if writer.bullet != "" {
			prefix, writer.bullet = writer.bullet, ""
		}
		writer.write(prefix + line)
		writer.newline()
	}
}

func (writer *markdownWriter) style() lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(writer.theme.NormalText)
	if writer.bold > 0 {
		style = style.Bold(true)
	}
	if writer.italic > 0 {
		style = style.Italic(true)
	}
	if writer.struck > 0 {
		style = style.Strikethrough(true)
	}
	return style
}

func (writer *markdownWriter) faint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(writer.theme.FaintText)
}

func (writer *markdownWriter) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			writer.inline.Reset()
			break
		}
		content := writer.inline.String()
		writer.inline.Reset()
		if content == "" {
			break
		}
		writer.emitLines(ansi.Wrap(content, writer.contentWidth(), wrapBreakpoints))
		if !writer.tight() {
			writer.blankLine()
		}

	case *ast.Heading:
		if entering {
			writer.inline.Reset()
			break
		}
		content := ansi.Strip(writer.inline.String())
		writer.inline.Reset()
		style := lipgloss.NewStyle().Bold(true).Foreground(writer.theme.NormalText)
		if node.Level <= 2 {
			style = style.Foreground(writer.theme.HeaderForeground)
		}
		writer.blankLine()
		writer.emitLines(ansi.Wrap(style.Render(content), writer.contentWidth(), wrapBreakpoints))
		writer.blankLine()

	case *ast.FencedCodeBlock:
		if entering {
			writer.code(node.Lines(), string(node.Language(writer.source)))
		}
		return ast.WalkSkipChildren, nil

	case *ast.CodeBlock:
		if entering {
			writer.code(node.Lines(), "")
		}
		return ast.WalkSkipChildren, nil

	case *ast.Blockquote:
		if entering {
			writer.push(writer.faint().Render("│ "), 2)
		} else {
			writer.pop(2)
			writer.blankLine()
		}

	case *ast.List:
		if entering {
			writer.lists = append(writer.lists, listLevel{ordered: node.IsOrdered(), next: node.Start, tight: node.IsTight})
			break
		}
		writer.lists = writer.lists[:len(writer.lists)-1]
		if !writer.tight() {
			writer.blankLine()
		}

	case *ast.ListItem:
		writer.listItem(entering)

	case *ast.ThematicBreak:
		if entering {
			writer.blankLine()
			writer.emitLines(writer.faint().Render(strings.Repeat("─", writer.contentWidth())))
			writer.blankLine()
		}

	case *ast.HTMLBlock:
		return ast.WalkSkipChildren, nil

	case *ast.Text:
		if !entering {
			break
		}
		writer.inline.WriteString(writer.style().Render(string(node.Segment.Value(writer.source))))
		if node.SoftLineBreak() {
			writer.inline.WriteString(" ")
		}
		if node.HardLineBreak() {
			writer.inline.WriteString("\n")
		}

	case *ast.String:
		if entering {
			writer.inline.WriteString(writer.style().Render(string(node.Value)))
		}

	case *ast.Emphasis:
		counter := &writer.italic
		if node.Level >= 2 {
			counter = &writer.bold
		}
		if entering {
			*counter++
		} else {
			*counter--
		}

	case *ast.CodeSpan:
		if entering {
			var content strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if segment, ok := child.(*ast.Text); ok {
					content.Write(segment.Segment.Value(writer.source))
				}
			}
			writer.inline.WriteString(lipgloss.NewStyle().Foreground(writer.theme.AccentColor).Render(content.String()))
		}
		return ast.WalkSkipChildren, nil

	case *ast.Link:
		if !entering {
			break
		}
		label := ansi.Strip(writer.children(node))
		writer.inline.WriteString(lipgloss.NewStyle().Underline(true).Foreground(writer.theme.AccentColor).Render(label))
		if destination := string(node.Destination); destination != "" && destination != label {
			writer.inline.WriteString(writer.faint().Render(" (" + destination + ")"))
		}
		return ast.WalkSkipChildren, nil

	case *ast.AutoLink:
		if entering {
			url := string(node.URL(writer.source))
			writer.inline.WriteString(lipgloss.NewStyle().Underline(true).Foreground(writer.theme.AccentColor).Render(url))
		}
		return ast.WalkSkipChildren, nil

	case *ast.RawHTML:
		return ast.WalkSkipChildren, nil

	case *extast.Strikethrough:
		if entering {
			writer.struck++
		} else {
			writer.struck--
		}

	case *extast.TaskCheckBox:
		if entering {
			mark := "[ ] "
			if node.IsChecked {
				mark = "[x] "
			}
			writer.inline.WriteString(writer.style().Render(mark))
		}
	}
	return ast.WalkContinue, nil
}

// children renders node's inline children without disturbing the open
// inline buffer.
func (writer *markdownWriter) children(node ast.Node) string {
	saved := writer.inline.String()
	writer.inline.Reset()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		ast.Walk(child, writer.walk)
	}
	result := writer.inline.String()
	writer.inline.Reset()
	writer.inline.WriteString(saved)
	return result
}

func (writer *markdownWriter) listItem(entering bool) {
	if len(writer.lists) == 0 {
		return
	}
	level := &writer.lists[len(writer.lists)-1]
	marker := "- "
	if level.ordered {
		marker = fmt.Sprintf("%d. ", level.next)
	}
	if !entering {
		writer.pop(len(marker))
		if level.ordered {
			level.next++
		}
		return
	}
	writer.bullet = writer.prefix + marker
	writer.push(strings.Repeat(" ", len(marker)), len(marker))
}

func (writer *markdownWriter) code(lines *text.Segments, language string) {
	var code strings.Builder
	for position := range lines.Len() {
		segment := lines.At(position)
		code.Write(segment.Value(writer.source))
	}
	body := strings.TrimRight(code.String(), "\n")

	rendered := ""
	if language != "" {
		var highlighted strings.Builder
		if err := quick.Highlight(&highlighted, body, language, "terminal256", "monokai"); err == nil {
			rendered = highlighted.String()
		}
	}
	if rendered == "" {
		lines := strings.Split(body, "\n")
		for position, line := range lines {
			lines[position] = writer.faint().Render(line)
		}
		rendered = strings.Join(lines, "\n")
	}

	writer.blankLine()
	writer.emitLines(strings.TrimRight(rendered, "\n"))
	writer.blankLine()
}
