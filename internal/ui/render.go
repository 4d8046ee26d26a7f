package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/getlawrence/langreg/internal/detector"
	"github.com/getlawrence/langreg/internal/host"
	"github.com/getlawrence/langreg/internal/languages"
)

// Styles groups the lipgloss styles used by the text renderers. Plain styles
// render without escape codes so output stays stable when piped.
type Styles struct {
	Title lipgloss.Style
	Name  lipgloss.Style
	Muted lipgloss.Style
	Warn  lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when color is false.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{Title: plain, Name: plain, Muted: plain, Warn: plain}
	}
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Name:  lipgloss.NewStyle().Bold(true),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

func heading(b *strings.Builder, st Styles, title string) {
	b.WriteString(st.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", lipgloss.Width(title)))
	b.WriteString("\n\n")
}

// RenderLanguages lists registered languages in registration order.
// overlaps may be nil.
func RenderLanguages(st Styles, langs []languages.Support, overlaps map[string][]string) string {
	var b strings.Builder
	heading(&b, st, fmt.Sprintf("Registered Languages (%d)", len(langs)))

	if len(langs) == 0 {
		b.WriteString(st.Muted.Render("No languages registered."))
		b.WriteString("\n")
		return b.String()
	}

	width := 0
	for _, l := range langs {
		if w := lipgloss.Width(l.Name); w > width {
			width = w
		}
	}

	for i, l := range langs {
		exts := "(none)"
		if len(l.Extensions) > 0 {
			exts = strings.Join(l.Extensions, ", ")
		}
		name := st.Name.Render(padRight(l.Name, width))
		fmt.Fprintf(&b, "%2d. %s  %s\n", i+1, name, exts)

		var traits []string
		if l.UseGenericLexer {
			traits = append(traits, "generic lexer")
		} else if l.Grammar != "" {
			traits = append(traits, "grammar: "+l.Grammar)
		} else {
			traits = append(traits, "dedicated lexer")
		}
		if l.HasInit() {
			traits = append(traits, "init hook")
		}
		fmt.Fprintf(&b, "    %s\n", st.Muted.Render(strings.Join(traits, ", ")))
	}

	if len(overlaps) > 0 {
		b.WriteString("\n")
		b.WriteString(st.Warn.Render("Shared extensions (first language wins):"))
		b.WriteString("\n")
		exts := make([]string, 0, len(overlaps))
		for ext := range overlaps {
			exts = append(exts, ext)
		}
		sort.Strings(exts)
		for _, ext := range exts {
			names := overlaps[ext]
			fmt.Fprintf(&b, "  .%s  %s (shadows %s)\n", ext, names[0], strings.Join(names[1:], ", "))
		}
	}
	return b.String()
}

// RenderResolutions prints one line per resolved file and lists misses.
func RenderResolutions(st Styles, found []detector.Resolution, missed []string) string {
	var b strings.Builder
	for _, r := range found {
		fmt.Fprintf(&b, "%s  %s %s\n", r.Path, st.Name.Render(r.Language.Name), st.Muted.Render("("+string(r.Method)+")"))
	}
	for _, p := range missed {
		fmt.Fprintf(&b, "%s  %s\n", p, st.Warn.Render("no registered language"))
	}
	return b.String()
}

// RenderBuffer describes a realized buffer.
func RenderBuffer(st Styles, buf *host.Buffer) string {
	var b strings.Builder
	heading(&b, st, buf.Path)
	fmt.Fprintf(&b, "Language:    %s\n", st.Name.Render(buf.Language.Name))
	fmt.Fprintf(&b, "Matched by:  %s\n", buf.Method)
	fmt.Fprintf(&b, "Lexer:       %s\n", buf.Lexer)
	if buf.Initialized {
		b.WriteString("Init hook:   ran\n")
	} else if buf.Language.HasInit() {
		b.WriteString("Init hook:   already ran this session\n")
	} else {
		b.WriteString("Init hook:   none\n")
	}
	if g := buf.Grammar; g != nil {
		fmt.Fprintf(&b, "Syntax tree: %s, %d nodes\n", g.RootType, g.Nodes)
		if g.HasErrors {
			b.WriteString(st.Warn.Render(fmt.Sprintf("Syntax errors starting at line %d", g.FirstError)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderScan summarizes a directory scan.
func RenderScan(st Styles, r *detector.ScanResult) string {
	var b strings.Builder
	heading(&b, st, "Language Scan Results")

	matched := 0
	for _, n := range r.ByLanguage {
		matched += n
	}
	fmt.Fprintf(&b, "Project Path:  %s\n", r.Root)
	fmt.Fprintf(&b, "Files Scanned: %d\n", r.Files)
	fmt.Fprintf(&b, "Matched:       %d\n\n", matched)

	for _, name := range r.Languages() {
		fmt.Fprintf(&b, "  %s  %d\n", st.Name.Render(padRight(name, 16)), r.ByLanguage[name])
	}

	if len(r.ByDirectory) > 1 {
		b.WriteString("\nDirectories:\n")
		primary := r.PrimaryLanguages()
		dirs := make([]string, 0, len(primary))
		for dir := range primary {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
		for _, dir := range dirs {
			fmt.Fprintf(&b, "  %s (%s)\n", dir, primary[dir])
		}
	}

	if len(r.Unmatched) > 0 {
		b.WriteString("\n")
		b.WriteString(st.Muted.Render("Unmatched extensions:"))
		b.WriteString("\n")
		exts := make([]string, 0, len(r.Unmatched))
		for ext := range r.Unmatched {
			exts = append(exts, ext)
		}
		sort.Strings(exts)
		for _, ext := range exts {
			label := "." + ext
			if ext == "" {
				label = "(none)"
			}
			fmt.Fprintf(&b, "  %s  %d\n", label, r.Unmatched[ext])
		}
	}
	return b.String()
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
