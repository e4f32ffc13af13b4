package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/panicfeed/internal/cache"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	sentimentStyles = map[string]lipgloss.Style{
		"very_bullish": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
		"bullish":      lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		"neutral":      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		"bearish":      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		"very_bearish": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
)

// Summary renders the outcome of a run.
func Summary(collected []cache.Article, total int, persisted bool) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("panicfeed: %d new, %d cached", len(collected), total)))
	b.WriteString("\n")
	if !persisted && len(collected) > 0 {
		b.WriteString(warnStyle.Render("warning: new articles were not persisted; previous snapshot left intact"))
		b.WriteString("\n")
	}
	for _, a := range collected {
		b.WriteString(renderLine(a))
	}
	return b.String()
}

// Articles renders a snapshot's entries, newest keys last by capture
// string ordering, capped at n.
func Articles(snap cache.Snapshot, n int) string {
	articles := make([]cache.Article, 0, len(snap))
	for _, a := range snap {
		articles = append(articles, a)
	}
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].CapturedAt > articles[j].CapturedAt
	})
	if n > 0 && len(articles) > n {
		articles = articles[:n]
	}

	var b strings.Builder
	for _, a := range articles {
		b.WriteString(renderLine(a))
	}
	return b.String()
}

func renderLine(a cache.Article) string {
	style, ok := sentimentStyles[a.Sentiment]
	if !ok {
		style = dimStyle
	}
	title := a.Title
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("  %s %s %s",
		style.Render(fmt.Sprintf("%-12s", a.Sentiment)),
		titleStyle.Render(title),
		dimStyle.Render(meta(a)))
	return line + "\n"
}

func meta(a cache.Article) string {
	parts := []string{fmt.Sprintf("%d%%", a.Confidence)}
	if a.Source != "" {
		parts = append(parts, a.Source)
	}
	if len(a.Currencies) > 0 {
		parts = append(parts, strings.Join(a.Currencies, ","))
	}
	return "[" + strings.Join(parts, " · ") + "]"
}
