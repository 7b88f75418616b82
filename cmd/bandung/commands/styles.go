package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bandungjournal/bandung-client/articles"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3")).Padding(0, 1)
)

func renderField(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func renderArticleRow(a articles.Article) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(a.Title))
	b.WriteString("\n  ")
	b.WriteString(dimStyle.Render(a.Slug))
	if a.Category.Name != "" {
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(a.Category.Name))
	}
	if a.PublishedAt != nil {
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(a.PublishedAt.Format("2 Jan 2006")))
	}
	return b.String()
}

func renderTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.RFC822)
}

func renderPagination(meta articles.Meta) string {
	return dimStyle.Render(fmt.Sprintf("page %d of %d (%d articles)", meta.Page, meta.TotalPages, meta.Total))
}
