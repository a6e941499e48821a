// Package chart renders top-word lists as horizontal text bar charts.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dtnitsch/wordhist/models"
	"github.com/dustin/go-humanize"
)

const (
	DefaultWidth = 72
	minBarWidth  = 10
	barRune      = "█"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
)

// Bars draws one bar per word scaled to the largest count. width is the
// total line width; values below what the labels need still get a short bar.
func Bars(title string, words []models.WordCount, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n")
	}
	if len(words) == 0 {
		b.WriteString(labelStyle.Render("(no words)"))
		return b.String()
	}

	labelWidth, countWidth := 0, 0
	var maxCount uint64
	counts := make([]string, len(words))
	for i, wc := range words {
		labelWidth = max(labelWidth, lipgloss.Width(wc.Word))
		counts[i] = humanize.Comma(int64(wc.Count))
		countWidth = max(countWidth, len(counts[i]))
		maxCount = max(maxCount, wc.Count)
	}
	barWidth := max(minBarWidth, width-labelWidth-countWidth-2)

	for i, wc := range words {
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(wc.Word))
		n := BarLength(wc.Count, maxCount, barWidth)
		fmt.Fprintf(&b, "%s%s %s%s %s\n",
			labelStyle.Render(wc.Word), pad,
			barStyle.Render(strings.Repeat(barRune, n)), strings.Repeat(" ", barWidth-n),
			countStyle.Render(counts[i]))
	}
	return strings.TrimRight(b.String(), "\n")
}

// BarLength scales count against maxCount onto [0, width]. Any non-zero
// count gets at least one cell.
func BarLength(count, maxCount uint64, width int) int {
	if count == 0 || maxCount == 0 || width <= 0 {
		return 0
	}
	n := int(math.Round(float64(count) / float64(maxCount) * float64(width)))
	return min(width, max(1, n))
}

// Title summarizes a run for the chart header.
func Title(mode string, files int, tokens uint64) string {
	return fmt.Sprintf("Top words (%s, %s files, %s tokens)",
		mode, humanize.Comma(int64(files)), humanize.Comma(int64(tokens)))
}
