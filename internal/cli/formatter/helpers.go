package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// MillisDate formats a unix-millisecond timestamp as a calendar date in UTC.
func MillisDate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("Jan 2, 2006")
}

// DueLabel renders a card due date relative to now, colored by urgency.
func DueLabel(dueMs *int64, now time.Time) string {
	if dueMs == nil {
		return ""
	}
	due := time.UnixMilli(*dueMs).UTC()
	days := int(due.Sub(now).Hours() / 24)
	text := "due " + due.Format("Jan 2")

	switch {
	case due.Before(now):
		return StyleRed.Render(text)
	case days <= 2:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// TruncID returns the short form of an ID, dimmed.
func TruncID(id string) string {
	return StyleDim.Render(domain.ShortID(id))
}

// Plural returns "1 card" or "3 cards".
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
