package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const boardColumnWidth = 28

// BoardView holds everything needed to draw a project board.
type BoardView struct {
	Project *domain.Project
	Columns []*domain.Column
	Cards   map[string]*domain.Card // by card ID
	Tags    map[string]*domain.Tag  // by tag ID
	Users   map[string]*domain.User // by user ID
	Now     time.Time
}

// FormatProjectList renders projects inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "CREATED"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{TruncID(p.ID), Bold(p.Name), Dim(MillisDate(p.CreatedAt))})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatUserList renders users with their roles and credential state.
func FormatUserList(users []*domain.User) string {
	headers := []string{"ID", "NAME", "ROLE", "LOGIN"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		login := StyleGreen.Render("ready")
		if !u.HasCredential() {
			login = StyleYellow.Render("no credential")
		}
		rows = append(rows, []string{TruncID(u.ID), Bold(u.Name), RoleBadge(u.IsAdmin, u.IsMasterAdmin), login})
	}
	return RenderBox("Users", RenderTable(headers, rows))
}

// FormatBoard draws each column side by side with its cards in board order.
func FormatBoard(v BoardView) string {
	now := v.Now
	if now.IsZero() {
		now = time.Now()
	}

	columnStyle := lipgloss.NewStyle().
		Width(boardColumnWidth).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(ColorDim).
		PaddingRight(1)

	panels := make([]string, 0, len(v.Columns))
	total := 0
	for _, col := range v.Columns {
		var b strings.Builder
		b.WriteString(StyleHeader.Render(col.Name))
		b.WriteString(" " + Dim("("+Plural(len(col.CardIDs), "card")+")") + "\n\n")

		placed := 0
		for _, id := range col.CardIDs {
			card, ok := v.Cards[id]
			if !ok {
				continue
			}
			b.WriteString(renderCard(card, v, now))
			b.WriteString("\n")
			placed++
		}
		if placed == 0 {
			b.WriteString(Dim("(empty)"))
		}
		total += placed
		panels = append(panels, columnStyle.Render(b.String()))
	}

	title := v.Project.Name
	summary := TruncID(v.Project.ID) + "  " + Dim(Plural(len(v.Columns), "column")+" · "+Plural(total, "card"))
	if len(panels) == 0 {
		return RenderBox(title, summary+"\n\n"+Dim("No columns yet."))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	return RenderBox(title, summary+"\n\n"+board)
}

func renderCard(card *domain.Card, v BoardView, now time.Time) string {
	lines := []string{Bold("▪ " + card.Title)}

	var meta []string
	if card.AssigneeID != nil {
		if u, ok := v.Users[*card.AssigneeID]; ok {
			meta = append(meta, StyleBlue.Render("@"+u.Name))
		}
	}
	if due := DueLabel(card.DueDate, now); due != "" {
		meta = append(meta, due)
	}
	if len(meta) > 0 {
		lines = append(lines, "  "+strings.Join(meta, " "))
	}

	var chips []string
	for _, id := range card.TagIDs {
		if t, ok := v.Tags[id]; ok {
			chips = append(chips, TagChip(t.Name, t.Color))
		}
	}
	if len(chips) > 0 {
		lines = append(lines, "  "+strings.Join(chips, " "))
	}
	return strings.Join(lines, "\n")
}
