package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/kanri/internal/snapshot"
)

// ImportReport describes the import a result belongs to.
type ImportReport struct {
	ProjectName   string
	Mode          snapshot.Mode
	DocumentCards int
}

// FormatImportResult renders the outcome of an import: entity counts, the
// share of document cards that were placed, and every error and warning.
func FormatImportResult(res *snapshot.ImportResult, r ImportReport) string {
	var b strings.Builder

	if res.Success {
		b.WriteString(StyleGreen.Render("✔ Import completed"))
	} else {
		b.WriteString(StyleRed.Render("✖ Import finished with errors"))
	}
	b.WriteString(Dim(fmt.Sprintf("  (%s mode)", r.Mode)) + "\n\n")

	c := res.Counts
	b.WriteString(RenderTable(
		[]string{"USERS", "COLUMNS", "CARDS", "TAGS", "COMMENTS", "PRESETS"},
		[][]string{{
			fmt.Sprint(c.Users), fmt.Sprint(c.Columns), fmt.Sprint(c.Cards),
			fmt.Sprint(c.Tags), fmt.Sprint(c.Comments), fmt.Sprint(c.Presets),
		}},
	))

	if r.DocumentCards > 0 {
		pct := float64(c.Cards) / float64(r.DocumentCards)
		b.WriteString("\n" + Dim("cards placed ") + RenderProgress(pct, 20) +
			Dim(fmt.Sprintf("  %d of %d", c.Cards, r.DocumentCards)) + "\n")
	}

	if res.UnassignedCardCount > 0 {
		b.WriteString("\n" + Header("Not placed") + "\n")
		for _, title := range res.UnassignedCardTitles {
			b.WriteString(StyleYellow.Render("  ○ ") + title + "\n")
		}
	}
	writeMessages(&b, "Errors", res.Errors, StyleRed.Render("  ✖ "))
	writeMessages(&b, "Warnings", res.Warnings, StyleYellow.Render("  ! "))

	return RenderBox("Import into "+r.ProjectName, strings.TrimRight(b.String(), "\n"))
}

func writeMessages(b *strings.Builder, title string, msgs []string, bullet string) {
	if len(msgs) == 0 {
		return
	}
	b.WriteString("\n" + Header(fmt.Sprintf("%s (%d)", title, len(msgs))) + "\n")
	for _, m := range msgs {
		b.WriteString(bullet + m + "\n")
	}
}
