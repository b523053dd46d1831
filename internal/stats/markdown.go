package stats

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders the summary as a Markdown report.
func RenderMarkdown(s *Summary, generatedAt time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Stockle Stats\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", generatedAt.Format(time.RFC3339)))

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Played | %d |\n", s.Played))
	sb.WriteString(fmt.Sprintf("| Wins | %d |\n", s.Wins))
	sb.WriteString(fmt.Sprintf("| Win Rate | %.1f%% |\n", s.WinRate*100))
	sb.WriteString(fmt.Sprintf("| Current Streak | %d |\n", s.CurrentStreak))
	sb.WriteString(fmt.Sprintf("| Max Streak | %d |\n", s.MaxStreak))
	sb.WriteString("\n")

	sb.WriteString("## Guess Distribution\n\n")
	if s.Wins > 0 {
		sb.WriteString("| Guesses | Wins |\n")
		sb.WriteString("|---------|------|\n")
		for i, n := range s.Distribution {
			sb.WriteString(fmt.Sprintf("| %d | %d |\n", i+1, n))
		}
	} else {
		sb.WriteString("No solved sessions yet.\n")
	}

	return sb.String()
}
