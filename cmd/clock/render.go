package main

import (
	"fmt"
	"pokerclock/internal/game"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const barWidth = 40

var titleCase = cases.Title(language.English)

func render(snap game.Snapshot, status string) string {
	var b strings.Builder

	b.WriteString(pterm.DefaultHeader.WithFullWidth().Sprint(titleCase.String(snap.Title)))
	b.WriteString("\n")

	if active, ok := snap.ActiveBlind(); ok {
		b.WriteString(renderActive(snap, active))
	}
	b.WriteString(renderLevels(snap))
	b.WriteString("\n")
	b.WriteString(status)
	b.WriteString("\n")
	return b.String()
}

func renderActive(snap game.Snapshot, active game.BlindSnapshot) string {
	remaining := formatRemaining(active.Timer)
	big, err := pterm.DefaultBigText.WithLetters(putils.LettersFromString(remaining)).Srender()
	if err != nil {
		big = remaining + "\n"
	}

	state := pterm.LightYellow("PAUSED")
	if snap.Running {
		state = pterm.LightGreen("RUNNING")
	}

	body := fmt.Sprintf("%s\nLevel %d of %d   %s\nBlinds %s\n%s %5.1f%%",
		big,
		active.Level, len(snap.Blinds), state,
		pterm.Bold.Sprintf("%d / %d", active.SmallBlind, active.BigBlind),
		progressBar(active.Timer.PercentageComplete), active.Timer.PercentageComplete)

	return pterm.DefaultBox.WithTitle(fmt.Sprintf("Level %d", active.Level)).Sprint(body) + "\n"
}

func renderLevels(snap game.Snapshot) string {
	data := pterm.TableData{{"", "Level", "Small", "Big", "Time"}}
	for _, b := range snap.Blinds {
		marker := ""
		if b.Active {
			marker = ">"
		}
		data = append(data, []string{
			marker,
			fmt.Sprint(b.Level),
			fmt.Sprint(b.SmallBlind),
			fmt.Sprint(b.BigBlind),
			formatRemaining(b.Timer),
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err.Error()
	}
	return out
}

// formatRemaining renders m:ss, or h:mm:ss for long levels.
func formatRemaining(t game.TimerSnapshot) string {
	if t.Hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
	}
	return fmt.Sprintf("%02d:%02d", t.Minutes, t.Seconds)
}

func progressBar(percent float64) string {
	filled := int(percent / 100 * barWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled) + "]"
}
