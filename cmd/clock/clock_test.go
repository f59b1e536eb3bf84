package main

import (
	"pokerclock/internal/game"
	"pokerclock/internal/model"
	"strings"
	"testing"

	"github.com/pterm/pterm"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    model.Command
		quit    bool
		wantErr bool
	}{
		{line: "s", want: model.Command{Action: model.ActionStart}},
		{line: "Pause", want: model.Command{Action: model.ActionPause}},
		{line: "r", want: model.Command{Action: model.ActionReset}},
		{line: "n", want: model.Command{Action: model.ActionNext}},
		{line: "e", want: model.Command{Action: model.ActionEnd}},
		{line: "3", want: model.Command{Action: model.ActionJump, Level: 3}},
		{line: "a 2", want: model.Command{Action: model.ActionActivate, Level: 2}},
		{line: "q", quit: true},
		{line: "a", wantErr: true},
		{line: "a zero", wantErr: true},
		{line: "0", wantErr: true},
		{line: "deal", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, quit, err := parseCommand(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if quit != tt.quit {
				t.Errorf("expected quit %v", tt.quit)
			}
			if !tt.wantErr && !tt.quit && cmd != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, cmd)
			}
		})
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		timer game.TimerSnapshot
		want  string
	}{
		{game.TimerSnapshot{Minutes: 5, Seconds: 7}, "05:07"},
		{game.TimerSnapshot{Hours: 1, Minutes: 2, Seconds: 3}, "1:02:03"},
		{game.TimerSnapshot{}, "00:00"},
	}
	for _, tt := range tests {
		if got := formatRemaining(tt.timer); got != tt.want {
			t.Errorf("expected %s, got %s", tt.want, got)
		}
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(50); strings.Count(got, "=") != barWidth/2 {
		t.Errorf("expected half bar, got %s", got)
	}
	if got := progressBar(150); strings.Count(got, "=") != barWidth {
		t.Errorf("expected bar clamped to full, got %s", got)
	}
}

func TestRender(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	snap := game.Snapshot{
		Title:            "friday night",
		ActiveBlindIndex: 1,
		Running:          true,
		Blinds: []game.BlindSnapshot{
			{Level: 1, SmallBlind: 25, BigBlind: 50, Timer: game.TimerSnapshot{Minutes: 20}},
			{Level: 2, SmallBlind: 50, BigBlind: 100, Active: true, Timer: game.TimerSnapshot{Minutes: 12, Seconds: 30, PercentageComplete: 37.5}},
		},
	}

	out := render(snap, "ready")
	for _, want := range []string{"Friday Night", "Level 2 of 2", "RUNNING", "50 / 100", "12:30", "ready"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestPick(t *testing.T) {
	list := []model.BlindStructure{{Title: "Turbo"}, {Title: "Deep"}}

	st, err := pick(list, "")
	if err != nil || st.Title != "Turbo" {
		t.Errorf("expected first structure, got %v, %v", st, err)
	}
	st, err = pick(list, "deep")
	if err != nil || st.Title != "Deep" {
		t.Errorf("expected Deep, got %v, %v", st, err)
	}
	if _, err := pick(list, "missing"); err == nil {
		t.Error("expected error for unknown structure")
	}
	if _, err := pick(nil, ""); err == nil {
		t.Error("expected error for empty list")
	}
}
