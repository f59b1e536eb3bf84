// Command clock runs a blind clock in the terminal.
//
//	s start   p pause   r reset   n next level   e end
//	<n> jump to level n (resets it and the levels after it)
//	a <n> activate level n   q quit
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"pokerclock/internal/clock"
	"pokerclock/internal/config"
	"pokerclock/internal/game"
	"pokerclock/internal/model"
	"pokerclock/internal/service"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

func main() {
	path := flag.String("f", "structures/default.yaml", "YAML file with blind structures")
	name := flag.String("structure", "", "title of the structure to play (default: the first one)")
	tick := flag.Duration("tick", game.DefaultTickInterval, "countdown resolution")
	refresh := flag.Duration("refresh", 100*time.Millisecond, "screen refresh interval")
	flag.Parse()

	// Create a new slog logger with the default PTerm logger
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	structures, err := config.LoadStructures(*path)
	if err != nil {
		logger.Error("failed to load structures", "path", *path, "error", err)
		os.Exit(1)
	}
	st, err := pick(structures, *name)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	loop := clock.NewLoop()
	g, err := game.New(loop, st.Title, st.GameLevels(), game.WithTickInterval(*tick))
	if err != nil {
		logger.Error("invalid structure", "title", st.Title, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded structure", "title", st.Title, "levels", len(st.Levels))

	updates := make(chan game.Snapshot, 1)
	var snap game.Snapshot
	loop.Do(func() {
		snap = g.Snapshot()
		g.Subscribe(func(s game.Snapshot) { offer(updates, s) })
	})

	area, err := pterm.DefaultArea.Start()
	if err != nil {
		logger.Error("failed to start terminal area", "error", err)
		os.Exit(1)
	}
	defer area.Stop()

	lines := make(chan string)
	go readLines(os.Stdin, lines)

	ticker := time.NewTicker(*refresh)
	defer ticker.Stop()

	status := "s start · p pause · n next · <n> jump · q quit"
	area.Update(render(snap, status))
	dirty := false

	for {
		select {
		case s := <-updates:
			snap = s
			dirty = true

		case <-ticker.C:
			if dirty {
				area.Update(render(snap, status))
				dirty = false
			}

		case line, ok := <-lines:
			if !ok {
				return
			}
			cmd, quit, err := parseCommand(line)
			if quit {
				loop.Do(g.PauseGame)
				return
			}
			if err == nil {
				loop.Do(func() {
					err = service.ApplyCommand(g, cmd)
				})
			}
			if err != nil {
				status = pterm.LightRed(err.Error())
			} else {
				status = fmt.Sprintf("ok: %s", line)
			}
			dirty = true
		}
	}
}

func pick(structures []model.BlindStructure, title string) (*model.BlindStructure, error) {
	if len(structures) == 0 {
		return nil, fmt.Errorf("no structures defined")
	}
	if title == "" {
		return &structures[0], nil
	}
	for i := range structures {
		if strings.EqualFold(structures[i].Title, title) {
			return &structures[i], nil
		}
	}
	return nil, fmt.Errorf("structure %q not found", title)
}

// offer replaces a snapshot the UI has not picked up yet.
func offer(ch chan game.Snapshot, s game.Snapshot) {
	for {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func readLines(r io.Reader, out chan<- string) {
	defer close(out)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			out <- line
		}
	}
}
