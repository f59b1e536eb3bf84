package main

import (
	"fmt"
	"pokerclock/internal/model"
	"strconv"
	"strings"
)

// parseCommand turns a line typed at the terminal into a clock command.
func parseCommand(line string) (cmd model.Command, quit bool, err error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return cmd, false, fmt.Errorf("empty command")
	}

	switch fields[0] {
	case "q", "quit", "exit":
		return cmd, true, nil
	case "s", "start":
		cmd.Action = model.ActionStart
	case "p", "pause":
		cmd.Action = model.ActionPause
	case "r", "reset":
		cmd.Action = model.ActionReset
	case "n", "next":
		cmd.Action = model.ActionNext
	case "e", "end":
		cmd.Action = model.ActionEnd
	case "a", "activate":
		if len(fields) != 2 {
			return cmd, false, fmt.Errorf("usage: a <level>")
		}
		cmd.Action = model.ActionActivate
		cmd.Level, err = parseLevel(fields[1])
	default:
		cmd.Action = model.ActionJump
		cmd.Level, err = parseLevel(fields[0])
		if err != nil {
			return cmd, false, fmt.Errorf("unknown command %q", line)
		}
	}
	return cmd, false, err
}

func parseLevel(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid level %q", s)
	}
	return n, nil
}
