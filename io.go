package main

import (
	"strings"

	"github.com/chzyer/readline"
)

// newInputReader builds the line reader behind the REPL prompt.
func newInputReader() (*readline.Instance, error) {
	return readline.New("db > ")
}

func readInput(rl *readline.Instance) (string, error) {
	line, err := rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
