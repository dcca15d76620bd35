package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	log "github.com/sirupsen/logrus"

	"dblite/pager"
	"dblite/table"
)

func main() {
	log.SetOutput(os.Stderr)

	if len(os.Args) < 2 {
		fmt.Println("Must supply a database filename.")
		os.Exit(1)
	}

	t, err := table.Open(os.Args[1])
	if err != nil {
		if errors.Is(err, pager.ErrCorruptFile) {
			log.Fatal("Db file is not a whole number of pages. Corrupt file.")
		}
		log.Fatalf("Error opening database: %v", err)
	}

	rl, err := newInputReader()
	if err != nil {
		log.Fatalf("Error initializing input: %v", err)
	}
	defer rl.Close()

	for {
		input, err := readInput(rl)
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				exitREPL(t)
			}
			log.Fatalf("Error reading input: %v", err)
		}
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, ".") {
			if doMetaCommand(input, t) == MetaCommandUnrecognized {
				fmt.Printf("Unrecognized command %q\n", input)
			}
			continue
		}

		stmt, result := prepareStatement(input)
		switch result {
		case PrepareSuccess:
		case PrepareNegativeID:
			fmt.Println("ID must be positive.")
			continue
		case PrepareStringTooLong:
			fmt.Println("String is too long.")
			continue
		case PrepareSyntaxError:
			fmt.Println("Syntax error. Could not parse statement.")
			continue
		case PrepareUnrecognizedStatement:
			fmt.Printf("Unrecognized keyword at start of '%s'.\n", input)
			continue
		}

		executeStatement(stmt, t)
	}
}

func executeStatement(stmt *Statement, t *table.Table) {
	var err error
	switch stmt.Type {
	case StatementInsert:
		err = t.ExecuteInsert(stmt.RowToInsert)
	case StatementSelect:
		err = t.ExecuteSelect(os.Stdout)
	}

	switch {
	case err == nil:
		fmt.Println("Executed.")
	case errors.Is(err, table.ErrDuplicateKey):
		fmt.Println("Error: Duplicate key.")
	case errors.Is(err, pager.ErrTableFull):
		fmt.Println("Error: Table full.")
	default:
		log.Fatalf("Error executing statement: %v", err)
	}
}

// exitREPL flushes every cached page and leaves with status 0.
func exitREPL(t *table.Table) {
	if err := t.Close(); err != nil {
		log.Fatalf("Error closing database: %v", err)
	}
	os.Exit(0)
}
