package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"dblite/table"
)

type MetaCommandResult int

const (
	MetaCommandSuccess MetaCommandResult = iota
	MetaCommandUnrecognized
)

// doMetaCommand dispatches inputs beginning with '.'.
func doMetaCommand(input string, t *table.Table) MetaCommandResult {
	switch input {
	case ".exit":
		exitREPL(t)
		return MetaCommandSuccess
	case ".btree":
		if err := t.PrintTree(os.Stdout); err != nil {
			log.Fatalf("Error printing tree: %v", err)
		}
		return MetaCommandSuccess
	case ".constants":
		printConstants()
		return MetaCommandSuccess
	}
	return MetaCommandUnrecognized
}

func printConstants() {
	fmt.Println("Constants:")
	fmt.Printf("ROW_SIZE: %d\n", table.RowSize)
	fmt.Printf("COMMON_NODE_HEADER_SIZE: %d\n", table.CommonNodeHeaderSize)
	fmt.Printf("LEAF_NODE_HEADER_SIZE: %d\n", table.LeafNodeHeaderSize)
	fmt.Printf("LEAF_NODE_CELL_SIZE: %d\n", table.LeafNodeCellSize)
	fmt.Printf("LEAF_NODE_SPACE_FOR_CELLS: %d\n", table.LeafNodeSpaceForCells)
	fmt.Printf("LEAF_NODE_MAX_CELLS: %d\n", table.LeafNodeMaxCells)
}
