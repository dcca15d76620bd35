package main

import (
	"math"
	"strconv"
	"strings"

	"dblite/table"
)

type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

type PrepareResult int

const (
	PrepareSuccess PrepareResult = iota
	PrepareNegativeID
	PrepareStringTooLong
	PrepareSyntaxError
	PrepareUnrecognizedStatement
)

type Statement struct {
	Type        StatementType
	RowToInsert table.Row
}

// prepareStatement lexes the input into either a validated statement or a
// typed prepare error.
func prepareStatement(input string) (*Statement, PrepareResult) {
	if strings.HasPrefix(input, "insert") {
		return prepareInsert(input)
	}
	if input == "select" {
		return &Statement{Type: StatementSelect}, PrepareSuccess
	}
	return nil, PrepareUnrecognizedStatement
}

// prepareInsert parses `insert <id> <username> <email>`. Tokens past the
// third argument are ignored.
func prepareInsert(input string) (*Statement, PrepareResult) {
	fields := strings.Fields(input)
	if len(fields) < 4 {
		return nil, PrepareSyntaxError
	}
	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || id > math.MaxUint32 {
		return nil, PrepareSyntaxError
	}
	if id <= 0 {
		return nil, PrepareNegativeID
	}
	username, email := fields[2], fields[3]
	if len(username) > table.UsernameSize || len(email) > table.EmailSize {
		return nil, PrepareStringTooLong
	}
	return &Statement{
		Type: StatementInsert,
		RowToInsert: table.Row{
			ID:       uint32(id),
			Username: username,
			Email:    email,
		},
	}, PrepareSuccess
}
