package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dblite/table"
)

func TestPrepareStatement(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  PrepareResult
	}{
		{"valid insert", "insert 1 user1 person1@example.com", PrepareSuccess},
		{"select", "select", PrepareSuccess},
		{"unknown keyword", "update 1 a b", PrepareUnrecognizedStatement},
		{"select with args is unrecognized", "select *", PrepareUnrecognizedStatement},
		{"missing arguments", "insert 1 user1", PrepareSyntaxError},
		{"bare insert", "insert", PrepareSyntaxError},
		{"non-numeric id", "insert abc user1 a@x", PrepareSyntaxError},
		{"id beyond uint32", "insert 4294967296 user1 a@x", PrepareSyntaxError},
		{"negative id", "insert -1 user1 a@x", PrepareNegativeID},
		{"zero id", "insert 0 user1 a@x", PrepareNegativeID},
		{"username too long", "insert 1 " + strings.Repeat("a", table.UsernameSize+1) + " a@x", PrepareStringTooLong},
		{"email too long", "insert 1 user1 " + strings.Repeat("a", table.EmailSize+1), PrepareStringTooLong},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, got := prepareStatement(tc.input)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPrepareInsertBuildsRow(t *testing.T) {
	stmt, result := prepareStatement("insert 7 amy amy@x.io")
	require.Equal(t, PrepareSuccess, result)
	require.Equal(t, StatementInsert, stmt.Type)
	require.Equal(t, table.Row{ID: 7, Username: "amy", Email: "amy@x.io"}, stmt.RowToInsert)
}

func TestPrepareInsertMaxWidthStrings(t *testing.T) {
	username := strings.Repeat("u", table.UsernameSize)
	email := strings.Repeat("e", table.EmailSize)
	stmt, result := prepareStatement("insert 1 " + username + " " + email)
	require.Equal(t, PrepareSuccess, result)
	require.Equal(t, username, stmt.RowToInsert.Username)
	require.Equal(t, email, stmt.RowToInsert.Email)
}

func TestPrepareInsertIgnoresExtraTokens(t *testing.T) {
	stmt, result := prepareStatement("insert 1 a a@x trailing junk")
	require.Equal(t, PrepareSuccess, result)
	require.Equal(t, uint32(1), stmt.RowToInsert.ID)
}
