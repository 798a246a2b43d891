package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckydraw/draw-backend/internal/models"
)

func TestParseRosterCSV(t *testing.T) {
	data := []byte("id,name,department\nP001,Alice,Engineering\nP002,Bob,Finance\n")

	people, err := ParseRosterCSV(data)
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "P001", people[0].PersonID)
	assert.Equal(t, "Alice", people[0].Name)
	assert.Equal(t, "Finance", people[1].Department)
}

func TestParseRosterCSVAlternateHeaders(t *testing.T) {
	// Header matching is case-insensitive and accepts a few spellings, in
	// any column order.
	data := []byte("Full Name,Team,Employee ID\nAlice,Engineering,P001\n")

	people, err := ParseRosterCSV(data)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "P001", people[0].PersonID)
	assert.Equal(t, "Alice", people[0].Name)
	assert.Equal(t, "Engineering", people[0].Department)
}

func TestParseRosterCSVMissingColumn(t *testing.T) {
	data := []byte("id,name\nP001,Alice\n")

	_, err := ParseRosterCSV(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "department")
}

func TestParseRosterCSVDuplicateID(t *testing.T) {
	data := []byte("id,name,department\nP001,Alice,Engineering\nP001,Bob,Finance\n")

	_, err := ParseRosterCSV(data)
	require.Error(t, err)
}

func TestWinnersCSV(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	winners := []models.WinnerRecord{
		{
			Timestamp:  ts,
			PrizeID:    "gold",
			PrizeName:  "Gold Prize",
			PersonID:   "P001",
			PersonName: "Alice",
			Department: "Engineering",
			Source:     models.SourceMustWin,
		},
	}

	data, err := WinnersCSV(winners)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "timestamp,prize_id,prize_name,person_id,person_name,department,source", lines[0])
	assert.Equal(t, "2025-06-01T12:30:00Z,gold,Gold Prize,P001,Alice,Engineering,must_win", lines[1])
}

func TestWinnersCSVEmptyHistory(t *testing.T) {
	data, err := WinnersCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "timestamp,prize_id,prize_name,person_id,person_name,department,source\n", string(data))
}
