package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/luckydraw/draw-backend/internal/models"
)

// winnerCSVHeader is the column order of exported results, kept stable so
// downstream spreadsheets survive re-exports.
var winnerCSVHeader = []string{
	"timestamp",
	"prize_id",
	"prize_name",
	"person_id",
	"person_name",
	"department",
	"source",
}

// ParseRosterCSV reads a participant roster from CSV bytes. The first row is
// a header; column names are matched case-insensitively against a few common
// spellings. Validation (duplicates, blank fields) happens at this boundary.
func ParseRosterCSV(data []byte) ([]*models.Person, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idIdx := findColumnIndex(header, []string{"id", "person_id", "employee id"})
	nameIdx := findColumnIndex(header, []string{"name", "person_name", "full name"})
	deptIdx := findColumnIndex(header, []string{"department", "dept", "team"})
	if idIdx == -1 || nameIdx == -1 || deptIdx == -1 {
		return nil, fmt.Errorf("roster CSV must have id, name and department columns, got %v", header)
	}

	var people []*models.Person
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}
		people = append(people, &models.Person{
			PersonID:   strings.TrimSpace(record[idIdx]),
			Name:       strings.TrimSpace(record[nameIdx]),
			Department: strings.TrimSpace(record[deptIdx]),
		})
	}

	if err := models.ValidatePeople(people); err != nil {
		return nil, err
	}
	return people, nil
}

// WinnersCSV renders the winner history as CSV in export column order.
func WinnersCSV(winners []models.WinnerRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(winnerCSVHeader); err != nil {
		return nil, err
	}
	for _, w := range winners {
		row := []string{
			w.Timestamp.Format(time.RFC3339),
			w.PrizeID,
			w.PrizeName,
			w.PersonID,
			w.PersonName,
			w.Department,
			w.Source,
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// findColumnIndex returns the index of the first header cell matching any of
// the candidate names, or -1.
func findColumnIndex(header []string, candidates []string) int {
	for i, cell := range header {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for _, candidate := range candidates {
			if normalized == candidate {
				return i
			}
		}
	}
	return -1
}
