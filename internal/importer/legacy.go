package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// LegacyStore is the single-file JSON store written by the earlier
// spreadsheet-style tool: a flat list of milestones and a flat list of
// daily logs keyed back by milestone_id.
type LegacyStore struct {
	Milestones []LegacyMilestone `json:"milestones"`
	DailyLogs  []LegacyLog       `json:"daily_logs"`
}

type LegacyMilestone struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	DeadlineDays int              `json:"deadline_days"`
	Phases       int              `json:"phases"`
	TotalCost    float64          `json:"total_cost"`
	Labourers    []LegacyLabourer `json:"labourers"`
	Materials    []LegacyMaterial `json:"materials"`
	Machines     []LegacyMachine  `json:"machines"`
	CreatedAt    string           `json:"created_at"`
}

type LegacyLabourer struct {
	Name      string  `json:"name"`
	Count     int     `json:"count"`
	DailyRate float64 `json:"daily_rate"`
	Days      int     `json:"days"`
}

type LegacyMaterial struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	UnitCost float64 `json:"unit_cost"`
}

type LegacyMachine struct {
	Name      string  `json:"name"`
	Count     int     `json:"count"`
	DailyRate float64 `json:"daily_rate"`
	Days      int     `json:"days"`
}

type LegacyLog struct {
	ID          string  `json:"id"`
	MilestoneID string  `json:"milestone_id"`
	Date        string  `json:"date"`
	Wages       float64 `json:"wages"`
	Materials   float64 `json:"materials"`
	Machinery   float64 `json:"machinery"`
	Notes       string  `json:"notes"`
}

// LoadLegacyStore reads and parses a legacy JSON store file.
func LoadLegacyStore(path string) (*LegacyStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseLegacyStore(f)
}

func ParseLegacyStore(r io.Reader) (*LegacyStore, error) {
	var store LegacyStore
	if err := json.NewDecoder(r).Decode(&store); err != nil {
		return nil, fmt.Errorf("parsing legacy store: %w", err)
	}
	return &store, nil
}

// The legacy tool stringified Python dates and datetimes, so be lenient.
var legacyDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999",
}

func parseLegacyDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range legacyDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
}
