// Package dataset loads sample call transcripts from a spreadsheet for the
// /demo endpoint.
package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SampleCall is one fixture row: a transcript, optionally with a call id.
type SampleCall struct {
	CallID     string `json:"call_id"`
	Transcript string `json:"transcript"`
}

// Load reads the first sheet and auto-detects the id and transcript columns
// by header heuristics, the way upstream exports vary their headers.
func Load(path string) ([]SampleCall, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	idIdx := -1
	textIdx := -1
	for i, h := range rows[0] {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case textIdx == -1 && (strings.Contains(l, "transcript") || strings.Contains(l, "text")):
			textIdx = i
		case idIdx == -1 && (strings.Contains(l, "call id") || strings.Contains(l, "callid") || l == "id"):
			idIdx = i
		}
	}
	if textIdx == -1 {
		// exports without headers put the transcript in the last column
		textIdx = len(rows[0]) - 1
	}

	var out []SampleCall
	for i, r := range rows {
		if i == 0 {
			continue
		}
		rec := SampleCall{}
		if idIdx >= 0 && idIdx < len(r) {
			rec.CallID = strings.TrimSpace(r[idIdx])
		}
		if textIdx >= 0 && textIdx < len(r) {
			rec.Transcript = strings.TrimSpace(r[textIdx])
		}
		if rec.Transcript == "" {
			// skip empty rows quietly
			continue
		}
		if rec.CallID == "" {
			rec.CallID = fmt.Sprintf("row-%d", i)
		}
		out = append(out, rec)
	}
	return out, nil
}
