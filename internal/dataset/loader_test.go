package dataset

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeFixture(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}
	path := filepath.Join(t.TempDir(), "calls.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return path
}

func TestLoadDetectsColumns(t *testing.T) {
	path := writeFixture(t, [][]interface{}{
		{"Call ID", "City", "Transcript"},
		{"c-1", "Austin", "This is Fania. How can I help?"},
		{"c-2", "Boston", ""},
		{"c-3", "Dallas", "Hi, Tania. This is Anthony."},
	})
	calls, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("calls = %v, want 2 (empty transcript skipped)", calls)
	}
	if calls[0].CallID != "c-1" || calls[0].Transcript != "This is Fania. How can I help?" {
		t.Errorf("first call = %+v", calls[0])
	}
	if calls[1].CallID != "c-3" {
		t.Errorf("second call id = %q, want c-3", calls[1].CallID)
	}
}

func TestLoadMissingCallIDGetsRowLabel(t *testing.T) {
	path := writeFixture(t, [][]interface{}{
		{"Transcript"},
		{"Hello, this is Marcus."},
	})
	calls, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(calls) != 1 || calls[0].CallID != "row-1" {
		t.Fatalf("calls = %+v, want one row-1 record", calls)
	}
}

func TestLoadRejectsEmptySheet(t *testing.T) {
	path := writeFixture(t, [][]interface{}{{"Transcript"}})
	if _, err := Load(path); err == nil {
		t.Fatal("Load on header-only sheet should fail")
	}
}

func TestSegmentsSplitsSentences(t *testing.T) {
	segs := Segments("Hello there. How are you today? Fine!")
	if len(segs) != 3 {
		t.Fatalf("segments = %v, want 3", segs)
	}
	if segs[0].Text != "Hello there." {
		t.Errorf("first sentence = %q", segs[0].Text)
	}
	if segs[1].Start != segs[0].End {
		t.Errorf("segments not contiguous: %v", segs)
	}
	if segs[2].ID != 2 {
		t.Errorf("ids not sequential: %v", segs)
	}
}

func TestSegmentsEmptyTranscript(t *testing.T) {
	if segs := Segments("   "); len(segs) != 0 {
		t.Fatalf("segments = %v, want none", segs)
	}
}
