package report

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zstd"

	"profilefix/internal/repair"
)

func readLines(t *testing.T, path string) []Line {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(path) == ".zst" {
		dec, err := zstd.NewReader(f)
		if err != nil {
			t.Fatalf("zstd: %v", err)
		}
		defer dec.Close()
		r = dec
	}
	var out []Line
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		var l Line
		if err := json.Unmarshal(sc.Bytes(), &l); err != nil {
			t.Fatalf("unmarshal %q: %v", sc.Text(), err)
		}
		out = append(out, l)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return out
}

func TestWriteEntries(t *testing.T) {
	entries := []repair.Entry{
		{Message: "Removed 2 duplicate inventory items", Success: true, Kind: repair.KindFix},
		{Message: "Skill Endurance has an invalid Progress value", Success: false, Kind: repair.KindFailure},
	}
	want := []Line{
		{File: "p.json", Message: entries[0].Message, Success: true},
		{File: "p.json", Message: entries[1].Message, Success: false},
	}

	dir := t.TempDir()
	for _, name := range []string{"report.jsonl", "report.jsonl.zst"} {
		path := filepath.Join(dir, name)
		if err := WriteEntries(path, "p.json", entries); err != nil {
			t.Fatalf("WriteEntries(%s): %v", name, err)
		}
		if diff := cmp.Diff(want, readLines(t, path)); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}
}
