package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"netpulse/pkg/logx"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "logs", "speed_test_log.json"), logx.Nop())
}

func TestAllOnFreshStoreIsEmpty(t *testing.T) {
	s := tempStore(t)
	if got := s.All(); len(got) != 0 {
		t.Fatalf("expected empty history, got %d records", len(got))
	}
}

func TestAppendPreservesOrderAndFields(t *testing.T) {
	s := tempStore(t)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	recs := []Record{
		NewRecord(base, 95.456, 20.111, 12.346, 88.888),
		NewRecord(base.Add(time.Hour), 80.0, 15.5, 20.0, 91.0),
		NewRecord(base.Add(2*time.Hour), 5.0, 2.0, 80.0, 40.0),
	}
	for _, r := range recs {
		if err := s.Append(r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got := s.All()
	if len(got) != len(recs) {
		t.Fatalf("expected %d records, got %d", len(recs), len(got))
	}
	for i, r := range recs {
		if !got[i].Timestamp.Equal(r.Timestamp) {
			t.Fatalf("record %d timestamp mismatch: %v vs %v", i, got[i].Timestamp, r.Timestamp)
		}
		if got[i].DownloadMbps != r.DownloadMbps ||
			got[i].UploadMbps != r.UploadMbps ||
			got[i].PingMs != r.PingMs ||
			got[i].StabilityScore != r.StabilityScore ||
			got[i].StabilityRating != r.StabilityRating {
			t.Fatalf("record %d did not round-trip: %+v vs %+v", i, got[i], r)
		}
	}

	// First record had raw inputs with >2 decimals.
	if got[0].DownloadMbps != 95.46 || got[0].UploadMbps != 20.11 || got[0].PingMs != 12.35 {
		t.Fatalf("expected 2-decimal rounding, got %+v", got[0])
	}
}

func TestAllIsIdempotent(t *testing.T) {
	s := tempStore(t)
	if err := s.Append(NewRecord(time.Now(), 50, 10, 15, 95)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	a := s.All()
	b := s.All()
	if len(a) != len(b) {
		t.Fatalf("idempotence broken: %d vs %d records", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("record %d differs between reads: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestCorruptFileHealsToEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	s := NewStore(path, logx.Nop())
	if got := s.All(); len(got) != 0 {
		t.Fatalf("expected empty history from corrupt file, got %d records", len(got))
	}

	// Appending over a corrupt file starts a fresh log rather than failing.
	if err := s.Append(NewRecord(time.Now(), 10, 5, 30, 60)); err != nil {
		t.Fatalf("Append over corrupt file: %v", err)
	}
	if got := s.All(); len(got) != 1 {
		t.Fatalf("expected 1 record after healing append, got %d", len(got))
	}
}

func TestAppendSurfacesReadFault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	// A self-referencing symlink makes os.ReadFile fail with ELOOP, a read
	// fault that is neither not-exist nor corruption.
	if err := os.Symlink(path, path); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	s := NewStore(path, logx.Nop())
	if err := s.Append(NewRecord(time.Now(), 10, 5, 30, 60)); err == nil {
		t.Fatalf("expected Append to fail when the log cannot be read")
	}

	// The unreadable log must not have been replaced by a fresh one.
	if fi, err := os.Lstat(path); err != nil || fi.Mode()&os.ModeSymlink == 0 {
		t.Fatalf("log was rewritten over a read fault: fi=%v err=%v", fi, err)
	}

	// Read-only access still degrades to an empty view.
	if got := s.All(); len(got) != 0 {
		t.Fatalf("expected empty view of unreadable log, got %d records", len(got))
	}
}

func TestNewRecordDerivesRating(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{95, "Excellent"},
		{70, "Good"},
		{55.5, "Fair"},
		{30, "Poor"},
		{10, "Very Poor"},
	}
	for _, c := range cases {
		r := NewRecord(time.Now(), 1, 1, 1, c.score)
		if r.StabilityRating != c.want {
			t.Fatalf("score %v: rating %q, want %q", c.score, r.StabilityRating, c.want)
		}
		if !r.Valid() {
			t.Fatalf("freshly assembled record invalid: %+v", r)
		}
	}

	tampered := NewRecord(time.Now(), 1, 1, 1, 95)
	tampered.StabilityRating = "Poor"
	if tampered.Valid() {
		t.Fatalf("tampered record should be invalid")
	}
}

func TestDefaultPath(t *testing.T) {
	s := NewStore("", logx.Nop())
	if s.Path() != DefaultPath {
		t.Fatalf("expected default path %q, got %q", DefaultPath, s.Path())
	}
}
