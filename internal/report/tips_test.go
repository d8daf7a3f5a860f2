package report

import (
	"strings"
	"testing"
	"time"

	"netpulse/internal/history"
)

func indexOf(lines []string, substr string) int {
	for i, l := range lines {
		if strings.Contains(l, substr) {
			return i
		}
	}
	return -1
}

func TestTipsAllBlocksTriggered(t *testing.T) {
	rec := history.NewRecord(time.Now(), 5, 2, 80, 40)
	tips := Tips(rec)

	// header + 2 download + 2 upload + 3 ping + 4 stability + 3 general
	if len(tips) != 15 {
		t.Fatalf("expected 15 lines, got %d: %v", len(tips), tips)
	}

	// Fixed evaluation order: download, upload, ping, stability, general.
	download := indexOf(tips, "download speed is quite low")
	upload := indexOf(tips, "upload speed is low")
	ping := indexOf(tips, "ping is high")
	stability := indexOf(tips, "connection stability is not optimal")
	general := indexOf(tips, "Restart your router")
	for name, idx := range map[string]int{
		"download": download, "upload": upload, "ping": ping,
		"stability": stability, "general": general,
	} {
		if idx < 0 {
			t.Fatalf("missing %s block: %v", name, tips)
		}
	}
	if !(download < upload && upload < ping && ping < stability && stability < general) {
		t.Fatalf("blocks out of order: download=%d upload=%d ping=%d stability=%d general=%d",
			download, upload, ping, stability, general)
	}
}

func TestTipsHealthyConnection(t *testing.T) {
	rec := history.NewRecord(time.Now(), 100, 50, 10, 95)
	tips := Tips(rec)

	// header + general block only
	if len(tips) != 4 {
		t.Fatalf("expected 4 lines for a healthy record, got %d: %v", len(tips), tips)
	}
	if !strings.HasPrefix(tips[0], "Tips for improving") {
		t.Fatalf("unexpected header: %q", tips[0])
	}
	if indexOf(tips, "Restart your router") != 1 {
		t.Fatalf("expected general block right after the header: %v", tips)
	}
}

func TestTipsThresholdEdges(t *testing.T) {
	// Values exactly at the thresholds do not trigger the blocks.
	rec := history.NewRecord(time.Now(), 10, 5, 50, 70)
	tips := Tips(rec)
	if len(tips) != 4 {
		t.Fatalf("expected no threshold blocks at the boundaries, got %d lines: %v", len(tips), tips)
	}
}

func TestTipsIsDeterministic(t *testing.T) {
	rec := history.NewRecord(time.Now(), 5, 2, 80, 40)
	a := Tips(rec)
	b := Tips(rec)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic tip count")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("line %d differs between calls", i)
		}
	}
}
