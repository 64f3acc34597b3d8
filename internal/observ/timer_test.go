package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerBeginEnd(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("load")
	timer.End(idx, "1 file")
	timer.End(99, "ignored")

	report := timer.Report()
	if len(report.Phases) != 1 {
		t.Fatalf("expected 1 phase, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "load" || report.Phases[0].Note != "1 file" {
		t.Errorf("unexpected phase %+v", report.Phases[0])
	}
	if report.TotalMS != report.Phases[0].DurationMS {
		t.Errorf("total %v != phase %v", report.TotalMS, report.Phases[0].DurationMS)
	}
}

func TestTimerAddAccumulates(t *testing.T) {
	timer := NewTimer()
	outer := timer.Begin("tokenize")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			timer.Add("scan", time.Millisecond)
		}()
	}
	wg.Wait()
	timer.End(outer, "")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	scan := report.Phases[1]
	if scan.Count != 8 || scan.DurationMS != 8 {
		t.Errorf("scan phase = %+v, want count 8 and 8ms", scan)
	}
	if report.TotalMS != report.Phases[0].DurationMS {
		t.Errorf("folded phases must not add to total: %v vs %v", report.TotalMS, report.Phases[0].DurationMS)
	}
	if !strings.Contains(timer.Summary(), "x8") {
		t.Errorf("summary misses sample count:\n%s", timer.Summary())
	}
}

func TestEmptyTimer(t *testing.T) {
	timer := NewTimer()
	if r := timer.Report(); r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Errorf("expected empty report, got %+v", r)
	}
	if !strings.HasPrefix(timer.Summary(), "timings:") {
		t.Errorf("unexpected summary %q", timer.Summary())
	}
}
