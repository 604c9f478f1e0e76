package analytics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestService() (*Service, *bytes.Buffer) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel, Formatter: log.LogfmtFormatter})
	return New(l), &buf
}

func TestReportUIEventClick(t *testing.T) {
	s, buf := newTestService()
	s.ReportUIEvent(ScreenMain, Click, ItemAddTrack)

	out := buf.String()
	for _, want := range []string{"event=click", "screen=Main", "item=add_track"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestReportUIEventWithoutItem(t *testing.T) {
	s, buf := newTestService()
	s.ReportUIEvent(ScreenStatistics, Open, "")

	out := buf.String()
	if !strings.Contains(out, "event=open") {
		t.Errorf("output %q missing event", out)
	}
	if strings.Contains(out, "item=") {
		t.Errorf("output %q should not carry an item", out)
	}
}

func TestNilServiceIsSafe(t *testing.T) {
	var s *Service
	s.ReportUIEvent(ScreenMain, Close, "")
}
