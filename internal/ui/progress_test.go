package ui

import (
	"strings"
	"testing"

	"reflow/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	ch := make(chan driver.Event)
	m := NewProgressModel("reflow", ch).(*progressModel)

	events := []driver.Event{
		{File: "a.txt", Status: driver.StatusQueued},
		{File: "b.txt", Status: driver.StatusQueued},
		{File: "a.txt", Stage: driver.StageTokenize, Status: driver.StatusWorking},
		{File: "a.txt", Status: driver.StatusDone},
		{File: "b.txt", Stage: driver.StageLoad, Status: driver.StatusWorking},
		{File: "b.txt", Status: driver.StatusError},
	}
	for _, ev := range events {
		m.Update(eventMsg(ev))
	}

	if len(m.items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(m.items))
	}
	if m.items[0].status != "done" || m.items[1].status != "error" {
		t.Fatalf("unexpected statuses: %q, %q", m.items[0].status, m.items[1].status)
	}
	if got := m.percent(); got != 1.0 {
		t.Fatalf("expected full progress, got %v", got)
	}
	view := m.View()
	if !strings.Contains(view, "(2/2)") || !strings.Contains(view, "a.txt") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestProgressFromStageIsMonotonic(t *testing.T) {
	stages := []driver.Stage{
		driver.StageLoad, driver.StageTokenize, driver.StageClassify,
		driver.StagePack, driver.StageEmit, driver.StageWrite,
	}
	prev := 0.0
	for _, st := range stages {
		p := progressFromStage(st)
		if p <= prev {
			t.Fatalf("stage %s: progress %v not above %v", st, p, prev)
		}
		prev = p
	}
}

func TestDoneMessageQuits(t *testing.T) {
	ch := make(chan driver.Event)
	close(ch)
	m := NewProgressModel("reflow", ch).(*progressModel)
	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("expected doneMsg on closed channel, got %T", msg)
	}
	_, cmd := m.Update(msg)
	if cmd == nil || !m.done {
		t.Fatalf("expected quit after done")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 10); got != "abc" {
		t.Fatalf("truncate = %q", got)
	}
}
