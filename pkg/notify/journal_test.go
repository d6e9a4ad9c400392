package notify

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestJournal(t *testing.T) *journalNotifier {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.db")
	n, err := newJournalNotifier(context.Background(), NotifierConfig{
		ID:   "journal-1",
		Type: TypeJournal,
		Journal: &JournalNotifierConfig{
			Path:       path,
			TTLSeconds: 3600,
		},
	}, nil)
	if err != nil {
		t.Fatalf("newJournalNotifier: %v", err)
	}
	j := n.(*journalNotifier)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalNotifierRoundTrip(t *testing.T) {
	j := openTestJournal(t)

	events := []Event{
		NewEvent("reachability.not_reachable", "not_reachable"),
		NewEvent("reachability.reachable_on_wifi", "reachable_on_wifi"),
	}
	for _, evt := range events {
		if err := j.Notify(context.Background(), evt); err != nil {
			t.Fatalf("Notify: %v", err)
		}
	}

	got, err := j.Events(10)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 journal entries, got %d", len(got))
	}
	// Newest first.
	if got[0].Name != "reachability.reachable_on_wifi" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[1].State != "not_reachable" {
		t.Fatalf("event payload lost: %+v", got[1])
	}
}

func TestJournalNotifierEventsLimit(t *testing.T) {
	j := openTestJournal(t)

	for i := 0; i < 5; i++ {
		if err := j.Notify(context.Background(), NewEvent("reachability.unknown", "unknown")); err != nil {
			t.Fatalf("Notify: %v", err)
		}
	}

	got, err := j.Events(3)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
}

func TestJournalNotifierRequiresPath(t *testing.T) {
	_, err := newJournalNotifier(context.Background(), NotifierConfig{
		ID:      "journal-1",
		Type:    TypeJournal,
		Journal: nil,
	}, nil)
	if err == nil {
		t.Fatalf("expected error for missing journal config")
	}
}
