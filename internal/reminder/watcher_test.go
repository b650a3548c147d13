package reminder

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

type fakeSource struct {
	st    models.AppState
	now   time.Time
	loads int
}

func (f *fakeSource) Load() error            { f.loads++; return nil }
func (f *fakeSource) State() models.AppState { return f.st }
func (f *fakeSource) Now() time.Time         { return f.now }

type fakeSender struct {
	texts []string
	err   error
}

func (f *fakeSender) Notify(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.texts = append(f.texts, text)
	return nil
}

type memLedger struct {
	fired  map[string]bool
	before string
}

func (m *memLedger) MarkReminderFired(habitID, day, at string) (bool, error) {
	key := day + "|" + at + "|" + habitID
	if m.fired[key] {
		return false, nil
	}
	m.fired[key] = true
	return true, nil
}

func (m *memLedger) PruneReminderLog(before string) error {
	m.before = before
	return nil
}

func TestScanFiresOnce(t *testing.T) {
	src := &fakeSource{st: reminderState(true), now: wednesday}
	sender := &fakeSender{}
	w := NewWatcher(src, &memLedger{fired: map[string]bool{}}, sender)

	sent, err := w.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(sent) != 2 || len(sender.texts) != 2 {
		t.Fatalf("expected 2 notifications, got %v", sender.texts)
	}

	// The next scan within the same minute sends nothing.
	src.now = wednesday.Add(30 * time.Second)
	sent, err = w.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(sent) != 0 || len(sender.texts) != 2 {
		t.Errorf("reminders fired twice: %v", sender.texts)
	}
	if src.loads != 2 {
		t.Errorf("expected state reloaded on every scan, got %d loads", src.loads)
	}
}

func TestScanDeliveryFailure(t *testing.T) {
	src := &fakeSource{st: reminderState(true), now: wednesday}
	w := NewWatcher(src, &memLedger{fired: map[string]bool{}}, &fakeSender{err: errors.New("tray down")})

	sent, err := w.Scan(context.Background())
	if err != nil {
		t.Fatalf("delivery failures must not fail the scan: %v", err)
	}
	if len(sent) != 0 {
		t.Errorf("expected nothing reported as sent, got %+v", sent)
	}
}

func TestPruneCutoff(t *testing.T) {
	ledger := &memLedger{fired: map[string]bool{}}
	w := NewWatcher(&fakeSource{now: wednesday}, ledger, &fakeSender{})
	if err := w.Prune(); err != nil {
		t.Fatal(err)
	}
	if ledger.before != "2024-06-05" {
		t.Errorf("prune cutoff = %s, want 2024-06-05", ledger.before)
	}
}

func TestScanWithSQLiteLedger(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "habitual.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	src := &fakeSource{st: reminderState(true), now: wednesday}
	sender := &fakeSender{}
	w := NewWatcher(src, store, sender)

	for i := 0; i < 3; i++ {
		if _, err := w.Scan(context.Background()); err != nil {
			t.Fatalf("Scan %d failed: %v", i, err)
		}
	}
	if len(sender.texts) != 2 {
		t.Errorf("expected each reminder once, got %v", sender.texts)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	src := &fakeSource{st: reminderState(true), now: wednesday}
	sender := &fakeSender{}
	w := NewWatcher(src, &memLedger{fired: map[string]bool{}}, sender)

	ctx, cancel := context.WithCancel(context.Background())
	var got []Due
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(d Due) { got = append(got, d) })
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	if len(got) != 2 {
		t.Errorf("expected the initial scan to deliver 2 reminders, got %d", len(got))
	}
}
