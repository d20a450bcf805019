package cmd

import (
	"errors"
	"testing"

	"github.com/Tiliavir/trivial-work-ledger/internal/ledger"
	"github.com/Tiliavir/trivial-work-ledger/internal/storage"
)

// closeCountingStore counts Close calls.
type closeCountingStore struct {
	*storage.Memory
	closes int
}

func (s *closeCountingStore) Close() error {
	s.closes++
	return nil
}

func TestCheckClosesLedgerBeforeExit(t *testing.T) {
	var codes []int
	prev := osExit
	osExit = func(code int) { codes = append(codes, code) }
	t.Cleanup(func() { osExit = prev })

	store := &closeCountingStore{Memory: storage.NewMemory()}
	a := &app{
		store:  store,
		engine: ledger.NewEngine(store, ledger.NewReconciler(ledger.Options{}, nil, nil)),
	}

	a.check(nil)
	if store.closes != 0 || len(codes) != 0 {
		t.Fatalf("check(nil) closed %d times, exited %v", store.closes, codes)
	}

	a.check(errors.New("disk full"))
	if store.closes != 1 {
		t.Errorf("store closed %d times, want 1", store.closes)
	}
	if len(codes) != 1 || codes[0] != 2 {
		t.Errorf("exit codes = %v, want [2]", codes)
	}

	// The deferred Close in a command must not close the store again.
	a.Close()
	if store.closes != 1 {
		t.Errorf("store closed %d times after deferred Close, want 1", store.closes)
	}
}
