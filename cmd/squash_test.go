package cmd

import (
	"testing"

	"github.com/Tiliavir/trivial-work-ledger/internal/ledger"
	"github.com/Tiliavir/trivial-work-ledger/internal/model"
	"github.com/Tiliavir/trivial-work-ledger/internal/storage"
)

func TestEngineForDryRunLeavesLedgerUntouched(t *testing.T) {
	rows := []model.Row{
		{Weekday: "Mon", Date: "2026-03-02", StartTime: "08:00", EndTime: "12:00", WorkTime: "4"},
		{Weekday: "Mon", Date: "2026-03-02", StartTime: "13:00", EndTime: "17:00", WorkTime: "4"},
		{Weekday: "Thu", Date: "2026-03-05", StartTime: "08:00", EndTime: "16:00", WorkTime: "8"},
	}
	store := storage.NewMemory(rows...)
	a := &app{
		store:  store,
		engine: ledger.NewEngine(store, ledger.NewReconciler(ledger.Options{}, nil, nil)),
	}

	dry, err := a.engineFor(true)
	if err != nil {
		t.Fatal(err)
	}
	res, err := dry.Squash()
	if err != nil {
		t.Fatal(err)
	}
	if res.Before != 3 || res.After != 2 {
		t.Errorf("squash = %+v, want 3 -> 2", res)
	}
	fill, err := dry.FillGaps()
	if err != nil {
		t.Fatal(err)
	}
	if fill.Added != 2 {
		t.Errorf("added %d placeholders, want 2", fill.Added)
	}
	if store.Saves != 0 || len(store.Rows()) != 3 {
		t.Errorf("dry run touched the ledger: %d saves, %d rows", store.Saves, len(store.Rows()))
	}

	live, err := a.engineFor(false)
	if err != nil {
		t.Fatal(err)
	}
	if live != a.engine {
		t.Error("engineFor(false) must return the ledger engine")
	}
}
