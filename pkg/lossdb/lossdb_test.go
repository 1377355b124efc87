package lossdb

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "loss_by_patch.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	record := Record{Dataset: "esawc.hdf5", PatchID: "patch-042", Epoch: 3, Loss: 1.25}
	if err := db.Put(ctx, record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok, err := db.Get(ctx, "esawc.hdf5", "patch-042")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected record to exist")
	}
	if got.Epoch != 3 || got.Loss != 1.25 {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.Updated.IsZero() {
		t.Error("expected Updated to be set on put")
	}

	_, ok, err = db.Get(ctx, "esawc.hdf5", "patch-999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected missing record")
	}
}

func TestRangeIsScopedToDataset(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	records := []Record{
		{Dataset: "esawc.hdf5", PatchID: "b", Loss: 0.2},
		{Dataset: "esawc.hdf5", PatchID: "a", Loss: 0.1},
		{Dataset: "ecosg.hdf5", PatchID: "a", Loss: 0.9},
	}
	for _, record := range records {
		if err := db.Put(ctx, record); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	got, err := db.Range(ctx, "esawc.hdf5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := []string{}
	for _, record := range got {
		ids = append(ids, record.PatchID)
	}
	if !reflect.DeepEqual(ids, []string{"a", "b"}) {
		t.Errorf("got patch ids %v, want [a b]", ids)
	}
}

func TestHardest(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	losses := map[string]float64{"p1": 0.4, "p2": 1.9, "p3": 0.7, "p4": 1.1}
	for id, loss := range losses {
		if err := db.Put(ctx, Record{Dataset: "oso.hdf5", PatchID: id, Loss: loss}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	got, err := db.Hardest(ctx, "oso.hdf5", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].PatchID != "p2" || got[1].PatchID != "p4" {
		t.Errorf("unexpected hardest records: %+v", got)
	}
}

func TestRemoveAndDatasets(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	for _, dataset := range []string{"clc.hdf5", "cgls.hdf5"} {
		if err := db.Put(ctx, Record{Dataset: dataset, PatchID: "p", Loss: 0.5}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	datasets, err := db.Datasets(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(datasets) != 2 {
		t.Errorf("expected 2 datasets, got %v", datasets)
	}

	if err := db.Remove(ctx, "clc.hdf5", "p"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, _ := db.Get(ctx, "clc.hdf5", "p"); ok {
		t.Error("expected record to be removed")
	}
	if err := db.Remove(ctx, "clc.hdf5", "p"); err != nil {
		t.Errorf("removing a missing record should not fail: %v", err)
	}
}
