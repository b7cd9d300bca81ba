package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/lyrelab/versesmith/poetry"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "poems.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func TestSavePoemAndListRecent(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	emotions, err := poetry.NewEmotionVector(map[string]float64{"joy": 0.8, "surprise": 0.2})
	if err != nil {
		t.Fatalf("NewEmotionVector: %v", err)
	}
	rec := Record{
		Scheme:    poetry.SchemeABAB,
		Genre:     "ода",
		Model:     "test-model",
		Emotions:  emotions,
		RawText:   "сырой текст",
		FinalText: "итоговый текст",
		Rhymed:    true,
		Groups: []poetry.GroupReport{
			{Indices: []int{0, 2}, Key: "ой", Ok: true, Substituted: []int{2}},
			{Indices: []int{1, 3}, Ok: false},
		},
	}
	id, err := s.SavePoem(rec)
	if err != nil {
		t.Fatalf("SavePoem: %v", err)
	}
	if id == "" {
		t.Fatal("SavePoem returned empty id")
	}

	got, err := s.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].ID != id || got[0].CreatedAt.IsZero() {
		t.Fatalf("record identity: %+v", got[0])
	}
	if diff := cmp.Diff(rec.Emotions, got[0].Emotions); diff != "" {
		t.Fatalf("emotions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(rec.Groups, got[0].Groups); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
	if got[0].FinalText != rec.FinalText || !got[0].Rhymed {
		t.Fatalf("record payload: %+v", got[0])
	}
}

func TestListRecent_NewestFirst(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	emotions, _ := poetry.NewEmotionVector(nil)
	for i := 0; i < 3; i++ {
		_, err := s.SavePoem(Record{
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Scheme:    poetry.SchemeAABB,
			Emotions:  emotions,
			RawText:   "r",
			FinalText: "f",
		})
		if err != nil {
			t.Fatalf("SavePoem %d: %v", i, err)
		}
	}

	got, err := s.ListRecent(2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Fatalf("order: %v then %v, want newest first", got[0].CreatedAt, got[1].CreatedAt)
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Fatalf("Count=%d, want 3", n)
	}
}
