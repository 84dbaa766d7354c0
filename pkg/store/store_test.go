package store

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.pcomb.sh/pkg/testutil"
)

func mustOpen(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(testutil.TempDir(t), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var entries = []Entry{
	{Rule: "int", Input: "42", OK: true},
	{Rule: "kv", Input: "a = ", OK: false},
	{Rule: "int", Input: "with\x00nul", OK: true},
	{Rule: "todo", Input: "x", Fatal: true},
}

func TestEntries(t *testing.T) {
	s := mustOpen(t)

	seq, err := s.NextSeq()
	if seq != 1 || err != nil {
		t.Errorf("NextSeq() => (%v, %v), want (1, nil)", seq, err)
	}

	for i, e := range entries {
		seq, err := s.AddEntry(e)
		if seq != i+1 || err != nil {
			t.Errorf("AddEntry(%v) => (%v, %v), want (%v, nil)", e, seq, err, i+1)
		}
	}

	seq, err = s.NextSeq()
	if seq != 5 || err != nil {
		t.Errorf("NextSeq() => (%v, %v), want (5, nil)", seq, err)
	}

	want := make([]Entry, len(entries))
	for i, e := range entries {
		e.Seq = i + 1
		want[i] = e
	}
	got, err := s.Entries(0, math.MaxInt32)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Entries (-want +got):\n%s", diff)
	}

	got, err = s.Entries(2, 3)
	if err != nil || !cmp.Equal(got, want[1:2]) {
		t.Errorf("Entries(2, 3) => (%v, %v), want (%v, nil)", got, err, want[1:2])
	}

	e, err := s.Entry(3)
	if err != nil || e != want[2] {
		t.Errorf("Entry(3) => (%v, %v), want (%v, nil)", e, err, want[2])
	}
	e, err = s.Entry(4)
	if err != nil || !e.Fatal || e.OK {
		t.Errorf("Entry(4) => (%v, %v), want an aborted entry", e, err)
	}
}

func TestDelEntry(t *testing.T) {
	s := mustOpen(t)
	s.AddEntry(entries[0])
	s.AddEntry(entries[1])

	if err := s.DelEntry(1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Entry(1); !errors.Is(err, ErrNoEntry) {
		t.Errorf("Entry(1) after deletion returns error %v, want ErrNoEntry", err)
	}
	got, _ := s.Entries(0, 10)
	if len(got) != 1 || got[0].Seq != 2 {
		t.Errorf("Entries after deletion => %v", got)
	}
	// Sequence numbers are not reused.
	if seq, _ := s.AddEntry(entries[2]); seq != 3 {
		t.Errorf("AddEntry after deletion => %d, want 3", seq)
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(testutil.TempDir(t), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s.AddEntry(entries[0])
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	e, err := s.Entry(1)
	if err != nil || e.Input != "42" {
		t.Errorf("Entry(1) after reopening => (%v, %v)", e, err)
	}
}

func TestOpen_BadPath(t *testing.T) {
	_, err := Open(filepath.Join(testutil.TempDir(t), "no", "such", "dir", "db"))
	if err == nil {
		t.Errorf("Open succeeded for a path in a missing directory")
	}
}

func TestUnmarshalEntry_Malformed(t *testing.T) {
	for _, v := range []string{"", "1no-separator"} {
		if _, err := unmarshalEntry(1, []byte(v)); err == nil {
			t.Errorf("unmarshalEntry(%q) returns no error", v)
		}
	}
}
