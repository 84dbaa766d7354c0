package store

import (
	"encoding/binary"
	"errors"
	"strings"

	bolt "go.etcd.io/bbolt"
)

const bucketEntries = "entries"

func init() {
	initDB["initialize history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketEntries))
		return err
	}
}

// Entry records one input checked against a rule. Fatal marks an input whose
// evaluation was aborted by a Fail node; OK is false for such entries.
type Entry struct {
	Seq   int    `json:"seq" yaml:"seq"`
	Rule  string `json:"rule" yaml:"rule"`
	Input string `json:"input" yaml:"input"`
	OK    bool   `json:"ok" yaml:"ok"`
	Fatal bool   `json:"fatal,omitempty" yaml:"fatal,omitempty"`
}

// Status bytes.
const (
	statusMismatch = '0'
	statusOK       = '1'
	statusFatal    = '2'
)

var errBadEntry = errors.New("malformed history entry")

// Values are the status byte, the rule name, a NUL and the input. Rule names
// never contain NUL.
func marshalEntry(e Entry) []byte {
	status := byte(statusMismatch)
	switch {
	case e.Fatal:
		status = statusFatal
	case e.OK:
		status = statusOK
	}
	return []byte(string(status) + e.Rule + "\x00" + e.Input)
}

func unmarshalEntry(seq uint64, v []byte) (Entry, error) {
	if len(v) == 0 {
		return Entry{}, errBadEntry
	}
	rule, input, ok := strings.Cut(string(v[1:]), "\x00")
	if !ok {
		return Entry{}, errBadEntry
	}
	return Entry{Seq: int(seq), Rule: rule, Input: input,
		OK: v[0] == statusOK, Fatal: v[0] == statusFatal}, nil
}

// NextSeq returns the sequence number the next entry will get.
func (s *Store) NextSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		seq = tx.Bucket([]byte(bucketEntries)).Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddEntry adds an entry to the history, ignoring its Seq field. It returns
// the sequence number assigned to it.
func (s *Store) AddEntry(e Entry) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEntries))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), marshalEntry(e))
	})
	return int(seq), err
}

// DelEntry deletes the entry with the given sequence number.
func (s *Store) DelEntry(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketEntries)).Delete(marshalSeq(uint64(seq)))
	})
}

// Entry returns the entry with the given sequence number.
func (s *Store) Entry(seq int) (Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketEntries)).Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoEntry
		}
		var err error
		e, err = unmarshalEntry(uint64(seq), v)
		return err
	})
	return e, err
}

// Entries returns all entries with sequence numbers in [from, upto).
func (s *Store) Entries(from, upto int) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketEntries)).Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			e, err := unmarshalEntry(unmarshalSeq(k), v)
			if err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return nil
	})
	return entries, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
