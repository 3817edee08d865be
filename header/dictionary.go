package header

import (
	"sort"

	"github.com/cram-go/cramplan/internal/hash"
	"github.com/cram-go/cramplan/record"
)

// dictCounter is the two-phase handle a record's tag-key sequence resolves
// to. Phase 1 (while scanning the batch) only count is meaningful; phase 2
// (after the distinct sequences are sorted) index is filled in and is what
// record.Record.TagIDsIndex is set from. The same cell serves both phases
// so that every record sharing a sequence automatically shares the final
// row index once it is assigned.
type dictCounter struct {
	count int
	index int
}

// dictEntry pairs a distinct tag-key byte string with its counter. keys
// are stored as plain strings (an immutable view over the 3*N-byte
// sequence), which lets the bucket scan in lookupOrInsert compare them
// with ==.
type dictEntry struct {
	key     string
	counter *dictCounter
}

// Dictionary is the tag-id dictionary built from a batch: row 0 is always
// the empty sequence, and every other row is a distinct, sorted sequence
// of 3-byte tag keys observed in the batch.
type Dictionary struct {
	Rows [][][3]byte
}

// RowCount returns the number of distinct tag-key sequences, including the
// always-present empty row.
func (d *Dictionary) RowCount() int {
	return len(d.Rows)
}

// Row returns the tag-key sequence at row i.
func (d *Dictionary) Row(i int) ([][3]byte, bool) {
	if i < 0 || i >= len(d.Rows) {
		return nil, false
	}

	return d.Rows[i], true
}

// BuildDictionary implements the tag-id dictionary builder: it groups
// records by their sorted tag-key sequence, assigns each distinct
// sequence a deterministic row index, and back-fills every record's
// TagIDsIndex. Records are mutated in place (their Tags are sorted by
// ascending key).
func BuildDictionary(records []*record.Record) *Dictionary {
	buckets := make(map[uint64][]*dictEntry)

	emptyCounter := &dictCounter{}
	emptyEntry := &dictEntry{key: "", counter: emptyCounter}
	emptyHash := hash.ID("")
	buckets[emptyHash] = []*dictEntry{emptyEntry}

	var allEntries []*dictEntry
	allEntries = append(allEntries, emptyEntry)

	assigned := make([]*dictCounter, len(records))

	for i, rec := range records {
		if len(rec.Tags) == 0 {
			emptyCounter.count++
			assigned[i] = emptyCounter

			continue
		}

		sort.Slice(rec.Tags, func(a, b int) bool {
			return rec.Tags[a].Key < rec.Tags[b].Key
		})

		keyBytes := make([]byte, 0, 3*len(rec.Tags))
		for _, tag := range rec.Tags {
			b := tag.Key.Bytes()
			keyBytes = append(keyBytes, b[0], b[1], b[2])
		}

		counter := lookupOrInsert(buckets, &allEntries, keyBytes)
		counter.count++
		assigned[i] = counter
	}

	sort.Slice(allEntries, func(a, b int) bool {
		return byteStringLess(allEntries[a].key, allEntries[b].key)
	})

	rows := make([][][3]byte, len(allEntries))
	for i, e := range allEntries {
		e.counter.index = i
		rows[i] = splitTagKeys(e.key)
	}

	for i, rec := range records {
		rec.TagIDsIndex = assigned[i].index
	}

	return &Dictionary{Rows: rows}
}

// lookupOrInsert returns the counter for keyBytes, creating and recording
// a new entry if the sequence has not been seen before. The hash is only
// a pre-check to narrow the bucket scan; string equality is the final
// arbiter, so a collision never misattributes two distinct sequences to
// the same row.
func lookupOrInsert(buckets map[uint64][]*dictEntry, allEntries *[]*dictEntry, keyBytes []byte) *dictCounter {
	h := hash.Bytes(keyBytes)
	key := string(keyBytes)

	for _, e := range buckets[h] {
		if e.key == key {
			return e.counter
		}
	}

	entry := &dictEntry{key: key, counter: &dictCounter{}}
	buckets[h] = append(buckets[h], entry)
	*allEntries = append(*allEntries, entry)

	return entry.counter
}

// byteStringLess orders two tag-key byte strings by length ascending,
// then bytewise ascending.
func byteStringLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}

	return a < b
}

// splitTagKeys splits a concatenated tag-key byte string back into its
// individual 3-byte keys.
func splitTagKeys(keyBytes string) [][3]byte {
	n := len(keyBytes) / 3
	out := make([][3]byte, n)

	for i := 0; i < n; i++ {
		out[i] = [3]byte{keyBytes[3*i], keyBytes[3*i+1], keyBytes[3*i+2]}
	}

	return out
}
