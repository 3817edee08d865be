// Package fai implements a reader and writer for the FASTA `.fai` index
// format: one tab-delimited line per reference sequence, giving its size,
// byte offset, and line-wrapping geometry.
package fai

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/cram-go/cramplan/errs"
)

// Entry is one reference sequence's index row.
type Entry struct {
	Contig       string
	Size         int64
	Offset       int64
	BasesPerLine int32
	BytesPerLine int32
}

// String formats e as the tab-delimited line WriteTo emits.
func (e Entry) String() string {
	return fmt.Sprintf("%s\t%d\t%d\t%d\t%d", e.Contig, e.Size, e.Offset, e.BasesPerLine, e.BytesPerLine)
}

// Index is a collection of Entry rows, hash-indexed by contig name but
// iterable in insertion order.
type Index struct {
	entries []Entry
	byName  map[string]int
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{byName: make(map[string]int)}
}

// Add appends e, assigning it the next 0-based sequence index. A
// duplicate contig name is rejected.
func (idx *Index) Add(e Entry) error {
	if _, exists := idx.byName[e.Contig]; exists {
		return fmt.Errorf("fai: %w: %q", errs.ErrDuplicateContig, e.Contig)
	}

	idx.byName[e.Contig] = len(idx.entries)
	idx.entries = append(idx.entries, e)

	return nil
}

// Lookup returns the entry for contig, if present.
func (idx *Index) Lookup(contig string) (Entry, bool) {
	i, ok := idx.byName[contig]
	if !ok {
		return Entry{}, false
	}

	return idx.entries[i], true
}

// Get returns the entry for contig, surfacing a wrapped
// errs.ErrContigNotFound naming the query if it is absent.
func (idx *Index) Get(contig string) (Entry, error) {
	e, ok := idx.Lookup(contig)
	if !ok {
		return Entry{}, fmt.Errorf("fai: %w: %q", errs.ErrContigNotFound, contig)
	}

	return e, nil
}

// SequenceAt returns the entry at 0-based sequence index i.
func (idx *Index) SequenceAt(i int) (Entry, bool) {
	if i < 0 || i >= len(idx.entries) {
		return Entry{}, false
	}

	return idx.entries[i], true
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Names returns every contig name in insertion order.
func (idx *Index) Names() []string {
	names := make([]string, len(idx.entries))
	for i, e := range idx.entries {
		names[i] = e.Contig
	}

	return names
}

// Equal reports whether idx and other have the same entries in the same
// order.
func (idx *Index) Equal(other *Index) bool {
	if idx.Len() != other.Len() {
		return false
	}

	for i, e := range idx.entries {
		if e != other.entries[i] {
			return false
		}
	}

	return true
}

// ParseLine parses a single `.fai` line. The contig name is truncated at
// its first whitespace character, the rule SAM applies to sequence names.
func ParseLine(line string) (Entry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 5 {
		return Entry{}, fmt.Errorf("fai: %w: %q", errs.ErrMalformedFAILine, line)
	}

	contig := fields[0]
	if i := strings.IndexFunc(contig, unicode.IsSpace); i >= 0 {
		contig = contig[:i]
	}

	size, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("fai: %w: %q", errs.ErrMalformedFAILine, line)
	}

	offset, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("fai: %w: %q", errs.ErrMalformedFAILine, line)
	}

	basesPerLine, err := strconv.ParseInt(fields[3], 10, 32)
	if err != nil {
		return Entry{}, fmt.Errorf("fai: %w: %q", errs.ErrMalformedFAILine, line)
	}

	bytesPerLine, err := strconv.ParseInt(fields[4], 10, 32)
	if err != nil {
		return Entry{}, fmt.Errorf("fai: %w: %q", errs.ErrMalformedFAILine, line)
	}

	return Entry{
		Contig:       contig,
		Size:         size,
		Offset:       offset,
		BasesPerLine: int32(basesPerLine),
		BytesPerLine: int32(bytesPerLine),
	}, nil
}

// ReadFrom parses every line from r into a new Index, in insertion order.
func ReadFrom(r io.Reader) (*Index, error) {
	idx := NewIndex()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		entry, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, err
		}

		if err := idx.Add(entry); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fai: reading: %w", err)
	}

	return idx, nil
}

// WriteTo emits idx's entries to w, one tab-delimited line per entry, in
// insertion order.
func WriteTo(w io.Writer, idx *Index) error {
	for _, e := range idx.entries {
		if _, err := fmt.Fprintf(w, "%s\n", e.String()); err != nil {
			return fmt.Errorf("fai: writing: %w", err)
		}
	}

	return nil
}

// Load reads the `.fai` index at path, using a scoped file handle that is
// closed on every exit path.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fai: opening %s: %w", path, err)
	}
	defer f.Close()

	return ReadFrom(f)
}

// Save writes idx to path, using a scoped file handle that is closed on
// every exit path.
func Save(path string, idx *Index) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fai: creating %s: %w", path, err)
	}
	defer f.Close()

	return WriteTo(f, idx)
}
