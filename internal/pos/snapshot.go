package pos

// Snapshot is the authoritative catalog materialized in memory, keyed by
// normalized SKU. It is read-only after construction.
type Snapshot struct {
	records    map[string]Record
	duplicates int
	skipped    int
}

func newSnapshot() *Snapshot {
	return &Snapshot{records: make(map[string]Record)}
}

// SnapshotFromRecords builds a snapshot directly from records, bypassing the
// bulk fetch. Intended for tests of snapshot consumers.
func SnapshotFromRecords(records map[string]Record) *Snapshot {
	s := newSnapshot()
	for key, record := range records {
		s.records[key] = record
	}
	return s
}

// Lookup returns the authoritative record for a normalized SKU.
func (s *Snapshot) Lookup(normalizedSKU string) (Record, bool) {
	record, ok := s.records[normalizedSKU]
	return record, ok
}

// Len returns the number of distinct SKUs in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Duplicates returns how many records overwrote an earlier SKU during the
// fetch (last-write-wins).
func (s *Snapshot) Duplicates() int {
	return s.duplicates
}

// Skipped returns how many malformed records were dropped during the fetch.
func (s *Snapshot) Skipped() int {
	return s.skipped
}
