package dataset

// Predicate selects source records.
type Predicate func(Record) bool

// CountryEquals matches records whose country equals value exactly.
func CountryEquals(value string) Predicate {
	return func(rec Record) bool {
		return rec.Country == value
	}
}

// Filter returns the records satisfying keep, preserving relative order.
func Filter(records []Record, keep Predicate) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Project converts source records into the working dataset, dropping the
// country column. The result has one row per record, in order.
func Project(records []Record) Dataset {
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = rec.Row
	}
	return New(rows)
}
