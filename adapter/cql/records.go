package cql

import (
	"github.com/arloliu/cqlbridge/types"
)

// StatementRecord is the request state behind a statement handle.
type StatementRecord struct {
	Query             string
	Values            []any
	Bound             []bool
	Consistency       *types.Consistency
	SerialConsistency *types.Consistency
	PageSize          int
	PagingState       []byte
	Timestamp         *int64
}

// NewStatementRecord creates a record with paramCount unbound slots.
// A negative count is treated as zero.
func NewStatementRecord(query string, paramCount int) *StatementRecord {
	if paramCount < 0 {
		paramCount = 0
	}

	return &StatementRecord{
		Query:  query,
		Values: make([]any, paramCount),
		Bound:  make([]bool, paramCount),
	}
}

// Clone returns a deep copy, so later changes to the statement do not
// affect a request that was already submitted.
func (r *StatementRecord) Clone() StatementRecord {
	c := *r
	c.Values = append([]any(nil), r.Values...)
	c.Bound = append([]bool(nil), r.Bound...)
	if r.PagingState != nil {
		c.PagingState = append([]byte(nil), r.PagingState...)
	}

	return c
}

// Bind sets the value at index.
func (r *StatementRecord) Bind(index int, value any) types.Status {
	if index < 0 || index >= len(r.Values) {
		return types.LibIndexOutOfBounds
	}
	r.Values[index] = value
	r.Bound[index] = true

	return types.StatusOK
}

// Args returns the bind values, substituting unset for slots never bound.
func (r StatementRecord) Args(unset any) []any {
	args := make([]any, len(r.Values))
	for i, v := range r.Values {
		if r.Bound[i] {
			args[i] = v
		} else {
			args[i] = unset
		}
	}

	return args
}

// Unbound returns the indexes of slots that were never bound.
func (r StatementRecord) Unbound() []int {
	var idx []int
	for i, bound := range r.Bound {
		if !bound {
			idx = append(idx, i)
		}
	}

	return idx
}

// BatchRecord is the request state behind a batch handle.
type BatchRecord struct {
	Kind        types.BatchType
	Entries     []StatementRecord
	Consistency *types.Consistency
	Timestamp   *int64
}

// Clone returns a deep copy of the batch.
func (b *BatchRecord) Clone() BatchRecord {
	c := *b
	c.Entries = make([]StatementRecord, len(b.Entries))
	for i := range b.Entries {
		c.Entries[i] = b.Entries[i].Clone()
	}

	return c
}

// CountMarkers counts the positional bind markers (?) in a CQL statement,
// skipping string literals, quoted identifiers and comments.
func CountMarkers(query string) int {
	count := 0
	for i := 0; i < len(query); i++ {
		switch ch := query[i]; {
		case ch == '?':
			count++
		case ch == '\'' || ch == '"':
			i = skipQuoted(query, i, ch)
		case ch == '-' && i+1 < len(query) && query[i+1] == '-',
			ch == '/' && i+1 < len(query) && query[i+1] == '/':
			for i < len(query) && query[i] != '\n' {
				i++
			}
		case ch == '/' && i+1 < len(query) && query[i+1] == '*':
			i += 2
			for i+1 < len(query) && !(query[i] == '*' && query[i+1] == '/') {
				i++
			}
			i++
		case ch == '$' && i+1 < len(query) && query[i+1] == '$':
			i += 2
			for i+1 < len(query) && !(query[i] == '$' && query[i+1] == '$') {
				i++
			}
			i++
		}
	}

	return count
}

// skipQuoted returns the index of the closing quote of the literal that
// starts at start. A doubled quote is an escaped quote.
func skipQuoted(query string, start int, quote byte) int {
	for i := start + 1; i < len(query); i++ {
		if query[i] != quote {
			continue
		}
		if i+1 < len(query) && query[i+1] == quote {
			i++

			continue
		}

		return i
	}

	return len(query)
}
