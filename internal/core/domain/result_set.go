package domain

// ResultSet accumulates matched certificates across one logical query, which
// may span several sequential domain passes. The inner storage is allocated
// on first append. A ResultSet is single-caller state: it must not be shared
// across concurrent queries.
//
// Callers never observe an empty ResultSet. A pass that fails, or completes
// without matches, discards the set and reports absence instead.
type ResultSet struct {
	refs []CertificateRef
}

// NewResultSet creates an empty accumulator.
func NewResultSet() *ResultSet {
	return &ResultSet{}
}

// Append retains ref and adds it to the set. The set now owns its own
// reference, independent of the borrowed ref the enumerator is iterating.
func (rs *ResultSet) Append(ref CertificateRef) {
	rs.refs = append(rs.refs, ref.Retain())
}

// Len returns the number of accumulated certificates.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.refs)
}

// IsEmpty reports whether nothing has been accumulated.
func (rs *ResultSet) IsEmpty() bool {
	return rs.Len() == 0
}

// Refs returns the accumulated refs in append order. The refs remain owned by
// the set until Discard, or by the caller once the query returns the set.
func (rs *ResultSet) Refs() []CertificateRef {
	if rs == nil {
		return nil
	}
	return rs.refs
}

// Discard releases every accumulated ref and empties the set. A failed or
// match-free pass discards everything accumulated so far, including matches
// appended by earlier domains of the same query.
func (rs *ResultSet) Discard() {
	if rs == nil {
		return
	}
	for _, ref := range rs.refs {
		ref.Release()
	}
	rs.refs = nil
}
