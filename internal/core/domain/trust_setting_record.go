package domain

import "math"

// PropertyTrustResult is the record property that carries the integer
// disposition code. Any property beyond it marks the record as constrained.
const PropertyTrustResult = "trustResult"

// Well-known constraint property names. The matcher never interprets these;
// their presence alone is enough to make a record constrained.
const (
	PropertyPolicy      = "policy"
	PropertyApplication = "application"
	PropertyKeyUsage    = "keyUsage"
	PropertyPolicyData  = "policyData"
)

// TrustSettingRecord is one unordered property bag from a certificate's trust
// settings. Records are read-only once constructed.
type TrustSettingRecord struct {
	props map[string]any
}

// NewTrustSettingRecord creates a record from a property map. The map is
// copied so later caller mutation cannot change the record.
func NewTrustSettingRecord(props map[string]any) TrustSettingRecord {
	copied := make(map[string]any, len(props))
	for k, v := range props {
		copied[k] = v
	}
	return TrustSettingRecord{props: copied}
}

// NewResultRecord creates an unconstrained record holding only a trust-result
// code. This is the common shape for records written by administrators.
func NewResultRecord(d Disposition) TrustSettingRecord {
	return TrustSettingRecord{props: map[string]any{PropertyTrustResult: int32(d)}}
}

// PropertyCount returns the number of properties on the record.
func (r TrustSettingRecord) PropertyCount() int {
	return len(r.props)
}

// IsConstrained reports whether the record carries properties beyond a bare
// trust-result. Constrained records are never evaluated by the matcher; their
// applicability depends on evaluation context this library does not have.
func (r TrustSettingRecord) IsConstrained() bool {
	return len(r.props) > 1
}

// Property returns the raw value for a property name.
func (r TrustSettingRecord) Property(name string) (any, bool) {
	v, ok := r.props[name]
	return v, ok
}

// TrustResult returns the record's disposition code, if the trust-result
// property is present and holds a readable integer. A missing property, a
// value of any non-integer type, or an integer that does not fit in 32 bits
// reports false; such a record never decides a match.
func (r TrustSettingRecord) TrustResult() (Disposition, bool) {
	v, ok := r.props[PropertyTrustResult]
	if !ok {
		return DispositionInvalid, false
	}
	switch n := v.(type) {
	case Disposition:
		return n, true
	case int32:
		return Disposition(n), true
	case int:
		return dispositionFromInt64(int64(n))
	case int64:
		return dispositionFromInt64(n)
	case uint:
		return dispositionFromUint64(uint64(n))
	case uint32:
		return dispositionFromUint64(uint64(n))
	case uint64:
		return dispositionFromUint64(n)
	default:
		return DispositionInvalid, false
	}
}

// Codes are 32-bit signed upstream. A wider value that does not fit is
// unreadable, never truncated.
func dispositionFromInt64(n int64) (Disposition, bool) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return DispositionInvalid, false
	}
	return Disposition(n), true
}

func dispositionFromUint64(n uint64) (Disposition, bool) {
	if n > math.MaxInt32 {
		return DispositionInvalid, false
	}
	return Disposition(n), true
}

// TrustSettingsList is the ordered record sequence for one (certificate,
// domain) pair. Order is semantically significant: the first unconstrained
// record with a readable trust-result decides the match.
type TrustSettingsList []TrustSettingRecord

// IsEmpty reports whether the list has no records. An empty list is the
// store's way of saying "trust this certificate as a root, no exceptions".
func (l TrustSettingsList) IsEmpty() bool {
	return len(l) == 0
}
