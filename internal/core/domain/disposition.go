package domain

import "fmt"

// Disposition is the trust outcome stored in a setting record and the outcome
// callers query for. The integer codes match the upstream trust authority so
// that stored records round-trip unchanged.
type Disposition int32

const (
	DispositionInvalid     Disposition = 0
	DispositionTrustRoot   Disposition = 1
	DispositionTrustAsRoot Disposition = 2
	DispositionDeny        Disposition = 3
	DispositionUnspecified Disposition = 4
)

var dispositionStrings = map[Disposition]string{
	DispositionInvalid:     "invalid",
	DispositionTrustRoot:   "trust-root",
	DispositionTrustAsRoot: "trust-as-root",
	DispositionDeny:        "deny",
	DispositionUnspecified: "unspecified",
}

// String returns the string representation.
func (d Disposition) String() string {
	if s, ok := dispositionStrings[d]; ok {
		return s
	}
	return fmt.Sprintf("disposition(%d)", int32(d))
}

// IsQueryable reports whether d is a disposition callers may enumerate for.
// Only explicit root trust and explicit denial are queryable; the remaining
// codes exist so values found in stored records compare cleanly.
func (d Disposition) IsQueryable() bool {
	return d == DispositionTrustRoot || d == DispositionDeny
}

// ParseDisposition converts a query string ("root" or "deny") into a
// queryable Disposition.
func ParseDisposition(s string) (Disposition, error) {
	switch s {
	case "root":
		return DispositionTrustRoot, nil
	case "deny":
		return DispositionDeny, nil
	default:
		return DispositionInvalid, fmt.Errorf("unknown disposition %q (want \"root\" or \"deny\")", s)
	}
}
