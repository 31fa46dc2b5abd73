// Package ports defines the interfaces the trust-settings core consumes.
package ports

import (
	"context"
	"errors"

	"github.com/sufield/trustset/internal/core/domain"
)

// ErrNotConfigured is returned by FetchTrustedCertificates when a domain has
// no trust settings at all. The enumerator normalizes it to a successful
// empty pass; it is never surfaced to callers.
var ErrNotConfigured = errors.New("no trust settings configured for domain")

// ErrStoreUnavailable is returned when the store cannot be queried at all.
var ErrStoreUnavailable = errors.New("trust store unavailable")

// ErrAccessDenied is returned when the store refuses the query.
var ErrAccessDenied = errors.New("trust store access denied")

// TrustStore is the external store the core reads trust settings from.
//
// Refs returned by FetchTrustedCertificates are borrowed: the caller owes one
// Release per ref, on every exit path. FetchTrustSettings returns a fresh
// list each call; a nil error with an empty (or nil) list means the
// certificate is configured with zero records.
type TrustStore interface {
	// FetchTrustedCertificates returns every certificate that has any trust
	// settings configured in the given domain.
	FetchTrustedCertificates(ctx context.Context, sd domain.SettingsDomain) ([]domain.CertificateRef, error)

	// FetchTrustSettings returns the ordered settings list for one
	// certificate in one domain.
	FetchTrustSettings(ctx context.Context, ref domain.CertificateRef, sd domain.SettingsDomain) (domain.TrustSettingsList, error)
}
