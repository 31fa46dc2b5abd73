// Package services provides the trust-decision business logic.
package services

import (
	"context"
	"fmt"

	"github.com/sufield/trustset/internal/core/domain"
	"github.com/sufield/trustset/internal/core/errors"
	"github.com/sufield/trustset/internal/core/ports"
)

// TrustMatcher decides whether one certificate's trust settings indicate a
// requested disposition within one domain.
//
// The rule is conservative and order-sensitive: the first unconstrained
// record with a readable trust-result decides the outcome, even when it
// decides "no". Later records are never examined once a decisive record has
// been found. Constrained records (more than one property) are skipped
// outright, because their applicability depends on evaluation context this
// library does not have; treating them as unconditionally applicable would be
// unsound. That skip is a documented source of disagreement with stricter
// validators and is kept deliberately.
type TrustMatcher struct {
	store ports.TrustStore
}

// NewTrustMatcher creates a matcher reading from the given store.
func NewTrustMatcher(store ports.TrustStore) *TrustMatcher {
	return &TrustMatcher{store: store}
}

// Matches evaluates a settings list against a requested disposition.
//
// An empty list counts as "trust as root, no exceptions", so it matches
// exactly when the requested disposition is TrustRoot.
func (m *TrustMatcher) Matches(list domain.TrustSettingsList, want domain.Disposition) bool {
	if list.IsEmpty() {
		return want == domain.DispositionTrustRoot
	}

	for _, rec := range list {
		if rec.IsConstrained() {
			continue
		}

		code, ok := rec.TrustResult()
		if !ok {
			// Malformed or absent trust-result: skip, keep scanning.
			continue
		}

		// First decisive record wins, match or not.
		return code == want
	}

	return false
}

// MatchCertificate fetches the certificate's settings for the domain and
// evaluates them. A fetch failure is a hard error: trust decisions must never
// silently proceed on a failed read.
func (m *TrustMatcher) MatchCertificate(ctx context.Context, ref domain.CertificateRef, sd domain.SettingsDomain, want domain.Disposition) (bool, error) {
	list, err := m.store.FetchTrustSettings(ctx, ref, sd)
	if err != nil {
		return false, errors.NewDomainError(errors.ErrSettingsFetchFailed,
			fmt.Errorf("certificate %q in %s domain: %w", ref.ID(), sd, err))
	}

	return m.Matches(list, want), nil
}
