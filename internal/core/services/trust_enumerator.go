package services

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sufield/trustset/internal/core/domain"
	"github.com/sufield/trustset/internal/core/errors"
	"github.com/sufield/trustset/internal/core/ports"
)

// TrustEnumerator walks a domain's trust-configured certificates, matches
// each against a requested disposition, and accumulates matches into a
// result set. Composed queries run sequential domain passes into the same
// accumulator; User-scope queries visit the user domain, Machine-scope
// queries visit admin then system.
//
// An enumerator is safe for concurrent use; each query carries its own
// accumulator through one synchronous call chain.
type TrustEnumerator struct {
	store   ports.TrustStore
	matcher *TrustMatcher
	logger  *slog.Logger
}

// NewTrustEnumerator creates an enumerator over the given store. A nil
// logger falls back to slog.Default.
func NewTrustEnumerator(store ports.TrustStore, logger *slog.Logger) *TrustEnumerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrustEnumerator{
		store:   store,
		matcher: NewTrustMatcher(store),
		logger:  logger,
	}
}

// EnumerateDomain runs one domain pass, accumulating matches into acc. Pass
// a nil acc to start a fresh query; pass the result of a previous call to
// continue a composed query.
//
// The returned set is nil when the pass failed or when nothing has been
// accumulated — callers cannot distinguish "nothing configured" from
// "explicitly empty" from "aborted after partial matches". A hard error
// discards everything accumulated so far, including matches from earlier
// passes of the same query.
func (e *TrustEnumerator) EnumerateDomain(ctx context.Context, sd domain.SettingsDomain, want domain.Disposition, acc *domain.ResultSet) (*domain.ResultSet, error) {
	if !sd.IsValid() {
		return nil, errors.ErrInvalidDomain
	}
	if !want.IsQueryable() {
		return nil, errors.ErrInvalidDisposition
	}
	if acc == nil {
		acc = domain.NewResultSet()
	}

	timer := newPassTimer(sd, want)
	defer timer.done()
	enumerationPasses.WithLabelValues(sd.String(), want.String()).Inc()

	refs, err := e.store.FetchTrustedCertificates(ctx, sd)
	if err != nil {
		if stderrors.Is(err, ports.ErrNotConfigured) {
			// Nothing configured for this domain: a successful empty pass.
			return collapseEmpty(acc), nil
		}
		storeFailures.WithLabelValues(sd.String()).Inc()
		acc.Discard()
		return nil, classifyStoreError(err)
	}
	defer domain.ReleaseAll(refs)

	for _, ref := range refs {
		isMatch, err := e.matcher.MatchCertificate(ctx, ref, sd, want)
		if err != nil {
			// Abort the scan; partial accumulation is discarded.
			storeFailures.WithLabelValues(sd.String()).Inc()
			acc.Discard()
			return nil, err
		}
		if isMatch {
			matchedCertificates.WithLabelValues(sd.String(), want.String()).Inc()
			acc.Append(ref)
		}
	}

	return collapseEmpty(acc), nil
}

// EnumerateUserRoot returns the certificates the user domain explicitly
// trusts as roots.
func (e *TrustEnumerator) EnumerateUserRoot(ctx context.Context) (*domain.ResultSet, error) {
	return e.enumerateUser(ctx, "user-root", domain.DispositionTrustRoot)
}

// EnumerateUserDisallowed returns the certificates the user domain
// explicitly denies.
func (e *TrustEnumerator) EnumerateUserDisallowed(ctx context.Context) (*domain.ResultSet, error) {
	return e.enumerateUser(ctx, "user-disallowed", domain.DispositionDeny)
}

// EnumerateMachineRoot returns the certificates the admin and system domains
// explicitly trust as roots. The system domain is visited only when the
// admin pass succeeded.
func (e *TrustEnumerator) EnumerateMachineRoot(ctx context.Context) (*domain.ResultSet, error) {
	return e.enumerateMachine(ctx, "machine-root", domain.DispositionTrustRoot)
}

// EnumerateMachineDisallowed returns the certificates the admin and system
// domains explicitly deny. The system domain is visited only when the admin
// pass succeeded.
func (e *TrustEnumerator) EnumerateMachineDisallowed(ctx context.Context) (*domain.ResultSet, error) {
	return e.enumerateMachine(ctx, "machine-disallowed", domain.DispositionDeny)
}

func (e *TrustEnumerator) enumerateUser(ctx context.Context, op string, want domain.Disposition) (*domain.ResultSet, error) {
	logger := e.queryLogger(op)

	rs, err := e.EnumerateDomain(ctx, domain.SettingsDomainUser, want, nil)
	if err != nil {
		logger.Error("enumeration failed", "domain", domain.SettingsDomainUser.String(), "error", err)
		return nil, err
	}

	logger.Debug("enumeration complete", "matches", rs.Len())
	return rs, nil
}

func (e *TrustEnumerator) enumerateMachine(ctx context.Context, op string, want domain.Disposition) (*domain.ResultSet, error) {
	logger := e.queryLogger(op)

	rs, err := e.EnumerateDomain(ctx, domain.SettingsDomainAdmin, want, nil)
	if err != nil {
		logger.Error("enumeration failed", "domain", domain.SettingsDomainAdmin.String(), "error", err)
		return nil, err
	}

	rs, err = e.EnumerateDomain(ctx, domain.SettingsDomainSystem, want, rs)
	if err != nil {
		logger.Error("enumeration failed", "domain", domain.SettingsDomainSystem.String(), "error", err)
		return nil, err
	}

	logger.Debug("enumeration complete", "matches", rs.Len())
	return rs, nil
}

func (e *TrustEnumerator) queryLogger(op string) *slog.Logger {
	return e.logger.With("op", op, "query_id", uuid.NewString())
}

// collapseEmpty turns an empty accumulator into an absent result, releasing
// whatever bookkeeping it holds.
func collapseEmpty(acc *domain.ResultSet) *domain.ResultSet {
	if acc.IsEmpty() {
		acc.Discard()
		return nil
	}
	return acc
}

func classifyStoreError(err error) error {
	if stderrors.Is(err, ports.ErrAccessDenied) {
		return errors.NewDomainError(errors.ErrAccessDenied, err)
	}
	return errors.NewDomainError(errors.ErrStoreUnavailable, err)
}
