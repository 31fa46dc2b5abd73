// Package memstore provides an in-memory TrustStore for tests and for
// callers that assemble trust settings programmatically.
package memstore

import (
	"context"
	"crypto/x509"
	"fmt"
	"sync"

	"github.com/sufield/trustset/internal/core/domain"
	"github.com/sufield/trustset/internal/core/ports"
)

type entry struct {
	id       string
	cert     *x509.Certificate
	settings domain.TrustSettingsList
}

// Store is an in-memory trust store. Besides implementing ports.TrustStore
// it tracks fetch call counts and outstanding certificate references, so
// tests can assert both domain-composition order and the scoped-release
// discipline.
type Store struct {
	mu sync.Mutex

	entries map[domain.SettingsDomain][]entry

	certFetchErr map[domain.SettingsDomain]error
	settingsErr  map[string]error

	certFetchCalls map[domain.SettingsDomain]int
	settingsCalls  map[string]int

	outstanding  map[string]int
	overReleased bool
}

// New creates an empty store. Every domain starts unconfigured: fetching it
// returns ports.ErrNotConfigured until Add or Configure is called for it.
func New() *Store {
	return &Store{
		entries:        make(map[domain.SettingsDomain][]entry),
		certFetchErr:   make(map[domain.SettingsDomain]error),
		settingsErr:    make(map[string]error),
		certFetchCalls: make(map[domain.SettingsDomain]int),
		settingsCalls:  make(map[string]int),
		outstanding:    make(map[string]int),
	}
}

// Configure marks a domain as configured without adding certificates.
func (s *Store) Configure(sd domain.SettingsDomain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[sd]; !ok {
		s.entries[sd] = nil
	}
}

// Add registers a certificate in a domain with the given setting records, in
// order. Zero records means an empty settings list, which the matcher reads
// as implicit root trust. cert may be nil for identity-only entries.
func (s *Store) Add(sd domain.SettingsDomain, id string, cert *x509.Certificate, records ...domain.TrustSettingRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sd] = append(s.entries[sd], entry{
		id:       id,
		cert:     cert,
		settings: domain.TrustSettingsList(records),
	})
}

// FailCertificates makes FetchTrustedCertificates for the domain return err.
func (s *Store) FailCertificates(sd domain.SettingsDomain, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.certFetchErr[sd] = err
}

// FailSettings makes FetchTrustSettings for the certificate id return err.
func (s *Store) FailSettings(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settingsErr[id] = err
}

// FetchTrustedCertificates implements ports.TrustStore. Returned refs are
// borrowed and accounted: the caller owes one Release per ref.
func (s *Store) FetchTrustedCertificates(_ context.Context, sd domain.SettingsDomain) ([]domain.CertificateRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.certFetchCalls[sd]++

	if err := s.certFetchErr[sd]; err != nil {
		return nil, err
	}

	entries, ok := s.entries[sd]
	if !ok {
		return nil, fmt.Errorf("%s domain: %w", sd, ports.ErrNotConfigured)
	}

	refs := make([]domain.CertificateRef, 0, len(entries))
	for _, e := range entries {
		s.outstanding[e.id]++
		refs = append(refs, domain.NewCertificateRef(e.id, e.cert, s))
	}
	return refs, nil
}

// FetchTrustSettings implements ports.TrustStore.
func (s *Store) FetchTrustSettings(_ context.Context, ref domain.CertificateRef, sd domain.SettingsDomain) (domain.TrustSettingsList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settingsCalls[ref.ID()]++

	if err := s.settingsErr[ref.ID()]; err != nil {
		return nil, err
	}

	for _, e := range s.entries[sd] {
		if e.id == ref.ID() {
			list := make(domain.TrustSettingsList, len(e.settings))
			copy(list, e.settings)
			return list, nil
		}
	}
	return nil, fmt.Errorf("certificate %q not in %s domain: %w", ref.ID(), sd, ports.ErrStoreUnavailable)
}

// Retain implements domain.RefAccounting.
func (s *Store) Retain(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outstanding[id]++
}

// Release implements domain.RefAccounting.
func (s *Store) Release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outstanding[id]--
	if s.outstanding[id] < 0 {
		s.overReleased = true
	}
}

// OutstandingRefs returns the number of references fetched or retained but
// not yet released.
func (s *Store) OutstandingRefs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.outstanding {
		total += n
	}
	return total
}

// OverReleased reports whether any reference was released more times than it
// was taken.
func (s *Store) OverReleased() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overReleased
}

// CertificateFetchCalls returns how many times the domain's certificate set
// was fetched.
func (s *Store) CertificateFetchCalls(sd domain.SettingsDomain) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.certFetchCalls[sd]
}

// SettingsFetchCalls returns how many times the certificate's settings were
// fetched.
func (s *Store) SettingsFetchCalls(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settingsCalls[id]
}
