package trustset

import (
	"crypto/x509"
	"fmt"

	"github.com/spiffe/go-spiffe/v2/bundle/x509bundle"
	"github.com/spiffe/go-spiffe/v2/spiffeid"

	"github.com/sufield/trustset/internal/core/domain"
)

// Result is the outcome of one query. It is either found with at least one
// certificate, or absent; callers never observe a found-but-empty result.
// Absence covers both "nothing configured" and "configured but nothing
// matched"; the two are indistinguishable.
type Result struct {
	refs []domain.CertificateRef
}

func newResult(rs *domain.ResultSet) *Result {
	if rs == nil {
		return &Result{}
	}
	return &Result{refs: rs.Refs()}
}

// Found reports whether the query matched anything.
func (r *Result) Found() bool {
	return len(r.refs) > 0
}

// Len returns the number of matched certificates.
func (r *Result) Len() int {
	return len(r.refs)
}

// IDs returns the store identities of the matched certificates, in the order
// the domain passes produced them.
func (r *Result) IDs() []string {
	if len(r.refs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(r.refs))
	for _, ref := range r.refs {
		ids = append(ids, ref.ID())
	}
	return ids
}

// Certificates returns the parsed certificates for matches that carry one.
// Identity-only matches are omitted.
func (r *Result) Certificates() []*x509.Certificate {
	var certs []*x509.Certificate
	for _, ref := range r.refs {
		if c := ref.X509(); c != nil {
			certs = append(certs, c)
		}
	}
	return certs
}

// CertPool returns the matched certificates as an x509.CertPool, or nil when
// the result is absent or carries no parsed certificates.
func (r *Result) CertPool() *x509.CertPool {
	certs := r.Certificates()
	if len(certs) == 0 {
		return nil
	}
	pool := x509.NewCertPool()
	for _, c := range certs {
		pool.AddCert(c)
	}
	return pool
}

// Bundle exports the matched certificates as an X.509 bundle for the given
// trust domain, for handing to SPIFFE-aware consumers.
func (r *Result) Bundle(trustDomain string) (*x509bundle.Bundle, error) {
	td, err := spiffeid.TrustDomainFromString(trustDomain)
	if err != nil {
		return nil, fmt.Errorf("invalid trust domain: %w", err)
	}
	return x509bundle.FromX509Authorities(td, r.Certificates()), nil
}

// Close releases the references held by a found result. It is a no-op for
// results whose store does no reference accounting.
func (r *Result) Close() {
	for _, ref := range r.refs {
		ref.Release()
	}
	r.refs = nil
}
