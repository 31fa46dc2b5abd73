package domain

import "crypto/x509"

// RefAccounting receives handle lifecycle events for certificate references
// handed out by a store. Stores that track outstanding references implement
// it; stores with nothing to account for leave it nil.
type RefAccounting interface {
	Retain(id string)
	Release(id string)
}

// CertificateRef is an opaque, ownership-tagged handle to a certificate held
// by a store. The core never inspects the certificate contents; it only
// carries the ref between the store and the caller.
//
// Refs returned by a store fetch are borrowed: the enumerator releases them
// on every exit path once the pass is over. A ref appended to a ResultSet is
// retained first, so the set owns its own reference independent of the
// borrowed one.
type CertificateRef struct {
	id   string
	cert *x509.Certificate
	acct RefAccounting
}

// NewCertificateRef creates a ref with the given stable identity. cert may be
// nil for stores that track certificates by identity only. acct may be nil.
func NewCertificateRef(id string, cert *x509.Certificate, acct RefAccounting) CertificateRef {
	return CertificateRef{id: id, cert: cert, acct: acct}
}

// ID returns the ref's stable identity within its store.
func (r CertificateRef) ID() string {
	return r.id
}

// X509 returns the parsed certificate, or nil when the store tracks the
// certificate by identity only.
func (r CertificateRef) X509() *x509.Certificate {
	return r.cert
}

// Retain takes an additional reference and returns a ref owned by the caller.
func (r CertificateRef) Retain() CertificateRef {
	if r.acct != nil {
		r.acct.Retain(r.id)
	}
	return r
}

// Release gives the reference back. Exactly one Release is owed per fetched
// or retained ref; the enumerator guarantees it on every exit path.
func (r CertificateRef) Release() {
	if r.acct != nil {
		r.acct.Release(r.id)
	}
}

// ReleaseAll releases a borrowed batch of refs, typically one store fetch.
func ReleaseAll(refs []CertificateRef) {
	for _, r := range refs {
		r.Release()
	}
}
