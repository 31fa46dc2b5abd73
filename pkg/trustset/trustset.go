// Package trustset answers trust-disposition queries against a certificate
// store: which certificates has the administrator or user explicitly marked
// as trusted roots, and which are explicitly denied.
//
// The public API is four queries over two scopes:
//   - UserRoots / UserDisallowed: the per-user settings domain
//   - MachineRoots / MachineDisallowed: the machine admin domain, then the
//     machine system domain
//
// Matching reproduces the upstream trust authority's semantics exactly,
// including its least obvious rule: within one certificate's settings, the
// first unconstrained record with a readable trust-result decides the
// outcome even when it decides "no", and records carrying extra constraint
// properties are skipped rather than evaluated.
package trustset

import (
	"context"
	"crypto/x509"
	"log/slog"

	"github.com/sufield/trustset/internal/adapters/secondary/filestore"
	"github.com/sufield/trustset/internal/core/errors"
	"github.com/sufield/trustset/internal/core/ports"
	"github.com/sufield/trustset/internal/core/services"
)

// Domain identifies a tier of trust configuration scope.
type Domain string

const (
	DomainUser   Domain = "user"
	DomainAdmin  Domain = "admin"
	DomainSystem Domain = "system"
)

// Trust-result codes, matching the upstream trust authority. TrustRoot and
// Deny are the queryable dispositions; the rest appear in stored records.
const (
	ResultInvalid     int32 = 0
	ResultTrustRoot   int32 = 1
	ResultTrustAsRoot int32 = 2
	ResultDeny        int32 = 3
	ResultUnspecified int32 = 4
)

// SettingsRecord is one unordered property bag from a certificate's trust
// settings. The "trustResult" property, when present, holds one of the
// Result codes; any additional property makes the record constrained and the
// matcher skips it.
type SettingsRecord map[string]any

// Certificate pairs a stable store identity with an optional parsed
// certificate. The matching core never inspects X509; it is carried for
// callers exporting results.
type Certificate struct {
	ID   string
	X509 *x509.Certificate
}

// ErrNotConfigured is what a Store returns when a domain has no trust
// settings at all. It is normalized to an empty result, never surfaced.
var ErrNotConfigured = ports.ErrNotConfigured

// Store supplies trust settings to a Client. Implementations must return
// records in their stored order; order decides matches.
type Store interface {
	// TrustedCertificates returns every certificate with any trust settings
	// configured in the domain, or ErrNotConfigured.
	TrustedCertificates(ctx context.Context, d Domain) ([]Certificate, error)

	// TrustSettings returns the ordered settings records for one
	// certificate in one domain. A nil or empty slice with a nil error
	// means the certificate is configured with zero records, which counts
	// as implicit root trust.
	TrustSettings(ctx context.Context, cert Certificate, d Domain) ([]SettingsRecord, error)
}

// Client runs trust-disposition queries. It is safe for concurrent use.
type Client struct {
	enum *services.TrustEnumerator
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for query tracing. Defaults to
// slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// NewClient creates a Client over a caller-provided store.
func NewClient(store Store, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, &errors.ValidationError{
			Field:   "store",
			Value:   nil,
			Message: "store cannot be nil",
		}
	}
	return newClient(&storeBridge{store: store}, opts...), nil
}

// NewClientFromFile creates a Client reading trust settings from a YAML
// document. See the filestore documentation for the format.
func NewClientFromFile(path string, opts ...Option) (*Client, error) {
	fs, err := filestore.Load(path)
	if err != nil {
		return nil, err
	}
	return newClient(fs, opts...), nil
}

func newClient(store ports.TrustStore, opts ...Option) *Client {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{enum: services.NewTrustEnumerator(store, o.logger)}
}

// UserRoots returns the certificates the user domain explicitly trusts as
// roots.
func (c *Client) UserRoots(ctx context.Context) (*Result, error) {
	rs, err := c.enum.EnumerateUserRoot(ctx)
	if err != nil {
		return nil, err
	}
	return newResult(rs), nil
}

// UserDisallowed returns the certificates the user domain explicitly denies.
func (c *Client) UserDisallowed(ctx context.Context) (*Result, error) {
	rs, err := c.enum.EnumerateUserDisallowed(ctx)
	if err != nil {
		return nil, err
	}
	return newResult(rs), nil
}

// MachineRoots returns the certificates the admin and system domains
// explicitly trust as roots. If the admin pass fails, the system domain is
// never queried and the error is final.
func (c *Client) MachineRoots(ctx context.Context) (*Result, error) {
	rs, err := c.enum.EnumerateMachineRoot(ctx)
	if err != nil {
		return nil, err
	}
	return newResult(rs), nil
}

// MachineDisallowed returns the certificates the admin and system domains
// explicitly deny.
func (c *Client) MachineDisallowed(ctx context.Context) (*Result, error) {
	rs, err := c.enum.EnumerateMachineDisallowed(ctx)
	if err != nil {
		return nil, err
	}
	return newResult(rs), nil
}
