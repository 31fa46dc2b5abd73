package trustset

import (
	"context"

	"github.com/sufield/trustset/internal/core/domain"
)

// storeBridge adapts the public Store contract onto the internal port the
// enumeration core consumes.
type storeBridge struct {
	store Store
}

func (b *storeBridge) FetchTrustedCertificates(ctx context.Context, sd domain.SettingsDomain) ([]domain.CertificateRef, error) {
	certs, err := b.store.TrustedCertificates(ctx, Domain(sd.String()))
	if err != nil {
		return nil, err
	}

	refs := make([]domain.CertificateRef, 0, len(certs))
	for _, c := range certs {
		refs = append(refs, domain.NewCertificateRef(c.ID, c.X509, nil))
	}
	return refs, nil
}

func (b *storeBridge) FetchTrustSettings(ctx context.Context, ref domain.CertificateRef, sd domain.SettingsDomain) (domain.TrustSettingsList, error) {
	cert := Certificate{ID: ref.ID(), X509: ref.X509()}
	records, err := b.store.TrustSettings(ctx, cert, Domain(sd.String()))
	if err != nil {
		return nil, err
	}

	list := make(domain.TrustSettingsList, 0, len(records))
	for _, rec := range records {
		list = append(list, domain.NewTrustSettingRecord(rec))
	}
	return list, nil
}
