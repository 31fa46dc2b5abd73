// Package filestore provides a TrustStore backed by a YAML document, the
// format the CLI and integration fixtures use.
//
// Document shape:
//
//	domains:
//	  user:
//	    - id: corp-root
//	      pem: |
//	        -----BEGIN CERTIFICATE-----
//	        ...
//	      settings:
//	        - trustResult: 1
//	        - trustResult: 3
//	          policy: ssl
//
// A domain key that is present, even with no certificates, counts as
// configured. An entry without a settings key has an empty settings list,
// which the matcher reads as implicit root trust. Record keys beyond
// trustResult are constraint properties and make the record constrained.
package filestore

import (
	"context"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/sufield/trustset/internal/core/domain"
	"github.com/sufield/trustset/internal/core/ports"
)

type fileDocument struct {
	Domains map[string][]fileEntry `mapstructure:"domains"`
}

type fileEntry struct {
	ID       string           `mapstructure:"id"`
	PEM      string           `mapstructure:"pem"`
	Settings []map[string]any `mapstructure:"settings"`
}

type entry struct {
	id       string
	cert     *x509.Certificate
	settings domain.TrustSettingsList
}

// Store is a read-only trust store loaded from a YAML document.
type Store struct {
	domains map[domain.SettingsDomain][]entry
}

// Load reads and parses the document at path.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trust settings file: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse trust settings file %s: %w", path, err)
	}
	return s, nil
}

// Parse reads a YAML trust-settings document.
func Parse(r io.Reader) (*Store, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	// Decode to a generic tree first so record property keys keep their
	// exact spelling, then shape it with mapstructure.
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	var doc fileDocument
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("build decoder: %w", err)
	}
	if err := dec.Decode(tree); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	s := &Store{domains: make(map[domain.SettingsDomain][]entry)}
	for name, fileEntries := range doc.Domains {
		sd, err := domain.ParseSettingsDomain(name)
		if err != nil {
			return nil, err
		}

		seen := make(map[string]bool)
		entries := make([]entry, 0, len(fileEntries))
		for _, fe := range fileEntries {
			e, err := buildEntry(fe)
			if err != nil {
				return nil, fmt.Errorf("%s domain: %w", sd, err)
			}
			if seen[e.id] {
				return nil, fmt.Errorf("%s domain: duplicate certificate id %q", sd, e.id)
			}
			seen[e.id] = true
			entries = append(entries, e)
		}
		s.domains[sd] = entries
	}
	return s, nil
}

func buildEntry(fe fileEntry) (entry, error) {
	if fe.ID == "" {
		return entry{}, fmt.Errorf("certificate entry missing id")
	}

	var cert *x509.Certificate
	if fe.PEM != "" {
		block, _ := pem.Decode([]byte(fe.PEM))
		if block == nil || block.Type != "CERTIFICATE" {
			return entry{}, fmt.Errorf("certificate %q: pem is not a CERTIFICATE block", fe.ID)
		}
		parsed, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return entry{}, fmt.Errorf("certificate %q: %w", fe.ID, err)
		}
		cert = parsed
	}

	settings := make(domain.TrustSettingsList, 0, len(fe.Settings))
	for _, props := range fe.Settings {
		settings = append(settings, domain.NewTrustSettingRecord(props))
	}

	return entry{id: fe.ID, cert: cert, settings: settings}, nil
}

// FetchTrustedCertificates implements ports.TrustStore.
func (s *Store) FetchTrustedCertificates(_ context.Context, sd domain.SettingsDomain) ([]domain.CertificateRef, error) {
	entries, ok := s.domains[sd]
	if !ok {
		return nil, fmt.Errorf("%s domain: %w", sd, ports.ErrNotConfigured)
	}

	refs := make([]domain.CertificateRef, 0, len(entries))
	for _, e := range entries {
		refs = append(refs, domain.NewCertificateRef(e.id, e.cert, nil))
	}
	return refs, nil
}

// FetchTrustSettings implements ports.TrustStore.
func (s *Store) FetchTrustSettings(_ context.Context, ref domain.CertificateRef, sd domain.SettingsDomain) (domain.TrustSettingsList, error) {
	for _, e := range s.domains[sd] {
		if e.id == ref.ID() {
			list := make(domain.TrustSettingsList, len(e.settings))
			copy(list, e.settings)
			return list, nil
		}
	}
	return nil, fmt.Errorf("certificate %q not in %s domain: %w", ref.ID(), sd, ports.ErrStoreUnavailable)
}
