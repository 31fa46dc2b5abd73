package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufield/trustset/internal/adapters/secondary/memstore"
	"github.com/sufield/trustset/internal/core/domain"
	"github.com/sufield/trustset/internal/core/ports"
)

func record(props map[string]any) domain.TrustSettingRecord {
	return domain.NewTrustSettingRecord(props)
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name  string
		list  domain.TrustSettingsList
		want  domain.Disposition
		match bool
	}{
		{
			name:  "empty list counts as trust root",
			list:  nil,
			want:  domain.DispositionTrustRoot,
			match: true,
		},
		{
			name:  "empty list never matches deny",
			list:  nil,
			want:  domain.DispositionDeny,
			match: false,
		},
		{
			name:  "single record matching code",
			list:  domain.TrustSettingsList{domain.NewResultRecord(domain.DispositionDeny)},
			want:  domain.DispositionDeny,
			match: true,
		},
		{
			name:  "single record non-matching code",
			list:  domain.TrustSettingsList{domain.NewResultRecord(domain.DispositionDeny)},
			want:  domain.DispositionTrustRoot,
			match: false,
		},
		{
			name: "first decisive record wins even when it says no",
			list: domain.TrustSettingsList{
				domain.NewResultRecord(domain.DispositionDeny),
				domain.NewResultRecord(domain.DispositionTrustRoot),
			},
			want:  domain.DispositionTrustRoot,
			match: false,
		},
		{
			name: "constrained record is skipped, not evaluated",
			list: domain.TrustSettingsList{
				record(map[string]any{domain.PropertyTrustResult: 1, domain.PropertyPolicy: "ssl"}),
				domain.NewResultRecord(domain.DispositionTrustRoot),
			},
			want:  domain.DispositionTrustRoot,
			match: true,
		},
		{
			name: "constrained record does not match deny either",
			list: domain.TrustSettingsList{
				record(map[string]any{domain.PropertyTrustResult: 1, domain.PropertyPolicy: "ssl"}),
				domain.NewResultRecord(domain.DispositionTrustRoot),
			},
			want:  domain.DispositionDeny,
			match: false,
		},
		{
			name: "malformed trust-result is skipped",
			list: domain.TrustSettingsList{
				record(map[string]any{domain.PropertyTrustResult: "not-a-code"}),
				domain.NewResultRecord(domain.DispositionDeny),
			},
			want:  domain.DispositionDeny,
			match: true,
		},
		{
			name: "out-of-range trust-result is skipped, not truncated to root",
			list: domain.TrustSettingsList{
				record(map[string]any{domain.PropertyTrustResult: uint64(1<<32 | 1)}),
				domain.NewResultRecord(domain.DispositionDeny),
			},
			want:  domain.DispositionTrustRoot,
			match: false,
		},
		{
			name: "deny record decides after out-of-range trust-result",
			list: domain.TrustSettingsList{
				record(map[string]any{domain.PropertyTrustResult: uint64(1<<32 | 1)}),
				domain.NewResultRecord(domain.DispositionDeny),
			},
			want:  domain.DispositionDeny,
			match: true,
		},
		{
			name: "single non-result property is skipped",
			list: domain.TrustSettingsList{
				record(map[string]any{domain.PropertyPolicy: "ssl"}),
				domain.NewResultRecord(domain.DispositionTrustRoot),
			},
			want:  domain.DispositionTrustRoot,
			match: true,
		},
		{
			name: "no decisive record means no match",
			list: domain.TrustSettingsList{
				record(map[string]any{domain.PropertyTrustResult: 1, domain.PropertyPolicy: "ssl"}),
				record(map[string]any{domain.PropertyTrustResult: "bad"}),
			},
			want:  domain.DispositionTrustRoot,
			match: false,
		},
		{
			name: "non-empty list with no records matching root is not implicit trust",
			list: domain.TrustSettingsList{
				record(map[string]any{domain.PropertyPolicy: "ssl"}),
			},
			want:  domain.DispositionTrustRoot,
			match: false,
		},
		{
			name: "trust-as-root code does not match root query",
			list: domain.TrustSettingsList{domain.NewResultRecord(domain.DispositionTrustAsRoot)},
			want:  domain.DispositionTrustRoot,
			match: false,
		},
	}

	matcher := NewTrustMatcher(memstore.New())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, matcher.Matches(tt.list, tt.want))
		})
	}
}

func TestMatchCertificate(t *testing.T) {
	ctx := context.Background()

	t.Run("fetch and match", func(t *testing.T) {
		store := memstore.New()
		store.Add(domain.SettingsDomainUser, "root-ca", nil,
			domain.NewResultRecord(domain.DispositionTrustRoot))
		matcher := NewTrustMatcher(store)

		refs, err := store.FetchTrustedCertificates(ctx, domain.SettingsDomainUser)
		require.NoError(t, err)
		defer domain.ReleaseAll(refs)
		require.Len(t, refs, 1)

		isMatch, err := matcher.MatchCertificate(ctx, refs[0], domain.SettingsDomainUser, domain.DispositionTrustRoot)
		require.NoError(t, err)
		assert.True(t, isMatch)

		isMatch, err = matcher.MatchCertificate(ctx, refs[0], domain.SettingsDomainUser, domain.DispositionDeny)
		require.NoError(t, err)
		assert.False(t, isMatch)
	})

	t.Run("fetch failure is a hard error", func(t *testing.T) {
		store := memstore.New()
		store.Add(domain.SettingsDomainUser, "broken", nil)
		store.FailSettings("broken", ports.ErrStoreUnavailable)
		matcher := NewTrustMatcher(store)

		refs, err := store.FetchTrustedCertificates(ctx, domain.SettingsDomainUser)
		require.NoError(t, err)
		defer domain.ReleaseAll(refs)

		_, err = matcher.MatchCertificate(ctx, refs[0], domain.SettingsDomainUser, domain.DispositionTrustRoot)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ports.ErrStoreUnavailable))
	})
}
