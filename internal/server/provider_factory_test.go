package server

import (
	"testing"

	"github.com/gng-scout/athlete-directory-service/internal/config"
	"github.com/gng-scout/athlete-directory-service/internal/providers/airtable"
	"github.com/gng-scout/athlete-directory-service/internal/providers/fixture"
	"github.com/gng-scout/athlete-directory-service/internal/teststubs"
)

func TestProviderFactoryBuildsWithDefaultInterval(t *testing.T) {
	factory := newProviderFactory(nil, nil)
	prov := factory.build(config.Config{Provider: "fixture"})
	if prov == nil {
		t.Fatalf("expected provider")
	}
	if c, ok := prov.(interface{ Close() }); ok {
		c.Close()
	} else {
		t.Fatalf("expected closable provider, got %T", prov)
	}
}

func TestSelectProvider(t *testing.T) {
	configured := config.AirtableConfig{APIKey: "key", BaseID: "app123", BaseURL: "http://example.com"}

	cases := []struct {
		name     string
		cfg      config.Config
		wantName string
		airtable bool
	}{
		{name: "default", cfg: config.Config{}, wantName: "fixture"},
		{name: "fixture", cfg: config.Config{Provider: "Fixture"}, wantName: "fixture"},
		{name: "unknown", cfg: config.Config{Provider: "espn"}, wantName: "fixture"},
		{name: "airtable without credentials", cfg: config.Config{Provider: "airtable"}, wantName: "fixture"},
		{name: "airtable", cfg: config.Config{Provider: "airtable", Airtable: configured}, wantName: "airtable", airtable: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider, name := selectProvider(tc.cfg, nil)
			if name != tc.wantName {
				t.Fatalf("expected name %s, got %s", tc.wantName, name)
			}
			_, isAirtable := provider.(*airtable.Client)
			_, isFixture := provider.(*fixture.Provider)
			if isAirtable != tc.airtable || isFixture == tc.airtable {
				t.Fatalf("unexpected provider type %T", provider)
			}
		})
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName(" Airtable ", nil); got != "airtable" {
		t.Fatalf("expected airtable, got %s", got)
	}
	if got := normalizeProviderName("", &teststubs.StubProvider{}); got != "*teststubs.stubprovider" {
		t.Fatalf("expected derived name, got %s", got)
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("expected fallback name, got %s", got)
	}
}
