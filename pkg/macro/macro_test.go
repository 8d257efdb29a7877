package macro

import (
	"strings"
	"testing"
)

func TestDictionaryResolvesLocalizationMacros(t *testing.T) {
	dict := NewDictionary(
		WithResources("en-US", map[string]string{"General.Name": "Name", "general.email": "E-mail"}),
		WithResources("cs-cz", map[string]string{"general.name": "Jméno"}),
		WithCulture("cs-CZ"),
	)

	cases := map[string]string{
		"{$general.name$}":              "Jméno",
		"{$ general.email $}":           "E-mail",
		"Your {$general.name$}:":        "Your Jméno:",
		"{$missing.key$}":               "missing.key",
		"{$=Name|cs-cz=Jméno|de-de=X$}": "Jméno",
		"{$=Fallback|de-de=X$}":         "Fallback",
		"plain caption":                 "plain caption",
	}
	for input, want := range cases {
		if got := dict.Resolve(input); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDictionaryResolvesDataMacros(t *testing.T) {
	dict := NewDictionary(WithValues(map[string]string{"SiteName": "Corporate"}))
	got := dict.Resolve("Contact {% SiteName |(identity)GlobalAdministrator %}{% Unknown %}")
	if got != "Contact Corporate" {
		t.Fatalf("Resolve = %q", got)
	}
}

func TestSanitizedStripsMarkup(t *testing.T) {
	resolver := Sanitized(NewDictionary(WithResources("en-us", map[string]string{"rich": "<strong>Full</strong> name &amp; title"})))
	if got := resolver.Resolve("{$rich$}"); got != "Full name & title" {
		t.Fatalf("Resolve = %q", got)
	}
	if got := Sanitized(nil).Resolve("Plain"); got != "Plain" {
		t.Fatalf("Resolve = %q", got)
	}
}

func TestLoadResources(t *testing.T) {
	table, err := LoadResources(strings.NewReader("en-us:\n  general.name: Name\n"))
	if err != nil {
		t.Fatalf("LoadResources: %v", err)
	}
	dict := NewDictionary(WithResourceTable(table))
	if got := dict.Resolve("{$general.name$}"); got != "Name" {
		t.Fatalf("Resolve = %q", got)
	}
	if _, err := LoadResources(strings.NewReader("- not\n- a map\n")); err == nil {
		t.Fatalf("expected error for non-map resources")
	}
}
