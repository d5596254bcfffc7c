package i18n

import "testing"

func mustCatalogs(t *testing.T) Catalogs {
	t.Helper()
	c, err := LoadCatalogs()
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return c
}

func TestCatalogsAreComplete(t *testing.T) {
	c := mustCatalogs(t)
	if got := c.Codes(); len(got) != 2 || got[0] != "en" || got[1] != "id" {
		t.Fatalf("unexpected codes: %v", got)
	}
	for key := range c["id"] {
		if _, ok := c["en"][key]; !ok {
			t.Errorf("key %q missing from en catalog", key)
		}
	}
}

func TestSupported(t *testing.T) {
	c := mustCatalogs(t)
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"en", "en", true},
		{"en_US.UTF-8", "en", true},
		{"id_ID.UTF-8", "id", true},
		{"ID", "id", true},
		{"fr_FR", "", false},
		{"C", "", false},
		{"", "", false},
		{"???", "", false},
	}
	for _, tc := range cases {
		got, ok := c.Supported(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("Supported(%q) = %q,%v want %q,%v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDetectOrder(t *testing.T) {
	c := mustCatalogs(t)
	env := map[string]string{"LC_ALL": "", "LC_MESSAGES": "id_ID.UTF-8", "LANG": "en_US.UTF-8"}
	if got := c.Detect(func(k string) string { return env[k] }); got != "id" {
		t.Fatalf("expected id, got %s", got)
	}
	env = map[string]string{"LANG": "de_DE.UTF-8"}
	if got := c.Detect(func(k string) string { return env[k] }); got != Fallback {
		t.Fatalf("expected fallback, got %s", got)
	}
}

func TestTranslatorFallbackChain(t *testing.T) {
	tr := NewTranslator(mustCatalogs(t), "id")
	if got := tr.T("mode.focus"); got != "Fokus" {
		t.Fatalf("expected Indonesian text, got %q", got)
	}
	if got := tr.T("help.body"); got == "help.body" || got == "" {
		t.Fatalf("expected english fallback for help body, got %q", got)
	}
	if got := tr.T("no.such.key"); got != "no.such.key" {
		t.Fatalf("expected key echo, got %q", got)
	}
	if got := tr.T("tasks.progress", 2, 5); got != "2 dari 5 selesai" {
		t.Fatalf("unexpected formatted text %q", got)
	}
	if tr.SetLocale("xx") || tr.Locale() != "id" {
		t.Fatal("unsupported locale must be rejected")
	}
}
