package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

const Fallback = "en"

//go:embed locales/*.json
var localeFS embed.FS

// Catalogs maps a locale code to its key/message table.
type Catalogs map[string]map[string]string

// LoadCatalogs parses every embedded locale file.
func LoadCatalogs() (Catalogs, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read locales: %w", err)
	}
	out := make(Catalogs, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if path.Ext(name) != ".json" {
			continue
		}
		raw, err := localeFS.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
		var messages map[string]string
		if err := json.Unmarshal(raw, &messages); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", name, err)
		}
		out[strings.TrimSuffix(name, ".json")] = messages
	}
	if _, ok := out[Fallback]; !ok {
		return nil, fmt.Errorf("i18n: missing %s catalog", Fallback)
	}
	return out, nil
}

// Codes lists the available locale codes, fallback first.
func (c Catalogs) Codes() []string {
	codes := make([]string, 0, len(c))
	for code := range c {
		if code != Fallback {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return append([]string{Fallback}, codes...)
}

// Supported normalizes raw (a BCP 47 tag or POSIX locale such as
// "id_ID.UTF-8") and reports the catalog it maps to.
func (c Catalogs) Supported(raw string) (string, bool) {
	raw = posixToBCP47(raw)
	if raw == "" {
		return "", false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", false
	}
	codes := c.Codes()
	tags := make([]language.Tag, 0, len(codes))
	for _, code := range codes {
		tags = append(tags, language.Make(code))
	}
	_, idx, conf := language.NewMatcher(tags).Match(tag)
	if conf == language.No {
		return "", false
	}
	return codes[idx], true
}

// Detect picks the first supported locale from LC_ALL, LC_MESSAGES and LANG,
// in that order. It returns Fallback when none matches.
func (c Catalogs) Detect(getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if code, ok := c.Supported(getenv(key)); ok {
			return code
		}
	}
	return Fallback
}

func posixToBCP47(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	if raw == "C" || raw == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(raw, "_", "-")
}

// Translator resolves message keys for the active locale, falling back to
// English and then to the key itself.
type Translator struct {
	mu       sync.RWMutex
	catalogs Catalogs
	locale   string
}

func NewTranslator(catalogs Catalogs, locale string) *Translator {
	t := &Translator{catalogs: catalogs, locale: Fallback}
	t.SetLocale(locale)
	return t
}

func (t *Translator) SetLocale(code string) bool {
	normalized, ok := t.catalogs.Supported(code)
	if !ok {
		return false
	}
	t.mu.Lock()
	t.locale = normalized
	t.mu.Unlock()
	return true
}

func (t *Translator) Locale() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.locale
}

func (t *Translator) T(key string, args ...any) string {
	t.mu.RLock()
	msg, ok := t.catalogs[t.locale][key]
	t.mu.RUnlock()
	if !ok {
		msg, ok = t.catalogs[Fallback][key]
	}
	if !ok {
		msg = key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
