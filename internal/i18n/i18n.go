package i18n

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when negotiation finds nothing better. The API's
// user-facing strings are Spanish first.
const DefaultLanguage = "es"

//go:embed locales/messages.yaml
var messagesYAML string

// Catalog holds the parsed message catalogs keyed by language code and
// resolves dot-separated keys to localized strings.
type Catalog struct {
	messages    map[string]map[string]any
	defaultLang string
	supported   []string
	matcher     language.Matcher
}

// Option configures catalog construction.
type Option func(*Catalog)

// WithDefaultLanguage overrides the fallback language. The language must be
// present in the catalog source or New fails.
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) {
		if lang != "" {
			c.defaultLang = strings.ToLower(lang)
		}
	}
}

// New parses the embedded catalog source.
func New(opts ...Option) (*Catalog, error) {
	return newFromYAML(messagesYAML, opts...)
}

func newFromYAML(source string, opts ...Option) (*Catalog, error) {
	var data map[string]any
	if err := yaml.Unmarshal([]byte(source), &data); err != nil {
		return nil, fmt.Errorf("i18n: parse catalog: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("i18n: catalog source is empty")
	}

	messages := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		table, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("i18n: invalid catalog for language %q: expected map, got %T", lang, val)
		}
		messages[strings.ToLower(lang)] = table
	}

	c := &Catalog{
		messages:    messages,
		defaultLang: DefaultLanguage,
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, ok := c.messages[c.defaultLang]; !ok {
		return nil, fmt.Errorf("i18n: default language %q missing from catalog", c.defaultLang)
	}

	// The matcher prefers earlier tags on ties, so the default goes first.
	c.supported = append(c.supported, c.defaultLang)
	for lang := range c.messages {
		if lang != c.defaultLang {
			c.supported = append(c.supported, lang)
		}
	}
	sort.Strings(c.supported[1:])

	tags := make([]language.Tag, 0, len(c.supported))
	for _, lang := range c.supported {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("i18n: invalid language code %q: %w", lang, err)
		}
		tags = append(tags, tag)
	}
	c.matcher = language.NewMatcher(tags)

	return c, nil
}

// Negotiate picks the best supported language for an Accept-Language header.
// Empty or unparseable headers fall back to the default language.
func (c *Catalog) Negotiate(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return c.defaultLang
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return c.defaultLang
	}
	_, idx, conf := c.matcher.Match(desired...)
	if conf == language.No {
		return c.defaultLang
	}
	return c.supported[idx]
}

// T resolves key in the given language, falling back to the default language
// and finally to the key itself so a missing entry never blanks a response.
func (c *Catalog) T(lang, key string) string {
	if msg, ok := c.lookup(strings.ToLower(lang), key); ok {
		return msg
	}
	if msg, ok := c.lookup(c.defaultLang, key); ok {
		return msg
	}
	return key
}

// SupportedLanguages lists catalog languages, default first.
func (c *Catalog) SupportedLanguages() []string {
	out := make([]string, len(c.supported))
	copy(out, c.supported)
	return out
}

// lookup traverses nested maps using dot-separated keys, so
// "error.disabled" resolves messages["error"]["disabled"].
func (c *Catalog) lookup(lang, key string) (string, bool) {
	table, ok := c.messages[lang]
	if !ok {
		return "", false
	}

	parts := strings.Split(key, ".")
	current := table
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			s, ok := val.(string)
			return s, ok
		}
		current, ok = val.(map[string]any)
		if !ok {
			return "", false
		}
	}
	return "", false
}
