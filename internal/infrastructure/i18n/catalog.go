package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"golang.org/x/text/language"
)

//go:embed locales/active.*.ftl
var localeFS embed.FS

// Resource and resolution failures. All are local to a single load or
// resolve call.
var (
	ErrResourceNotFound  = errors.New("i18n: resource not found")
	ErrMalformedResource = errors.New("i18n: malformed resource")
	ErrMissingKey        = errors.New("i18n: missing key")
	ErrMissingArgument   = errors.New("i18n: missing argument")
)

// Catalog is the complete key→template mapping for one locale. It is
// immutable after load and safe for any number of concurrent readers; there
// is no cross-locale fallback at this level (that is Translator's job), so a
// missing key is always observable.
type Catalog struct {
	locale   language.Tag
	messages map[string]string
}

// LoadCatalog loads the embedded resource for a locale.
func LoadCatalog(locale string) (*Catalog, error) {
	return LoadCatalogFS(localeFS, locale)
}

// LoadCatalogFS loads `locales/active.<locale>.ftl` from fsys. It returns
// ErrResourceNotFound when the locale has no resource and ErrMalformedResource
// when a line violates the resource grammar; no partial catalog is ever
// returned.
func LoadCatalogFS(fsys fs.FS, locale string) (*Catalog, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: bad locale %q", ErrResourceNotFound, locale)
	}

	path := fmt.Sprintf("locales/active.%s.ftl", tag.String())
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, tag)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	messages, err := parseMessages(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Catalog{locale: tag, messages: messages}, nil
}

func (c *Catalog) Locale() language.Tag { return c.locale }

// Keys returns the sorted message key set.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.messages))
	for key := range c.messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (c *Catalog) Has(key string) bool {
	_, ok := c.messages[key]
	return ok
}

// Resolve looks up key and substitutes its placeholders from args. It fails
// with ErrMissingKey when the key is absent and ErrMissingArgument when the
// template references a placeholder args does not supply.
func (c *Catalog) Resolve(key string, args map[string]string) (string, error) {
	template, ok := c.messages[key]
	if !ok {
		return "", fmt.Errorf("%w: %s (%s)", ErrMissingKey, key, c.locale)
	}
	return expandTemplate(template, args, true)
}
