package i18n

import (
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placeholderPattern = regexp.MustCompile(`\{\s*\$(\w+)\s*\}`)

func loadAll(t *testing.T) map[string]*Catalog {
	t.Helper()
	catalogs := map[string]*Catalog{}
	for _, locale := range SupportedLocales() {
		catalog, err := LoadCatalog(locale)
		require.NoError(t, err, "locale %s", locale)
		catalogs[locale] = catalog
	}
	return catalogs
}

func TestLoadCatalogUnknownLocale(t *testing.T) {
	_, err := LoadCatalog("de")
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = LoadCatalog("not a locale!")
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestCatalogKeySetsMatchAcrossLocales(t *testing.T) {
	catalogs := loadAll(t)
	reference := catalogs[DefaultLocale]
	require.NotNil(t, reference)

	for locale, catalog := range catalogs {
		assert.Equal(t, reference.Keys(), catalog.Keys(), "key set of %s differs from %s", locale, DefaultLocale)
	}

	for _, key := range []string{"error-division-by-zero", "op-power", "term-ans"} {
		assert.True(t, reference.Has(key), "missing key %s", key)
	}
}

// Every key in every locale must resolve once its placeholders are supplied,
// and nothing placeholder-shaped may survive in the output.
func TestCatalogResolveAllKeys(t *testing.T) {
	catalogs := loadAll(t)
	for locale, catalog := range catalogs {
		for _, key := range catalog.Keys() {
			args := map[string]string{}
			for _, m := range placeholderPattern.FindAllStringSubmatch(catalog.messages[key], -1) {
				args[m[1]] = "value"
			}
			out, err := catalog.Resolve(key, args)
			require.NoError(t, err, "%s/%s", locale, key)
			assert.NotContains(t, out, "{ $", "%s/%s", locale, key)
			assert.NotEmpty(t, out, "%s/%s", locale, key)
		}
	}
}

func TestCatalogResolveLiteral(t *testing.T) {
	catalog, err := LoadCatalog("en")
	require.NoError(t, err)

	out, err := catalog.Resolve("error-division-by-zero", nil)
	require.NoError(t, err)
	assert.Equal(t, "Cannot divide by zero", out)

	out, err = catalog.Resolve("op-add", nil)
	require.NoError(t, err)
	assert.Equal(t, "Add", out)
}

func TestCatalogResolveSubstitutesArguments(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en", `Undefined variable "x"`},
		{"fr", "Variable non définie « x »"},
	}
	for _, tt := range tests {
		catalog, err := LoadCatalog(tt.locale)
		require.NoError(t, err)
		out, err := catalog.Resolve("error-undefined-variable", map[string]string{"name": "x"})
		require.NoError(t, err, tt.locale)
		assert.Equal(t, tt.want, out, tt.locale)
	}
}

func TestCatalogResolveMissingKey(t *testing.T) {
	catalog, err := LoadCatalog("en")
	require.NoError(t, err)

	_, err = catalog.Resolve("no-such-key", nil)
	assert.ErrorIs(t, err, ErrMissingKey)

	// A missing key never poisons the catalog for later lookups.
	out, err := catalog.Resolve("term-result", nil)
	require.NoError(t, err)
	assert.Equal(t, "Result", out)
}

func TestCatalogResolveMissingArgument(t *testing.T) {
	catalog, err := LoadCatalog("en")
	require.NoError(t, err)

	_, err = catalog.Resolve("error-undefined-variable", nil)
	assert.ErrorIs(t, err, ErrMissingArgument)

	_, err = catalog.Resolve("error-undefined-variable", map[string]string{"other": "x"})
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestLoadCatalogMalformedResource(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/active.en.ftl": &fstest.MapFile{Data: []byte(strings.Join([]string{
			"term-result = Result",
			"this line has no equals sign",
			"term-error = Error",
		}, "\n"))},
	}

	catalog, err := LoadCatalogFS(fsys, "en")
	assert.ErrorIs(t, err, ErrMalformedResource)
	assert.Contains(t, err.Error(), "line 2")
	assert.Nil(t, catalog, "a malformed resource must not yield a partial catalog")
}

func TestLoadCatalogRejectsBadKeys(t *testing.T) {
	for _, line := range []string{
		"= naked value",
		"9starts-with-digit = x",
		"bad key = x",
		"bad.key = x",
	} {
		fsys := fstest.MapFS{
			"locales/active.en.ftl": &fstest.MapFile{Data: []byte(line)},
		}
		_, err := LoadCatalogFS(fsys, "en")
		assert.ErrorIs(t, err, ErrMalformedResource, "line %q", line)
	}
}

func TestLoadCatalogSkipsCommentsAndBlanks(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/active.en.ftl": &fstest.MapFile{Data: []byte(strings.Join([]string{
			"# a comment",
			"",
			"## a section header",
			"greeting = Hello",
			"   ",
		}, "\n"))},
	}

	catalog, err := LoadCatalogFS(fsys, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"greeting"}, catalog.Keys())
}

func TestCatalogValueMayContainEquals(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/active.en.ftl": &fstest.MapFile{Data: []byte("equation = a = b")},
	}

	catalog, err := LoadCatalogFS(fsys, "en")
	require.NoError(t, err)
	out, err := catalog.Resolve("equation", nil)
	require.NoError(t, err)
	assert.Equal(t, "a = b", out)
}
