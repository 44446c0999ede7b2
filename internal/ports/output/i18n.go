package output

// T exposes a minimal i18n contract for user-facing messages.
// Implementations provide message lookup + templating for a given locale.
type T interface {
	// T renders the message identified by key for the given locale.
	// args is an optional map used for template placeholders (may be nil).
	T(locale, key string, args map[string]string) string

	// TError renders a localized message for a calculator error.
	TError(locale string, err error) string
}
