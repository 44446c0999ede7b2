package i18n

import (
	"log"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"neocalc/internal/domain"
	"neocalc/internal/ports/output"
)

// Supported locales, in fallback priority order. English is the default and
// the completeness reference.
var supportedLocales = []language.Tag{
	language.English,
	language.Italian,
	language.MustParse("pt-BR"),
	language.French,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// DefaultLocale is used when the host supplies no usable locale.
const DefaultLocale = "en"

// SupportedLocales lists the locales that ship with the binary.
func SupportedLocales() []string {
	out := make([]string, len(supportedLocales))
	for i, tag := range supportedLocales {
		out[i] = tag.String()
	}
	return out
}

// MatchLocale normalizes a host-supplied identifier ("pt_BR", "fr-FR",
// "it-IT") to the nearest supported locale.
func MatchLocale(locale string) language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return supportedLocales[0]
	}
	_, index, _ := localeMatcher.Match(tag)
	return supportedLocales[index]
}

// Ensure Translator implements the output.T port.
var _ output.T = (*Translator)(nil)

// Translator is a thin wrapper around go-i18n's Bundle/Localizer with the
// .ftl resource format registered. It implements the fallback policy the
// strict Catalog deliberately leaves out: requested locale, then the default
// locale, then the key itself.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

// NewTranslator builds a Translator backed by go-i18n using the given default
// locale (e.g. "en").
//
// It loads translations from the embedded active.*.ftl files.
func NewTranslator(defaultLocale string) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("ftl", Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		log.Printf("i18n: failed to list locales: %v", err)
	}
	for _, entry := range entries {
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+entry.Name()); err != nil {
			log.Printf("i18n: failed to load %s: %v", entry.Name(), err)
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
	}
}

// T renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then finally to the key itself. A placeholder without a supplied argument
// stays in the output rather than failing the whole message.
func (t *Translator) T(locale, key string, args map[string]string) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, MatchLocale(locale).String())
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		log.Printf("i18n: localize failed (key=%s, locales=%v): %v", key, languages, err)
		return key
	}

	out, err := expandTemplate(msg, args, false)
	if err != nil {
		return msg
	}
	return out
}

// TError renders a domain error for the given locale. Non-domain errors
// collapse to the generic message.
func (t *Translator) TError(locale string, err error) string {
	if err == nil {
		return ""
	}
	if ce, ok := domain.AsCalcError(err); ok {
		return t.T(locale, ce.MessageKey(), ce.Args)
	}
	return t.T(locale, "error-generic", nil)
}
