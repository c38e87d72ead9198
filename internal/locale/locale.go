package locale

import (
	"embed"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-numerology/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves narrative texts for the supported languages. Missing
// messages fall back to English. It is safe for concurrent use once built.
type Translator struct {
	bundle     *i18n.Bundle
	languages  []string
	localizers map[string]*i18n.Localizer
}

// New loads every embedded locale file. Files that fail to load are logged
// and skipped; the translator still works with whatever did load.
func New() *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	t := &Translator{
		bundle:     bundle,
		localizers: make(map[string]*i18n.Localizer),
	}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return t
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
		t.languages = append(t.languages, langCode)
		t.localizers[langCode] = i18n.NewLocalizer(bundle, langCode, config.DefaultLanguage)
	}

	slices.Sort(t.languages)
	return t
}

// Languages returns the codes of the loaded locales, sorted.
func (t *Translator) Languages() []string {
	return slices.Clone(t.languages)
}

// Normalize maps a user supplied language code onto a loaded locale.
// Region subtags are dropped ("fr-CA" -> "fr"); unknown codes become English.
func (t *Translator) Normalize(lang string) string {
	code := strings.ToLower(strings.TrimSpace(lang))
	if tag, err := language.Parse(code); err == nil {
		base, _ := tag.Base()
		code = base.String()
	}
	if _, ok := t.localizers[code]; ok {
		return code
	}
	return config.DefaultLanguage
}

// Lookup translates key for lang, executing the message template with data.
// The boolean is false when no locale, English included, defines the key.
func (t *Translator) Lookup(lang, key string, data map[string]any) (string, bool) {
	loc, ok := t.localizers[t.Normalize(lang)]
	if !ok {
		return "", false
	}

	msg, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	// English fallback hits may still report a not-found error.
	if msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return "", false
	}
	return msg, true
}

// Text is Lookup returning the key itself for missing messages.
func (t *Translator) Text(lang, key string, data map[string]any) string {
	if msg, ok := t.Lookup(lang, key, data); ok {
		return msg
	}
	return key
}
