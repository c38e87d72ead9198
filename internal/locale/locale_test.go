package locale_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/locale"
)

var curatedMatches = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 22}

func TestLanguagesLoaded(t *testing.T) {
	tr := locale.New()
	assert.ElementsMatch(t, config.SupportedLanguages, tr.Languages())
}

func TestNormalize(t *testing.T) {
	tr := locale.New()

	tests := []struct {
		in, want string
	}{
		{"fr", "fr"},
		{"FR", "fr"},
		{"Fr", "fr"},
		{"fr-CA", "fr"},
		{" id ", "id"},
		{"jp", "en"},
		{"", "en"},
		{"not a tag", "en"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tr.Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

// Every key referenced by code must exist in the English reference file.
func TestEnglishHasEveryKey(t *testing.T) {
	tr := locale.New()

	keys := []string{
		config.TKeyMatchGeneric,
		config.TKeyMatchUnknown,
		config.TKeyEvtSummary,
		config.TKeyEvtDesc,
		config.TKeyCalendarName,
	}
	for i := 1; i <= 10; i++ {
		keys = append(keys, fmt.Sprintf("%s%d", config.TKeySuggestion, i))
	}

	for _, key := range keys {
		_, ok := tr.Lookup(config.DefaultLanguage, key, nil)
		assert.True(t, ok, "missing english key %q", key)
	}
}

func TestCuratedMatchesInEveryLanguage(t *testing.T) {
	tr := locale.New()
	english := map[string]string{}

	for _, b := range curatedMatches {
		key := fmt.Sprintf("%s1_%d", config.TKeyMatchPrefix, b)
		msg, ok := tr.Lookup("en", key, nil)
		require.True(t, ok, key)
		english[key] = msg
	}

	for _, lang := range config.SupportedLanguages {
		if lang == config.DefaultLanguage {
			continue
		}
		for _, b := range curatedMatches {
			key := fmt.Sprintf("%s1_%d", config.TKeyMatchPrefix, b)
			msg, ok := tr.Lookup(lang, key, nil)
			require.True(t, ok, "%s %s", lang, key)
			assert.NotEqual(t, english[key], msg, "%s %s is not translated", lang, key)
		}
	}
}

func TestTemplates(t *testing.T) {
	tr := locale.New()

	msg := tr.Text("en", config.TKeyEvtSummary, map[string]any{
		"Name": "BUDI", "PersonalYear": 14, "Essence": 3,
	})
	assert.Equal(t, "BUDI: Personal Year 14, Essence 3", msg)

	generic := tr.Text("fr", config.TKeyMatchGeneric, map[string]any{
		"TimeA": 6, "TimeB": 6, "Percentage": 100,
	})
	assert.Contains(t, generic, "Time 6 et Time 6")
	assert.Contains(t, generic, "100")
}

func TestFallback(t *testing.T) {
	tr := locale.New()

	// Suggestions only exist in Indonesian and English.
	en := tr.Text("en", config.TKeySuggestion+"3", nil)
	assert.Equal(t, en, tr.Text("zh", config.TKeySuggestion+"3", nil))
	assert.NotEqual(t, en, tr.Text("id", config.TKeySuggestion+"3", nil))

	assert.Equal(t, "no_such_key", tr.Text("fr", "no_such_key", nil))
	_, ok := tr.Lookup("fr", "no_such_key", nil)
	assert.False(t, ok)
}
