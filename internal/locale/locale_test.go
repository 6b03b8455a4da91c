package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	m := NewMatcher([]string{"en", "ru"})

	cases := []struct {
		name, explicit, accept, want string
	}{
		{"nothing requested", "", "", "en"},
		{"explicit ru", "ru", "", "ru"},
		{"explicit wins over header", "en", "ru-RU,ru;q=0.9", "en"},
		{"header regional variant", "", "ru-RU,ru;q=0.9,en;q=0.5", "ru"},
		{"unsupported falls back", "", "ja-JP", "en"},
		{"garbage explicit uses header", "!!", "ru", "ru"},
		{"garbage header", "", ";;;", "en"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, m.Match(c.explicit, c.accept))
		})
	}
}

func TestEmptyMatcherDefaultsToEnglish(t *testing.T) {
	m := NewMatcher(nil)
	assert.Equal(t, []string{"en"}, m.Supported())
	assert.Equal(t, "en", m.Match("ru", ""))
}
