// Package locale выбирает язык сессии из того, что просит клиент,
// и того, на какие языки переведён реестр игр.
package locale

import (
	"golang.org/x/text/language"

	"neuroflash/internal/model"
)

// Matcher Сопоставляет запрошенные языки с поддерживаемыми
type Matcher struct {
	supported []string
	matcher   language.Matcher
}

// NewMatcher Первый язык в списке - язык по умолчанию.
// Пустой список превращается в [model.DefaultLanguage]
func NewMatcher(supported []string) *Matcher {
	if len(supported) == 0 {
		supported = []string{model.DefaultLanguage}
	}
	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		tags = append(tags, language.Make(s))
	}
	return &Matcher{
		supported: supported,
		matcher:   language.NewMatcher(tags),
	}
}

// Supported Список поддерживаемых языков
func (m *Matcher) Supported() []string {
	return append([]string(nil), m.supported...)
}

// Match Лучший поддерживаемый язык для явного выбора и/или Accept-Language.
// Явный выбор важнее заголовка
func (m *Matcher) Match(explicit, acceptLanguage string) string {
	var prefs []language.Tag
	if explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			prefs = append(prefs, tag)
		}
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			prefs = append(prefs, tags...)
		}
	}
	if len(prefs) == 0 {
		return m.supported[0]
	}

	_, idx, conf := m.matcher.Match(prefs...)
	if conf == language.No {
		return m.supported[0]
	}
	return m.supported[idx]
}
