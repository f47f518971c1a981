package utils

import (
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

var bundle *i18n.Bundle

var supportedLanguages = []string{"en", "de", "fr"}

func InitI18NBundle() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	for _, lang := range supportedLanguages {
		bundle.MustLoadMessageFile(path.Join(viper.GetString("i18n.dir"), lang+".yaml"))
	}
}

// NewLocalizer returns a localizer for the preferred languages, in the
// form of `lang` query values or an Accept-Language header.
func NewLocalizer(langs ...string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, langs...)
}
