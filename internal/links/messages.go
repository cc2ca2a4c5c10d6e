package links

import i18n "github.com/goliatone/go-i18n"

// Message keys resolved through the translator.
const (
	MessageUnknownLink        = "unknown_link"
	MessageMissingLinkContext = "missing_link_context"
)

var fallbackMessages = map[string]string{
	MessageUnknownLink:        "Unknown link",
	MessageMissingLinkContext: "Link tag used outside of a link context",
}

// Translations returns the built-in English catalog for the warning
// messages, for hosts that bring no translator.
func Translations() i18n.Translations {
	catalog := &i18n.TranslationCatalog{
		Locale:   i18n.Locale{Code: "en"},
		Messages: make(map[string]i18n.Message, len(fallbackMessages)),
	}
	for key, text := range fallbackMessages {
		msg := i18n.Message{}
		msg.SetContent(text)
		catalog.Messages[key] = msg
	}
	return i18n.Translations{"en": catalog}
}

// NewTranslator builds a translator over Translations.
func NewTranslator() (i18n.Translator, error) {
	store := i18n.NewStaticStore(Translations())
	return i18n.NewSimpleTranslator(store, i18n.WithTranslatorDefaultLocale("en"))
}
