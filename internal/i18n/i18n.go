// Package i18n translates user-facing journal messages.
package i18n

import (
	"embed"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "pt-BR"

// Supported lists the locales shipped with the binary.
var Supported = []string{"pt-BR", "en-US"}

// Message ids.
const (
	MsgFieldsRequired    = "FieldsRequired"
	MsgUsernameTaken     = "UsernameTaken"
	MsgUserRegistered    = "UserRegistered"
	MsgInvalidLogin      = "InvalidLogin"
	MsgLoginSuccess      = "LoginSuccess"
	MsgLogoutSuccess     = "LogoutSuccess"
	MsgUserNotFound      = "UserNotFound"
	MsgUserDeleted       = "UserDeleted"
	MsgUserUpdated       = "UserUpdated"
	MsgStorageFailure    = "StorageFailure"
	MsgLossLimitExceeded = "LossLimitExceeded"
)

// Translator renders message ids in one locale.
type Translator struct {
	locale    string
	localizer *i18n.Localizer
}

// New loads the embedded catalogs and returns a translator for locale.
// An empty locale selects DefaultLocale.
func New(locale string) (*Translator, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	bundle := i18n.NewBundle(language.BrazilianPortuguese)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	for _, l := range Supported {
		filename := fmt.Sprintf("locales/%s.yaml", l)
		if _, err := bundle.LoadMessageFileFS(localeFS, filename); err != nil {
			return nil, fmt.Errorf("load %s: %w", filename, err)
		}
	}

	return &Translator{
		locale:    locale,
		localizer: i18n.NewLocalizer(bundle, tag.String()),
	}, nil
}

// MustNew is New for the built-in locales; it panics on an unknown locale.
func MustNew(locale string) *Translator {
	t, err := New(locale)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Translator) Locale() string { return t.locale }

// T translates id, substituting data into the message template. Unknown ids
// come back unchanged.
func (t *Translator) T(id string, data map[string]any) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}
