package registration

import (
	"errors"
	"fmt"
)

// ErrUnsupportedLocale is returned for a locale without a month table.
var ErrUnsupportedLocale = errors.New("registration: unsupported locale")

// DefaultLocale is the locale whose month names the form offers by default.
const DefaultLocale = "pt-BR"

const (
	firstYear = 1901
	lastYear  = 2100
	lastDay   = 31
)

var monthNames = map[string][12]string{
	"pt-BR": {
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	},
	"en": {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

// Options are the values offered by the three date-of-birth selectors.
type Options struct {
	Locale string   `json:"locale" cbor:"locale" example:"pt-BR"`
	Months []string `json:"months" cbor:"months"`
	Days   []string `json:"days"   cbor:"days"`
	Years  []string `json:"years"  cbor:"years"`
}

// NewOptions builds the selector options for locale. Days run "01".."31" and
// years "1901".."2100" regardless of locale.
func NewOptions(locale string) (Options, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	months, ok := monthNames[locale]
	if !ok {
		return Options{}, fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}

	opts := Options{
		Locale: locale,
		Months: months[:],
		Days:   make([]string, 0, lastDay),
		Years:  make([]string, 0, lastYear-firstYear+1),
	}
	for d := 1; d <= lastDay; d++ {
		opts.Days = append(opts.Days, fmt.Sprintf("%02d", d))
	}
	for y := firstYear; y <= lastYear; y++ {
		opts.Years = append(opts.Years, fmt.Sprintf("%04d", y))
	}
	return opts, nil
}

// Locales returns the supported locales.
func Locales() []string {
	return []string{"pt-BR", "en"}
}
