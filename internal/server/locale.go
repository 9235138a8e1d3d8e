package server

import (
	"errors"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tuzuminami/Collatz/internal/collatz"
)

// Message keys double as the English text. Translations are registered
// against these keys in init.
const (
	msgMissing     = "no number supplied"
	msgNotInteger  = "%q is not an integer"
	msgNotPositive = "%s is not a positive integer"
	msgBadJSON     = "request body is not valid JSON"
	msgTooMany     = "too many requests"
)

// supported lists the languages error messages are available in.
// English is first and wins when negotiation fails.
var supported = []language.Tag{
	language.English,
	language.German,
}

var matcher = language.NewMatcher(supported)

func init() {
	for key, text := range map[string]string{
		msgMissing:     "keine Zahl angegeben",
		msgNotInteger:  "%q ist keine ganze Zahl",
		msgNotPositive: "%s ist keine positive ganze Zahl",
		msgBadJSON:     "der Anfragetext ist kein gültiges JSON",
		msgTooMany:     "zu viele Anfragen",
	} {
		if err := message.SetString(language.German, key, text); err != nil {
			panic("failed to register translation: " + err.Error())
		}
	}
}

// printerFor negotiates the response language from the Accept-Language
// header and returns a printer for it.
func printerFor(r *http.Request) *message.Printer {
	tag := language.English
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			tag, _, _ = matcher.Match(tags...)
		}
	}
	return message.NewPrinter(tag)
}

// localizeError renders an input validation error in the negotiated
// language. Errors that are not validation errors pass through unchanged.
func localizeError(p *message.Printer, err error) string {
	var ie *collatz.InvalidInputError
	if errors.As(err, &ie) {
		switch ie.Kind {
		case collatz.KindNotInteger:
			return p.Sprintf(msgNotInteger, ie.Value)
		case collatz.KindNotPositive:
			return p.Sprintf(msgNotPositive, ie.Value)
		default:
			return p.Sprintf(msgMissing)
		}
	}
	return err.Error()
}
