package language

// Language is the closed set of natural languages the application can
// name. Auto means "let the backend decide" and carries no ISO code.
type Language string

const (
	Auto       Language = "auto"
	English    Language = "english"
	Spanish    Language = "spanish"
	Russian    Language = "russian"
	German     Language = "german"
	French     Language = "french"
	Portuguese Language = "portuguese"
)

// isoCodes maps every non-auto language to its fixed ISO 639-1 code.
var isoCodes = map[Language]string{
	English:    "en",
	Spanish:    "es",
	Russian:    "ru",
	German:     "de",
	French:     "fr",
	Portuguese: "pt",
}

// priority is the stable tie-break order used by the detector.
var priority = []Language{English, Spanish, Russian, German, French, Portuguese}

// ISOCode returns the ISO 639-1 code for the language. The second
// return value is false for Auto, which deliberately has no code.
func (l Language) ISOCode() (string, bool) {
	code, ok := isoCodes[l]
	return code, ok
}

// Valid reports whether l is a known language constant.
func (l Language) Valid() bool {
	if l == Auto {
		return true
	}
	_, ok := isoCodes[l]
	return ok
}

// ParseISOCode resolves an ISO 639-1 code back to a Language.
func ParseISOCode(code string) (Language, bool) {
	for lang, c := range isoCodes {
		if c == code {
			return lang, true
		}
	}
	return Auto, false
}
