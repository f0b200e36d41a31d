package language

import (
	"sort"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// minDetectableLetters is the smallest number of letters worth
// classifying; anything shorter yields no verdict.
const minDetectableLetters = 4

// Hypothesis is one detector guess with its normalized confidence.
type Hypothesis struct {
	Language   Language
	Confidence float64
}

// Detector classifies the dominant natural language of a text span
// using script ranges and stop-word/diacritic frequency heuristics.
// It holds no state, loads no model and is safe for concurrent use.
type Detector struct{}

// NewDetector creates a detector.
func NewDetector() *Detector {
	return &Detector{}
}

// stopWords holds high-frequency function words per Latin-script
// language, lowercase, accents included where the language uses them.
var stopWords = map[Language][]string{
	English: {
		"the", "and", "you", "are", "is", "of", "to", "in", "it", "that",
		"how", "what", "with", "for", "this", "have", "your", "doing",
		"today", "hello", "not", "was", "were", "they", "their",
	},
	Spanish: {
		"el", "la", "los", "las", "de", "que", "y", "en", "un", "una",
		"es", "está", "cómo", "qué", "hoy", "hola", "por", "para", "con",
		"tú", "usted", "muy", "bien", "gracias", "señor",
	},
	German: {
		"der", "die", "das", "und", "ist", "nicht", "ich", "du", "sie",
		"wir", "ein", "eine", "mit", "für", "heute", "hallo", "wie",
		"geht", "dir", "auch", "aber", "schon",
	},
	French: {
		"le", "la", "les", "et", "est", "vous", "je", "tu", "ne", "pas",
		"un", "une", "des", "que", "qui", "dans", "pour", "avec",
		"aujourd'hui", "bonjour", "comment", "ça", "très",
	},
	Portuguese: {
		"o", "os", "de", "que", "e", "em", "um", "uma", "não", "você",
		"como", "está", "hoje", "olá", "para", "com", "muito", "bem",
		"obrigado", "também", "já",
	},
}

// diacritics holds characters strongly indicative of a Latin-script
// language. Inverted punctuation counts for Spanish.
var diacritics = map[Language]string{
	Spanish:    "áéíóúñü¿¡",
	German:     "äöüß",
	French:     "àâçéèêëîïôùûüœ",
	Portuguese: "ãõçáâêôà",
}

// Detect returns the best-guess language for text. The second return
// value is false when the input is empty or too short to classify.
func (d *Detector) Detect(text string) (Language, bool) {
	hypotheses := d.DetectWithConfidence(text, 1)
	if len(hypotheses) == 0 {
		return Auto, false
	}
	return hypotheses[0].Language, true
}

// DetectWithConfidence scores every supported language and returns up
// to maxHypotheses guesses ordered by descending confidence. Ties are
// broken by a fixed language priority so output is deterministic.
func (d *Detector) DetectWithConfidence(text string, maxHypotheses int) []Hypothesis {
	if maxHypotheses <= 0 {
		return nil
	}

	scores, letters := score(text)
	if letters < minDetectableLetters {
		return nil
	}

	total := lo.Sum(lo.Values(scores))
	if total == 0 {
		return nil
	}

	hypotheses := make([]Hypothesis, 0, len(scores))
	for _, lang := range priority {
		if s := scores[lang]; s > 0 {
			hypotheses = append(hypotheses, Hypothesis{Language: lang, Confidence: s / total})
		}
	}

	// Stable sort keeps the priority order for equal confidences.
	sort.SliceStable(hypotheses, func(i, j int) bool {
		return hypotheses[i].Confidence > hypotheses[j].Confidence
	})

	if len(hypotheses) > maxHypotheses {
		hypotheses = hypotheses[:maxHypotheses]
	}
	return hypotheses
}

// score computes a raw heuristic score per language and the number of
// letters observed in the input.
func score(text string) (map[Language]float64, int) {
	var letters, cyrillic, latin int
	diacriticHits := map[Language]int{}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) {
			letters++
			switch {
			case unicode.Is(unicode.Cyrillic, r):
				cyrillic++
			case unicode.Is(unicode.Latin, r):
				latin++
			}
		}
		for lang, chars := range diacritics {
			if strings.ContainsRune(chars, r) {
				diacriticHits[lang]++
			}
		}
	}

	scores := map[Language]float64{}
	if letters == 0 {
		return scores, 0
	}

	if cyrillic > 0 {
		scores[Russian] = float64(cyrillic) / float64(letters)
	}

	latinRatio := float64(latin) / float64(letters)
	if latinRatio == 0 {
		return scores, letters
	}

	words := tokenize(text)
	for lang, vocabulary := range stopWords {
		hits := lo.CountBy(words, func(w string) bool {
			return lo.Contains(vocabulary, w)
		})

		s := 0.05 * latinRatio
		if len(words) > 0 {
			s += 0.75 * latinRatio * float64(hits) / float64(len(words))
		}
		s += 1.5 * float64(diacriticHits[lang]) / float64(letters)
		scores[lang] = s
	}

	return scores, letters
}

// tokenize lowercases the text and splits it into letter runs,
// keeping apostrophes so contractions survive.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}
