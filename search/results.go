package search

import (
	"regexp"
	"strconv"

	"github.com/Nikkoola22/ATLAS/core"
)

const (
	// NotFoundAnswer is returned when no section could be located or loaded.
	NotFoundAnswer = "Je ne trouve pas cette information dans nos documents internes."

	// ContactLine points the user to a human contact.
	ContactLine = "Contactez la CFDT au 01 40 85 64 64 pour plus de détails."

	// GenericErrorAnswer is shown when the completion service fails.
	GenericErrorAnswer = "Désolé, une erreur est survenue. Veuillez réessayer ou contacter un représentant si le problème persiste."

	// noChapterPrefix starts the single-pass answer when no chapter scores.
	noChapterPrefix = "Aucun chapitre spécifique trouvé pour cette question. Voici un aperçu général des thèmes: "

	// NoContentAnswer is the single-pass answer when the winning chapter has no body.
	NoContentAnswer = "Aucun contenu textuel trouvé pour les chapitres pertinents."
)

var firstNumber = regexp.MustCompile(`\d{1,3}`)

// AnswerText returns the answer of r, or "" for a nil result.
func AnswerText(r *core.SearchResult) string {
	if r == nil {
		return ""
	}
	return r.Answer
}

// ExtractNumber returns the first run of one to three digits in text,
// or nil when there is none.
func ExtractNumber(text string) *int {
	m := firstNumber.FindString(text)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

// Numbered reduces r to its text and the first number found in it.
func Numbered(r *core.SearchResult) *core.NumberedResult {
	if r == nil {
		return &core.NumberedResult{}
	}
	return &core.NumberedResult{
		Text:       r.Answer,
		Number:     ExtractNumber(r.Answer),
		SectionIDs: r.SectionIDs,
	}
}

// WithContact appends the contact line to the not-found answer.
// Any other answer is returned unchanged.
func WithContact(answer string) string {
	if answer == NotFoundAnswer {
		return answer + " " + ContactLine
	}
	return answer
}
