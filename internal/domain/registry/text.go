package registry

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upperFrench = cases.Upper(language.French)

// TerminateMentionText normalizes a mention text before it is persisted as
// newly created: trimmed, first letter capitalized, and guaranteed to end in
// a terminating punctuation mark. A text already ending in a period or a
// closing parenthesis keeps its terminator.
func TerminateMentionText(text string) string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return cleaned
	}
	if !strings.HasSuffix(cleaned, ".") && !strings.HasSuffix(cleaned, ")") {
		cleaned += "."
	}
	first, size := utf8.DecodeRuneInString(cleaned)
	return upperFrench.String(string(first)) + cleaned[size:]
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatFrenchDate renders a date the way it appears on civil-status
// documents, e.g. "14 mars 2024". The first day of the month is "1er".
func FormatFrenchDate(date time.Time) string {
	day := fmt.Sprintf("%d", date.Day())
	if date.Day() == 1 {
		day = "1er"
	}
	return fmt.Sprintf("%s %s %d", day, frenchMonths[date.Month()-1], date.Year())
}

// FormatAppositionText renders the apposition line stamped on every draft
// mention during document preparation.
func FormatAppositionText(city string, date time.Time) string {
	return fmt.Sprintf("Mention apposée à %s le %s.", city, FormatFrenchDate(date))
}

// FormatAuthorityText renders the issuing-authority line from the authority
// block, including the signing officer when stamped.
func FormatAuthorityText(authority *Authority) string {
	if authority == nil {
		return ""
	}
	officer := ""
	if authority.OfficerFirstName != nil && authority.OfficerLastName != nil {
		officer = fmt.Sprintf("%s %s, ", *authority.OfficerFirstName, *authority.OfficerLastName)
	}
	name := authority.Name
	if name == "" {
		name = "l'officier de l'état civil"
	}
	return fmt.Sprintf("Par %s%s.", officer, name)
}
