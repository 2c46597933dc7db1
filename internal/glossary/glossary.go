// Package glossary answers definition questions about trafficability and
// compaction terms. Matching is purely lexical so identical questions
// always produce identical answers.
package glossary

import (
	"strings"
	"unicode"
)

// Entry is one term the glossary can define.
type Entry struct {
	Term       string   `json:"term"`
	Aliases    []string `json:"aliases,omitempty"`
	Definition string   `json:"definition"`
}

// entries are matched in order; the first hit wins when a question mentions
// several terms.
var entries = []Entry{
	{
		Term:       "trafficability",
		Definition: "Trafficability is the soil's ability to support field traffic without excessive rutting or compaction. It depends on soil moisture, soil strength (cone index) and the loads applied.",
	},
	{
		Term:       "soil compaction",
		Aliases:    []string{"compaction"},
		Definition: "Soil compaction is the increase in soil density and loss of pore space caused by applied loads, especially on wet soil. It reduces infiltration, aeration and root growth, and can persist for years in the subsoil.",
	},
	{
		Term:       "bulk density",
		Aliases:    []string{"bd"},
		Definition: "Bulk density is the oven-dry mass of soil per unit volume (g/cm3, equivalent to Mg/m3). Values above about 1.4 g/cm3 in medium-textured soil begin to restrict roots; above about 1.6 g/cm3 growth is severely limited.",
	},
	{
		Term:       "cone index",
		Aliases:    []string{"ci", "penetrometer"},
		Definition: "Cone index is penetration resistance measured with a cone penetrometer (kPa). Read as bearing capacity: low values mean the soil cannot carry wheel loads without rutting.",
	},
	{
		Term:       "soil moisture deficit",
		Aliases:    []string{"smd"},
		Definition: "Soil moisture deficit is the millimetres of water needed to return the profile to field capacity. Positive values mean drier than field capacity; negative values mean wetter, the state most prone to compaction.",
	},
}

// Entries returns every glossary entry in match order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Answer finds the first entry whose term appears in the question, or whose
// alias appears as a whole word. Matching is case-insensitive.
func Answer(question string) (Entry, bool) {
	q := strings.ToLower(question)
	for _, e := range entries {
		if strings.Contains(q, e.Term) {
			return e, true
		}
		for _, alias := range e.Aliases {
			if strings.Contains(alias, " ") {
				if strings.Contains(q, alias) {
					return e, true
				}
				continue
			}
			if containsWord(q, alias) {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// containsWord reports whether w appears as a whole word in q. Short
// aliases like "bd" and "ci" would otherwise match inside unrelated words.
func containsWord(q, w string) bool {
	tokens := strings.FieldsFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		if token == w {
			return true
		}
	}
	return false
}
