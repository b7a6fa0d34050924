// Package lexicon holds the per-language indicator tables used by the concern
// scorer. Each table maps a regular-expression pattern (an alternation of
// keyword variants) to a severity weight between 0.5 and 5.0, grouped into ten
// tiers from mild symptoms to immediate intervention. Tables are static and
// compiled once at process start.
package lexicon

import "regexp"

type rawEntry struct {
	pattern string
	weight  float64
}

// Entry is a precompiled indicator pattern with its severity weight.
type Entry struct {
	re     *regexp.Regexp
	weight float64
}

// Pattern returns the source regular expression.
func (e Entry) Pattern() string { return e.re.String() }

// Weight returns the severity weight in [0.5, 5.0].
func (e Entry) Weight() float64 { return e.weight }

// Matches reports whether the pattern occurs anywhere in lowered.
// Matching is an unanchored search: partial-word hits (e.g. "end" inside
// "depend") count, mirroring the scoring behavior the weights were tuned on.
func (e Entry) Matches(lowered string) bool { return e.re.MatchString(lowered) }

var tables [len(languages)][]Entry

func compile(raw []rawEntry) []Entry {
	out := make([]Entry, 0, len(raw))
	for _, r := range raw {
		out = append(out, Entry{re: regexp.MustCompile(r.pattern), weight: r.weight})
	}
	return out
}

func init() {
	tables[English] = compile(englishIndicators)
	tables[Hindi] = compile(hindiIndicators)
	tables[Marathi] = compile(marathiIndicators)
}

// Entries returns the indicator table for the given language.
func Entries(l Language) []Entry {
	if !l.valid() {
		return tables[English]
	}
	return tables[l]
}

// MessageWeight sums the weights of every entry matching the lowered message
// text. All matching patterns contribute; overlapping matches are not
// deduplicated.
func MessageWeight(lowered string, l Language) float64 {
	var total float64
	for _, e := range Entries(l) {
		if e.Matches(lowered) {
			total += e.weight
		}
	}
	return total
}
