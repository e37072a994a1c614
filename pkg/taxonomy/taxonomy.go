// Package taxonomy maps free-text subject strings from metadata sources to
// the fixed BookNest category set.
package taxonomy

import (
	"regexp"
	"strings"
)

// DefaultCategory is returned when no rule matches (including empty input).
const DefaultCategory = "General & Other"

// Rule binds a keyword pattern to a category. Subject lists are noisy and
// several keyword families can co-occur (a historical mystery matches both
// "mystery" and "history"), so classification walks the rules in order and
// the first match wins.
type Rule struct {
	Category string
	Pattern  *regexp.Regexp
}

var rules = []Rule{
	{"Mystery & Thriller", regexp.MustCompile(`mystery|detective|crime|thriller|suspense|private investigator|missing persons|murder`)},
	{"Fantasy", regexp.MustCompile(`fantasy|quests|elder wand|mutants`)},
	{"Science Fiction", regexp.MustCompile(`science fiction|sci-fi|alien`)},
	{"Mythology", regexp.MustCompile(`mythology`)},
	{"History & Historical Fiction", regexp.MustCompile(`history|historical|roman|romans|england|great britain|asia`)},
	{"Literary Fiction", regexp.MustCompile(`literary|english literature|american literature|classic|fiction`)},
	{"Romance & Relationships", regexp.MustCompile(`romance|love poetry|mothers and daughters`)},
	{"Biography & Memoir", regexp.MustCompile(`biography|authors|autobiography|biographical fiction`)},
	{"Psychology & Society", regexp.MustCompile(`psychology|social|abuse|famil|brothers|society`)},
	{"Business & Economics", regexp.MustCompile(`business|economics|leadership|management|corporation|strategy`)},
	{"Self-Help & Mindfulness", regexp.MustCompile(`self-help|critical thinking|contentment|life change|quality of work life`)},
	{"Children & Young Adult", regexp.MustCompile(`children|juvenile|young adult|school`)},
	{"Poetry", regexp.MustCompile(`poetry|poems`)},
	{"Religion & Spirituality", regexp.MustCompile(`religion|hindu|jewish`)},
	{"Technology & Science", regexp.MustCompile(`technology|engineering|science|physics`)},
	{"Comics, Art & Humor", regexp.MustCompile(`comic|graphic|astérix|tintin|art|music|humou?r|puzzle`)},
	{"Travel & Adventure", regexp.MustCompile(`travel`)},
	{"Education & Language", regexp.MustCompile(`language|grammar|translation|education|school`)},
	{"Short Stories", regexp.MustCompile(`short stories`)},
}

// Rules exposes the ordered rule table (read-only).
func Rules() []Rule {
	return rules
}

// Normalize lower-cases the subjects and returns the category of the first
// matching rule, or DefaultCategory when nothing matches.
func Normalize(subjects []string) string {
	lowered := make([]string, 0, len(subjects))
	for _, s := range subjects {
		lowered = append(lowered, strings.ToLower(s))
	}

	for _, rule := range rules {
		for _, s := range lowered {
			if rule.Pattern.MatchString(s) {
				return rule.Category
			}
		}
	}
	return DefaultCategory
}
