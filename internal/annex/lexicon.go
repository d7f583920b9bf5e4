package annex

import (
	"sort"
	"unicode/utf8"
)

// Class is a named set of short word-final grammatical morphemes that attach
// to the preceding word with a hyphen in Kabyle orthography.
type Class struct {
	Name    string
	Members []string
}

// The eight particle classes. Membership is static data; adding a class or a
// member must not require touching the matching code.
var classes = []Class{
	{
		Name: "possessive_pronoun",
		Members: []string{
			"inu", "inem", "ines", "nneɣ", "ntex", "nwen", "nwent", "nsen", "nsent",
			"iw", "ik", "im", "is", "w", "k", "m", "s", "tneɣ", "tentex", "tsen", "tsent",
		},
	},
	{
		Name: "preposition",
		Members: []string{
			"deg", "gar", "ɣer", "ɣur", "fell", "ɣef", "ddaw", "nnig", "ɣid",
			"aql", "sɣur", "sennig", "deffir", "sdat",
		},
	},
	{
		// Both the plain and the special state-pronoun tables belong to one
		// grammatical class.
		Name: "state_pronoun",
		Members: []string{
			"i", "am", "at", "s", "neɣ", "aɣ",
			"ak", "as", "aneɣ", "anteɣ", "awen", "awent", "asen", "asent",
			"k", "m", "ntex", "wen", "went", "sen", "sent", "akem", "att",
			"aken", "akent", "aten", "atent",
		},
	},
	{
		Name:    "demonstrative",
		Members: []string{"a", "agi", "nni", "ihin", "nniden"},
	},
	{
		Name:    "directional",
		Members: []string{"id", "in"},
	},
	{
		Name:    "future",
		Members: []string{"ad", "ara"},
	},
	{
		Name: "direct_object_pronoun",
		Members: []string{
			"yi", "k", "kem", "t", "tt", "ay", "ken", "kent", "ten", "tent",
			"iyi", "ik", "ikem", "it", "itt", "iken", "ikent", "iten", "itent",
		},
	},
	{
		Name: "indirect_object_pronoun",
		Members: []string{
			"yi", "yak", "yam", "yas", "yaɣ", "yawen", "yawent", "yasen", "yasent",
		},
	},
}

// Lexicon holds the deduplicated union of all annexable particles, ordered by
// descending character length with lexicographic tie-breaks. The matcher
// depends on that ordering: when two members could anchor at the same word
// boundary the longer one is tried first. Built once at startup, never
// mutated afterwards.
type Lexicon struct {
	particles []string
}

func NewLexicon() *Lexicon {
	seen := make(map[string]struct{})
	for _, c := range classes {
		for _, m := range c.Members {
			seen[m] = struct{}{}
		}
	}

	particles := make([]string, 0, len(seen))
	for m := range seen {
		particles = append(particles, m)
	}

	sort.Slice(particles, func(i, j int) bool {
		li := utf8.RuneCountInString(particles[i])
		lj := utf8.RuneCountInString(particles[j])
		if li != lj {
			return li > lj
		}
		return particles[i] < particles[j]
	})

	return &Lexicon{particles: particles}
}

// Classes returns a copy of the particle class tables.
func Classes() []Class {
	out := make([]Class, len(classes))
	for i, c := range classes {
		members := make([]string, len(c.Members))
		copy(members, c.Members)
		out[i] = Class{Name: c.Name, Members: members}
	}
	return out
}

// Particles returns a copy of the ordered annexable-particle list.
func (l *Lexicon) Particles() []string {
	out := make([]string, len(l.particles))
	copy(out, l.particles)
	return out
}
