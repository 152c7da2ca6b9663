package gate

import (
	"strings"

	"avinya/fin-pulse/internal/knowledge"
	"avinya/fin-pulse/internal/store"
)

// PhraseRule decides when the message contains one of a static phrase list.
type PhraseRule struct {
	name    string
	phrases func() []string
	likely  bool
}

// NewPhraseRule creates a PhraseRule answering likely on a hit.
func NewPhraseRule(name string, phrases []string, likely bool) *PhraseRule {
	return &PhraseRule{name: name, phrases: func() []string { return phrases }, likely: likely}
}

func (r *PhraseRule) Name() string { return r.name }

func (r *PhraseRule) Check(in Input) (bool, string, bool) {
	if match, ok := knowledge.FirstMatch(in.Text, r.phrases()); ok {
		return r.likely, match, true
	}
	return false, "", false
}

// LearnedRule decides when the message's pattern key contains a learned key.
type LearnedRule struct {
	name   string
	set    *store.PatternSet
	likely bool
}

// NewLearnedRule creates a LearnedRule over a pattern set.
func NewLearnedRule(name string, set *store.PatternSet, likely bool) *LearnedRule {
	return &LearnedRule{name: name, set: set, likely: likely}
}

func (r *LearnedRule) Name() string { return r.name }

func (r *LearnedRule) Check(in Input) (bool, string, bool) {
	if in.Key == "" {
		return false, "", false
	}
	if match, ok := r.set.Any(func(learned string) bool {
		return strings.Contains(in.Key, learned)
	}); ok {
		return r.likely, match, true
	}
	return false, "", false
}

// KeywordRule is the generic fallback: any keyword hit means likely, and
// no hit means not likely. It always decides.
type KeywordRule struct {
	keywords func() []string
}

func (r *KeywordRule) Name() string { return "Keyword" }

func (r *KeywordRule) Check(in Input) (bool, string, bool) {
	match, ok := knowledge.FirstMatch(in.Text, r.keywords())
	return ok, match, true
}
