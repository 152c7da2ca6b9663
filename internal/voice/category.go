package voice

import (
	"sort"
	"strings"

	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/models"
	"avinya/fin-pulse/internal/store"
)

const (
	wholeTokenScore = 3
	substringScore  = 1
)

// predictCategory runs learned voice patterns, then the scored keyword table.
func (p *Parser) predictCategory(description string) string {
	desc := strings.ToLower(strings.TrimSpace(description))
	if category, ok := p.learnedCategory(desc); ok {
		return category
	}

	best, bestScore := models.CategoryMiscellaneous, 0
	for _, c := range p.knowledge.Get().VoiceCategories {
		if score := scoreKeywords(desc, c.Keywords); score > bestScore {
			best, bestScore = c.Name, score
		}
	}
	p.logger.WithFields(
		logging.Field{Key: logging.FieldCategory, Value: best},
		logging.Field{Key: logging.FieldReason, Value: bestScore},
	).Debug("Voice category scored")
	return best
}

// learnedCategory tries an exact key, then a key and description where one
// contains the other. Keys are visited in sorted order.
func (p *Parser) learnedCategory(desc string) (string, bool) {
	if desc == "" {
		return "", false
	}
	learned := p.store.GetMap(store.SlotVoicePatterns)
	if category, ok := learned[desc]; ok {
		return category, true
	}

	keys := make([]string, 0, len(learned))
	for k := range learned {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(desc, k) || strings.Contains(k, desc) {
			p.logger.WithFields(
				logging.Field{Key: logging.FieldPattern, Value: k},
				logging.Field{Key: logging.FieldCategory, Value: learned[k]},
			).Debug("Voice description matched learned pattern")
			return learned[k], true
		}
	}
	return "", false
}

// scoreKeywords sums a score per keyword found in desc: more for a keyword
// standing as whole words than for one buried inside a word.
func scoreKeywords(desc string, keywords []string) int {
	padded := " " + strings.Join(tokenize(desc), " ") + " "
	score := 0
	for _, kw := range keywords {
		if kw == "" || !strings.Contains(desc, kw) {
			continue
		}
		if strings.Contains(padded, " "+kw+" ") {
			score += wholeTokenScore
		} else {
			score += substringScore
		}
	}
	return score
}
