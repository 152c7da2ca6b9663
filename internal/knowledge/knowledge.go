// Package knowledge provides the pretrained reference data shipped with the
// engine: gate phrase lists, direction phrase lists and keyword tables.
//
// The data is read-only and loaded lazily, once. A load failure yields empty
// lists so that classification degrades to the learned and heuristic layers.
package knowledge

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/models"
)

//go:embed pretrained.yaml
var embedded []byte

// Pretrained is the shipped reference data.
type Pretrained struct {
	NonTransactionPhrases []string                `yaml:"non_transaction_phrases"`
	TransactionPhrases    []string                `yaml:"transaction_phrases"`
	TransactionKeywords   []string                `yaml:"transaction_keywords"`
	CreditPhrases         []string                `yaml:"credit_phrases"`
	DebitPhrases          []string                `yaml:"debit_phrases"`
	Categories            []models.CategoryConfig `yaml:"categories"`
	VoiceCategories       []models.CategoryConfig `yaml:"voice_categories"`
	Merchants             []string                `yaml:"merchants"`
}

// Source lazily loads Pretrained data from an override file or, by default,
// from the embedded copy. It is safe for concurrent use.
type Source struct {
	path   string
	logger logging.Logger

	once sync.Once
	data *Pretrained
}

// NewSource creates a Source. An empty path selects the embedded data.
func NewSource(path string, logger logging.Logger) *Source {
	return &Source{path: path, logger: logging.OrDefault(logger)}
}

// Static wraps already-built data, mostly for tests.
func Static(p *Pretrained) *Source {
	s := &Source{logger: logging.GetLogger()}
	s.once.Do(func() {
		if p == nil {
			p = &Pretrained{}
		}
		s.data = p.normalized()
	})
	return s
}

// Get returns the data, loading it on first use.
func (s *Source) Get() *Pretrained {
	s.once.Do(func() {
		data, err := s.load()
		if err != nil {
			s.logger.WithError(err).Warn("Failed to load pretrained knowledge, continuing without it",
				logging.Field{Key: logging.FieldInputFile, Value: s.path})
			data = &Pretrained{}
		}
		s.data = data.normalized()
		s.logger.Debug("Pretrained knowledge loaded",
			logging.Field{Key: logging.FieldCount, Value: len(s.data.Categories)})
	})
	return s.data
}

func (s *Source) load() (*Pretrained, error) {
	raw := embedded
	if s.path != "" {
		b, err := os.ReadFile(s.path)
		switch {
		case os.IsNotExist(err):
			s.logger.Warn("Pretrained knowledge file not found, using bundled data",
				logging.Field{Key: logging.FieldInputFile, Value: s.path})
		case err != nil:
			return nil, fmt.Errorf("error reading pretrained knowledge: %w", err)
		default:
			raw = b
		}
	}
	return Parse(raw)
}

// Parse decodes pretrained data from YAML.
func Parse(raw []byte) (*Pretrained, error) {
	var p Pretrained
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("error parsing pretrained knowledge: %w", err)
	}
	return &p, nil
}

// Default returns the parsed embedded data, or empty data if it is invalid.
func Default() *Pretrained {
	p, err := Parse(embedded)
	if err != nil {
		return &Pretrained{}
	}
	return p.normalized()
}

func (p *Pretrained) normalized() *Pretrained {
	return &Pretrained{
		NonTransactionPhrases: lowerAll(p.NonTransactionPhrases),
		TransactionPhrases:    lowerAll(p.TransactionPhrases),
		TransactionKeywords:   lowerAll(p.TransactionKeywords),
		CreditPhrases:         lowerAll(p.CreditPhrases),
		DebitPhrases:          lowerAll(p.DebitPhrases),
		Categories:            lowerTable(p.Categories),
		VoiceCategories:       lowerTable(p.VoiceCategories),
		Merchants:             lowerAll(p.Merchants),
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func lowerTable(in []models.CategoryConfig) []models.CategoryConfig {
	out := make([]models.CategoryConfig, 0, len(in))
	for _, c := range in {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		out = append(out, models.CategoryConfig{Name: name, Keywords: lowerAll(c.Keywords)})
	}
	return out
}

// FirstMatch returns the first phrase contained in text.
func FirstMatch(text string, phrases []string) (string, bool) {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return p, true
		}
	}
	return "", false
}
