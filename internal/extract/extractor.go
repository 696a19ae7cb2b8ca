// Package extract produces field maps for classified documents, preferring
// catalog patterns, then label-anchored heuristics, then the optional trained
// extraction model.
package extract

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/rootuip/docintel/internal/catalog"
	"github.com/rootuip/docintel/internal/core/domain"
	"github.com/rootuip/docintel/internal/core/ports"
)

// Extractor implements ports.FieldExtractor.
type Extractor struct {
	catalog *catalog.Catalog
	model   ports.ExtractionModel
	logger  *slog.Logger

	mu      sync.RWMutex
	labelRe map[domain.FieldName]*regexp.Regexp
}

func New(cat *catalog.Catalog, model ports.ExtractionModel, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		catalog: cat,
		model:   model,
		logger:  logger,
		labelRe: make(map[domain.FieldName]*regexp.Regexp),
	}
}

// Extract walks the fields declared for typeID. Fields not found are absent
// from the map, never nil entries. Confidence is found over expected, so it
// always lands in [0,1].
func (e *Extractor) Extract(ctx context.Context, text string, typeID string) domain.ExtractionResult {
	spec, ok := e.catalog.Get(typeID)
	if !ok {
		return domain.ExtractionResult{Fields: map[domain.FieldName]string{}, Confidence: 0}
	}

	fields := make(map[domain.FieldName]string, len(spec.Fields))
	if text != "" {
		for _, field := range spec.Fields {
			if value, found := e.extractField(text, field); found {
				fields[field] = value
			}
		}
	}

	if e.model != nil && e.model.Available() && text != "" {
		predicted, err := e.model.ExtractFields(ctx, text, typeID)
		if err != nil {
			e.logger.Warn("extraction model degraded to pattern results", "type", typeID, "error", err)
		} else {
			// model predictions override pattern matches for the same field
			for field, value := range predicted {
				if value != "" {
					fields[field] = value
				}
			}
		}
	}

	found := 0
	for _, field := range spec.Fields {
		if _, ok := fields[field]; ok {
			found++
		}
	}

	return domain.ExtractionResult{
		Fields:     fields,
		Confidence: float64(found) / float64(len(spec.Fields)),
	}
}

func (e *Extractor) extractField(text string, field domain.FieldName) (string, bool) {
	if p, ok := e.catalog.Pattern(field); ok {
		return p.Find(text)
	}
	// no catalog pattern: anchor on a label derived from the field name,
	// matched within a single line
	re := e.labelPattern(field)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	value := strings.TrimSpace(m[1])
	return value, value != ""
}

func (e *Extractor) labelPattern(field domain.FieldName) *regexp.Regexp {
	e.mu.RLock()
	re, ok := e.labelRe[field]
	e.mu.RUnlock()
	if ok {
		return re
	}

	label := fieldLabel(string(field))
	re = regexp.MustCompile(`(?i)\b` + label + `[\s:]+([^\n]+)`)

	e.mu.Lock()
	e.labelRe[field] = re
	e.mu.Unlock()
	return re
}

// fieldLabel turns a camelCase field name into a whitespace-tolerant label
// expression: totalAmount -> total\s+amount.
func fieldLabel(field string) string {
	var words []string
	start := 0
	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, strings.ToLower(field[start:i]))
			start = i
		}
	}
	words = append(words, strings.ToLower(field[start:]))
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(words, `\s+`)
}
