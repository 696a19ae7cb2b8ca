// Package classify determines document types with a two-tier strategy: a
// trained model when one is configured and an image is present, otherwise a
// naive Bayes keyword classifier trained from the catalog at startup.
package classify

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/jbrukh/bayesian"

	"github.com/rootuip/docintel/internal/catalog"
	"github.com/rootuip/docintel/internal/core/domain"
	"github.com/rootuip/docintel/internal/core/ports"
	"github.com/rootuip/docintel/internal/preprocess"
)

// modelInputSize is the square edge length of the classification model's
// input tensor.
const modelInputSize = 224

const maxAlternatives = 3

// Classifier implements ports.Classifier.
type Classifier struct {
	model   ports.ClassificationModel
	bayes   *bayesian.Classifier
	typeIDs []string
	logger  *slog.Logger
}

// New trains the keyword fallback from catalog keywords: every keyword is one
// training document for its type.
func New(cat *catalog.Catalog, model ports.ClassificationModel, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	typeIDs := cat.TypeIDs()
	classes := make([]bayesian.Class, len(typeIDs))
	for i, id := range typeIDs {
		classes[i] = bayesian.Class(id)
	}
	bayes := bayesian.NewClassifier(classes...)
	for _, spec := range cat.Types() {
		for _, keyword := range spec.Keywords {
			bayes.Learn(preprocess.Tokenize(keyword), bayesian.Class(spec.ID))
		}
	}
	return &Classifier{
		model:   model,
		bayes:   bayes,
		typeIDs: typeIDs,
		logger:  logger,
	}
}

// Classify tries model inference when its preconditions hold, otherwise the
// keyword classifier. Low model confidence is surfaced, never overridden by
// a second attempt.
func (c *Classifier) Classify(ctx context.Context, pre domain.PreprocessedDocument) domain.Classification {
	if c.model != nil && c.model.Available() && pre.NormalizedImage != nil {
		if cls, ok := c.classifyWithModel(ctx, pre); ok {
			return cls
		}
	}
	return c.classifyText(pre)
}

func (c *Classifier) classifyWithModel(ctx context.Context, pre domain.PreprocessedDocument) (domain.Classification, bool) {
	tensor := preprocess.Tensor(pre.NormalizedImage, modelInputSize)
	probs, err := c.model.Predict(ctx, tensor)
	if err != nil {
		c.logger.Warn("classification model degraded to keyword fallback", "error", err)
		return domain.Classification{}, false
	}
	if len(probs) != len(c.typeIDs) {
		c.logger.Warn("classification model output size mismatch",
			"got", len(probs), "want", len(c.typeIDs))
		return domain.Classification{}, false
	}
	return c.rank(probs), true
}

func (c *Classifier) classifyText(pre domain.PreprocessedDocument) domain.Classification {
	if len(pre.Tokens) == 0 {
		return domain.Classification{TypeID: domain.TypeUnknown, Confidence: 0}
	}
	logScores, _, _ := c.bayes.LogScores(pre.Tokens)
	return c.rank(softmax(logScores))
}

// rank maps a probability vector (indexed in catalog order) to the best type
// plus up to three alternatives. Ties keep catalog order for determinism.
func (c *Classifier) rank(probs []float64) domain.Classification {
	scored := make([]domain.TypeScore, len(probs))
	for i, p := range probs {
		scored[i] = domain.TypeScore{TypeID: c.typeIDs[i], Confidence: p}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Confidence > scored[j].Confidence
	})

	n := maxAlternatives
	if len(scored)-1 < n {
		n = len(scored) - 1
	}
	alts := make([]domain.TypeScore, n)
	copy(alts, scored[1:1+n])

	return domain.Classification{
		TypeID:       scored[0].TypeID,
		Confidence:   scored[0].Confidence,
		Alternatives: alts,
	}
}

// softmax converts log scores into a probability distribution, shifting by
// the max to stay numerically stable.
func softmax(logScores []float64) []float64 {
	if len(logScores) == 0 {
		return nil
	}
	max := logScores[0]
	for _, s := range logScores[1:] {
		if s > max {
			max = s
		}
	}
	probs := make([]float64, len(logScores))
	sum := 0.0
	for i, s := range logScores {
		probs[i] = math.Exp(s - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
