// Package inference adapts a remote model-serving endpoint to the optional
// model ports. Every capability degrades to its heuristic fallback when the
// backend is absent or failing, so callers treat errors as advisory.
package inference

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/rootuip/docintel/internal/core/domain"
	"github.com/rootuip/docintel/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	executor   *resilience.Executor
}

type Options struct {
	RequestTimeout     time.Duration
	RequestsPerSecond  float64
	ResilienceExecutor *resilience.Executor
}

func New(baseURL string, options Options) *Client {
	timeout := options.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	var limiter *rate.Limiter
	if options.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(options.RequestsPerSecond), 1)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		executor:   options.ResilienceExecutor,
	}
}

func (c *Client) available() bool {
	return c != nil && c.baseURL != ""
}

func (c *Client) call(ctx context.Context, operation, path string, payload, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	fn := func(ctx context.Context) error {
		return c.postJSON(ctx, path, payload, out, operation)
	}
	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "inference."+operation, fn, classifyInferenceError)
	} else {
		err = fn(ctx)
	}
	if err != nil {
		return domain.WrapError(domain.ErrModelUnavailable, "inference "+operation, err)
	}
	return nil
}

// TypeClassifier calls the document type model. Implements the
// classification model port.
type TypeClassifier struct {
	client *Client
}

func NewTypeClassifier(client *Client) *TypeClassifier {
	return &TypeClassifier{client: client}
}

func (t *TypeClassifier) Available() bool { return t != nil && t.client.available() }

func (t *TypeClassifier) Predict(ctx context.Context, input domain.ImageTensor) ([]float64, error) {
	request := map[string]any{
		"width":  input.Width,
		"height": input.Height,
		"pixels": input.Pixels,
	}
	var response struct {
		Probabilities []float64 `json:"probabilities"`
	}
	if err := t.client.call(ctx, "classify", "/v1/classify", request, &response); err != nil {
		return nil, err
	}
	return response.Probabilities, nil
}

// FieldModel calls the field extraction model. Implements the extraction
// model port.
type FieldModel struct {
	client *Client
}

func NewFieldModel(client *Client) *FieldModel {
	return &FieldModel{client: client}
}

func (f *FieldModel) Available() bool { return f != nil && f.client.available() }

func (f *FieldModel) ExtractFields(ctx context.Context, text string, typeID string) (map[domain.FieldName]string, error) {
	request := map[string]any{
		"text": text,
		"type": typeID,
	}
	var response struct {
		Fields map[domain.FieldName]string `json:"fields"`
	}
	if err := f.client.call(ctx, "extract", "/v1/extract", request, &response); err != nil {
		return nil, err
	}
	return response.Fields, nil
}

// HandwritingScorer calls the handwriting discrimination model. Implements
// the handwriting model port.
type HandwritingScorer struct {
	client *Client
}

func NewHandwritingScorer(client *Client) *HandwritingScorer {
	return &HandwritingScorer{client: client}
}

func (h *HandwritingScorer) Available() bool { return h != nil && h.client.available() }

func (h *HandwritingScorer) Score(ctx context.Context, region domain.ImageTensor) (float64, error) {
	request := map[string]any{
		"width":  region.Width,
		"height": region.Height,
		"pixels": region.Pixels,
	}
	var response struct {
		Score float64 `json:"score"`
	}
	if err := h.client.call(ctx, "handwriting", "/v1/handwriting", request, &response); err != nil {
		return 0, err
	}
	return response.Score, nil
}
