// Package engine contains the categorization core: rule-first
// classification with hosted-classifier and keyword fallbacks, and the
// rule learner fed by manual corrections.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pennywise-app/pennywise/internal/common"
	"github.com/pennywise-app/pennywise/internal/llm"
	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/service"
)

// Confidence assigned to keyword-fallback classifications.
const fallbackConfidence = 0.3

// Confidence substituted when the hosted classifier returns a label
// outside the fixed category set.
const invalidCategoryConfidence = 0.5

// Classifier resolves a category for a transaction: learned rule first,
// hosted classifier second, deterministic keyword match third.
type Classifier struct {
	storage service.Storage
	client  llm.Client
	logger  *slog.Logger
	timeout time.Duration
}

// NewClassifier creates a classifier. timeout bounds the hosted
// classification call; zero means 10 seconds.
func NewClassifier(storage service.Storage, client llm.Client, timeout time.Duration, logger *slog.Logger) *Classifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		storage: storage,
		client:  client,
		logger:  logger,
		timeout: timeout,
	}
}

// Classify always yields a category from the fixed set with confidence in
// [0, 1]. Upstream failures are absorbed by the fallback chain and never
// surface as errors; the Degraded flag marks keyword-fallback results.
func (c *Classifier) Classify(ctx context.Context, userID, merchant string, amountCents int64, description string) model.ClassificationResult {
	if rule := c.lookupRule(ctx, userID, merchant); rule != nil {
		return *rule
	}

	return c.classifyHosted(ctx, merchant, amountCents, description)
}

// lookupRule returns a rule-sourced result when a sufficiently confident
// rule exists, recording the hit. Storage failures degrade to the hosted
// path rather than failing classification.
func (c *Classifier) lookupRule(ctx context.Context, userID, merchant string) *model.ClassificationResult {
	rule, err := c.storage.GetRule(ctx, userID, merchant)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			c.logger.Warn("rule lookup failed, falling through to hosted classifier",
				"user_id", userID,
				"merchant", merchant,
				"error", err)
		}
		return nil
	}

	if rule.Confidence <= model.RuleApplyThreshold {
		return nil
	}

	if err := c.storage.RecordRuleUse(ctx, userID, merchant); err != nil {
		c.logger.Warn("failed to record rule use",
			"user_id", userID,
			"merchant", merchant,
			"error", err)
	}

	c.logger.Debug("classified by rule",
		"user_id", userID,
		"merchant", merchant,
		"category", rule.Category,
		"confidence", rule.Confidence)

	return &model.ClassificationResult{
		Category:   rule.Category,
		Confidence: rule.Confidence,
		Source:     model.SourceRule,
	}
}

// classifyHosted calls the hosted classifier with a bounded timeout and
// validates its untrusted output. Any failure takes the keyword path.
func (c *Classifier) classifyHosted(ctx context.Context, merchant string, amountCents int64, description string) model.ClassificationResult {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Classify(callCtx, llm.ClassifyRequest{
		Merchant:    merchant,
		AmountCents: amountCents,
		Description: description,
	})
	if err != nil {
		c.logger.Warn("hosted classification failed, using keyword fallback",
			"merchant", merchant,
			"error", err)
		return model.ClassificationResult{
			Category:   keywordCategory(merchant),
			Confidence: fallbackConfidence,
			Source:     model.SourceAI,
			Degraded:   true,
		}
	}

	category, ok := model.ParseCategory(resp.Category)
	confidence := clamp(resp.Confidence)
	if !ok {
		c.logger.Warn("hosted classifier returned invalid category, defaulting to Other",
			"merchant", merchant,
			"returned", resp.Category)
		confidence = invalidCategoryConfidence
	}

	c.logger.Debug("classified by hosted classifier",
		"merchant", merchant,
		"category", category,
		"confidence", confidence)

	return model.ClassificationResult{
		Category:   category,
		Confidence: confidence,
		Source:     model.SourceAI,
	}
}

func clamp(confidence float64) float64 {
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}
