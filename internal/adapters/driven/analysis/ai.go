package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/flywheel-labs/paperscout/internal/core/domain"
	"github.com/flywheel-labs/paperscout/internal/core/ports/driven"
	"github.com/flywheel-labs/paperscout/internal/logger"
)

// maxTextSample bounds how much extracted text goes into the prompt.
const maxTextSample = 10000

// maxAnalysisTokens bounds the model's response.
const maxAnalysisTokens = 2000

// analysisPrompt is the fixed analysis template. The five relevance
// dimensions mirror domain.Categories.
const analysisPrompt = `Analyze this AI/ML research paper:

Title: %s

Abstract: %s

Text Sample: %s

Provide analysis in the following format:

## Summary
[2-3 paragraph summary of the paper's key contributions, methods, and results]

## Product Relevance
Assess relevance for these areas (rate as High/Medium/Low/None and explain):
- Sales: [Assessment and reasoning]
- Demand Generation: [Assessment and reasoning]
- Customer Success: [Assessment and reasoning]
- Customer Support: [Assessment and reasoning]
- Solution Partners: [Assessment and reasoning]

## Startup Opportunities
[3-5 potential startup ideas or business applications based on this research]

## Overall Value
[High/Medium/Low] - [Brief explanation of overall value for product teams]`

// Completer is the model call the AI analyser depends on.
type Completer interface {
	Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error)
}

// Ensure AI implements the interface.
var _ driven.Analyser = (*AI)(nil)

// AI analyses papers with a generative model, trying each candidate model
// in order and degrading to the keyword analyser on terminal failure.
type AI struct {
	completer Completer
	models    []string
	fallback  driven.Analyser
}

// NewAI creates the model-backed analyser. models are tried in order; a
// model-not-found error advances to the next candidate, any other error
// aborts the attempt sequence.
func NewAI(completer Completer, models []string, fallback driven.Analyser) *AI {
	return &AI{
		completer: completer,
		models:    models,
		fallback:  fallback,
	}
}

// Analyse asks the model for the categorical and narrative analysis.
func (a *AI) Analyse(ctx context.Context, title, abstract, fullText string) domain.Analysis {
	text, err := a.complete(ctx, title, abstract, fullText)
	if err != nil {
		logger.Warn("AI analysis failed, using keyword fallback: %v", err)
		return a.fallback.Analyse(ctx, title, abstract, fullText)
	}
	return domain.Analysis{
		Summary:     text,
		AIGenerated: true,
	}
}

func (a *AI) complete(ctx context.Context, title, abstract, fullText string) (string, error) {
	if title == "" {
		title = "Untitled"
	}
	if abstract == "" {
		abstract = "No abstract available"
	}
	if fullText == "" {
		fullText = "No text extracted"
	}

	sample := fullText
	if len(sample) > maxTextSample {
		sample = sample[:maxTextSample]
	}
	prompt := fmt.Sprintf(analysisPrompt, title, abstract, sample)

	var lastErr error
	for _, model := range a.models {
		text, err := a.completer.Complete(ctx, model, prompt, maxAnalysisTokens)
		if err == nil {
			logger.Debug("analysis produced by model %s", model)
			return text, nil
		}
		lastErr = err
		if errors.Is(err, domain.ErrModelNotFound) {
			logger.Debug("model %s not available, trying next candidate", model)
			continue
		}
		// Anything other than a missing model is terminal.
		return "", err
	}

	if lastErr == nil {
		lastErr = errors.New("no model candidates configured")
	}
	return "", fmt.Errorf("no available models: %w", lastErr)
}
