package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flywheel-labs/paperscout/internal/core/domain"
)

// mockCompleter implements Completer for testing. Responses are keyed by
// model id; a missing key behaves as model-not-found.
type mockCompleter struct {
	responses map[string]string
	err       error
	calls     []string
	prompts   []string
}

func (m *mockCompleter) Complete(_ context.Context, model, prompt string, _ int) (string, error) {
	m.calls = append(m.calls, model)
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	text, ok := m.responses[model]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrModelNotFound, model)
	}
	return text, nil
}

func TestAI_FirstModelSucceeds(t *testing.T) {
	completer := &mockCompleter{responses: map[string]string{"model-a": "## Summary\n\nGreat paper."}}
	ai := NewAI(completer, []string{"model-a", "model-b"}, NewKeyword(defaultKeywords()))

	a := ai.Analyse(context.Background(), "Title", "Abstract", "Full text")

	assert.True(t, a.AIGenerated)
	assert.Equal(t, "## Summary\n\nGreat paper.", a.Summary)
	assert.Equal(t, []string{"model-a"}, completer.calls)
}

func TestAI_ModelNotFoundAdvancesToNextCandidate(t *testing.T) {
	completer := &mockCompleter{responses: map[string]string{"model-b": "analysis text"}}
	ai := NewAI(completer, []string{"model-a", "model-b"}, NewKeyword(defaultKeywords()))

	a := ai.Analyse(context.Background(), "Title", "Abstract", "Full text")

	assert.True(t, a.AIGenerated)
	assert.Equal(t, []string{"model-a", "model-b"}, completer.calls)
}

func TestAI_OtherErrorAbortsAndFallsBack(t *testing.T) {
	completer := &mockCompleter{err: errors.New("rate limited")}
	ai := NewAI(completer, []string{"model-a", "model-b"}, NewKeyword(defaultKeywords()))

	a := ai.Analyse(context.Background(), "Title", "The abstract.", "Full text")

	// Only the first candidate is tried; the error is terminal.
	assert.Equal(t, []string{"model-a"}, completer.calls)
	assert.False(t, a.AIGenerated)
	assert.Contains(t, a.Summary, FallbackNotice)
	assert.Contains(t, a.Summary, "The abstract.")
}

func TestAI_AllCandidatesMissingFallsBack(t *testing.T) {
	completer := &mockCompleter{responses: map[string]string{}}
	ai := NewAI(completer, []string{"model-a", "model-b"}, NewKeyword(defaultKeywords()))

	a := ai.Analyse(context.Background(), "Title", "The abstract.", "Full text")

	assert.Equal(t, []string{"model-a", "model-b"}, completer.calls)
	assert.False(t, a.AIGenerated)
	assert.Contains(t, a.Summary, FallbackNotice)
}

func TestAI_PromptEmbedsTitleAbstractAndTruncatedText(t *testing.T) {
	completer := &mockCompleter{responses: map[string]string{"model-a": "ok"}}
	ai := NewAI(completer, []string{"model-a"}, NewKeyword(defaultKeywords()))

	long := strings.Repeat("x", maxTextSample+500)
	ai.Analyse(context.Background(), "My Title", "My Abstract", long)

	require.Len(t, completer.prompts, 1)
	prompt := completer.prompts[0]
	assert.Contains(t, prompt, "Title: My Title")
	assert.Contains(t, prompt, "Abstract: My Abstract")
	// The sample is capped, so the prompt stays bounded.
	assert.Less(t, len(prompt), maxTextSample+len(analysisPrompt)+100)
}

func TestAI_EmptyInputsUsePlaceholders(t *testing.T) {
	completer := &mockCompleter{responses: map[string]string{"model-a": "ok"}}
	ai := NewAI(completer, []string{"model-a"}, NewKeyword(defaultKeywords()))

	ai.Analyse(context.Background(), "", "", "")

	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "Untitled")
	assert.Contains(t, completer.prompts[0], "No abstract available")
	assert.Contains(t, completer.prompts[0], "No text extracted")
}
