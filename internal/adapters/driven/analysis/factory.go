package analysis

import (
	"github.com/flywheel-labs/paperscout/internal/adapters/driven/llm/anthropic"
	"github.com/flywheel-labs/paperscout/internal/core/ports/driven"
	"github.com/flywheel-labs/paperscout/internal/logger"
)

// New selects the analyser variant once at construction. An empty apiKey
// is not an error, only a capability reduction: the keyword analyser is
// used for the whole run.
func New(apiKey string, models, keywords []string) driven.Analyser {
	keyword := NewKeyword(keywords)

	if apiKey == "" {
		logger.Info("no model credential configured; using keyword analysis")
		return keyword
	}

	client, err := anthropic.NewClient(anthropic.Config{APIKey: apiKey})
	if err != nil {
		logger.Warn("model client unavailable (%v); using keyword analysis", err)
		return keyword
	}
	return NewAI(client, models, keyword)
}
