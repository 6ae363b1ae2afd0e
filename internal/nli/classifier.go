package nli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/veritas-labs/driftscope/internal/model"
)

// Classifier is the entailment capability: a 3-way natural-language-
// inference scorer over an (evidence, claim) pair. The ordering is a
// fixed protocol requirement: entailment is directional ("does
// evidence entail claim").
//
// Implementations must be safe for concurrent use and must tolerate
// empty evidence or claim text; "no disclosure found" is valid input.
type Classifier interface {
	// Name returns the provider name.
	Name() string

	// Classify returns the categorical distribution over
	// (contradiction, entailment, neutral) for the pair.
	Classify(ctx context.Context, evidence, claim string) (model.Distribution, error)

	// IsAvailable checks if the provider is properly configured and accessible.
	IsAvailable(ctx context.Context) bool
}

// BuildPrompt constructs the fixed NLI judging prompt. The response
// contract is a JSON object with exactly the three label keys.
func BuildPrompt(evidence, claim string) string {
	if evidence == "" {
		evidence = "(no evidence text)"
	}
	if claim == "" {
		claim = "(no claim text)"
	}

	return fmt.Sprintf(`You are a natural language inference judge. Given a PREMISE (source evidence) and a HYPOTHESIS (extracted claim), estimate the probability of each relation.

PREMISE:
%s

HYPOTHESIS:
%s

Respond with ONLY a JSON object of three probabilities summing to 1:
{"contradiction": <float>, "entailment": <float>, "neutral": <float>}

- "entailment": the premise logically supports or implies the hypothesis.
- "contradiction": the premise conflicts with the hypothesis.
- "neutral": the premise neither supports nor conflicts.
If the premise is missing or empty, the hypothesis cannot be supported.`, evidence, claim)
}

// ParseDistribution decodes the capability's JSON response into the
// fixed-order distribution. All three label keys must be present;
// extra keys or missing keys are a malformed response, not coerced.
func ParseDistribution(raw string) (model.Distribution, error) {
	var dist model.Distribution

	raw = strings.TrimSpace(raw)
	// Some providers wrap JSON in markdown fences.
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var fields map[string]float64
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return dist, fmt.Errorf("decode distribution: %w", err)
	}
	if len(fields) != 3 {
		return dist, fmt.Errorf("expected exactly 3 label probabilities, got %d", len(fields))
	}

	for i, label := range []string{"contradiction", "entailment", "neutral"} {
		p, ok := fields[label]
		if !ok {
			return dist, fmt.Errorf("missing %q probability", label)
		}
		dist[i] = p
	}

	return dist, nil
}
