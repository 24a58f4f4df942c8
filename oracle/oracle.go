// Package oracle talks to the external reasoning service that converts a
// structured decision context into a free-text verdict. The verdict is
// parsed downstream; nothing here guarantees the text is well-formed, only
// that failures are reported so the pipeline can fail closed.
package oracle

import "context"

// Request is the flattened decision context handed to the reasoning
// service: the current applicant's features, the retrieved precedent from
// both memory collections (payloads merged with their similarity scores),
// and any hard-rule violations.
type Request struct {
	Applicant  map[string]any
	RiskTwins  []map[string]any
	FraudTwins []map[string]any
	Violations []string
}

// Oracle produces a free-text underwriting verdict for a decision context.
// Implementations: AnthropicOracle.
type Oracle interface {
	Decide(ctx context.Context, req Request) (string, error)
}
