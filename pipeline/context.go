package pipeline

import (
	"github.com/intellicredit/creditmemory/features"
	"github.com/intellicredit/creditmemory/memory"
	"github.com/intellicredit/creditmemory/oracle"
)

// DecisionContext bundles everything the reasoning stage sees for one
// analyze call: the current applicant's features, the precedent retrieved
// from both memory collections, and the hard-rule violations. It lives for
// the duration of one call and is then discarded.
type DecisionContext struct {
	Applicant   features.FeatureMap
	RiskMemory  []memory.Hit
	FraudMemory []memory.Hit
	Violations  []string
}

// BuildContext is pure assembly; no transformation beyond shape.
func BuildContext(applicant features.FeatureMap, riskHits, fraudHits []memory.Hit, violations []string) DecisionContext {
	return DecisionContext{
		Applicant:   applicant,
		RiskMemory:  riskHits,
		FraudMemory: fraudHits,
		Violations:  violations,
	}
}

// OracleRequest flattens the context for the reasoning service. Each hit's
// payload is copied and annotated with its similarity score so the prompt
// builder can label match strength.
func (c DecisionContext) OracleRequest() oracle.Request {
	return oracle.Request{
		Applicant:  map[string]any(c.Applicant),
		RiskTwins:  flattenHits(c.RiskMemory),
		FraudTwins: flattenHits(c.FraudMemory),
		Violations: c.Violations,
	}
}

func flattenHits(hits []memory.Hit) []map[string]any {
	out := make([]map[string]any, 0, len(hits))
	for _, h := range hits {
		payload := make(map[string]any, len(h.Payload)+1)
		for k, v := range h.Payload {
			payload[k] = v
		}
		payload["similarity_score"] = h.Score
		out = append(out, payload)
	}
	return out
}
