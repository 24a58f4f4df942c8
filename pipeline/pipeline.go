// Package pipeline orchestrates one underwriting decision: feature
// derivation, hard rules, dual-memory retrieval, reasoning, parsing, and
// the human-feedback write-back. Collaborator failures degrade the answer
// instead of aborting it; the only hard failures are malformed input and
// memory writes during finalization.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/intellicredit/creditmemory/core"
	"github.com/intellicredit/creditmemory/features"
	"github.com/intellicredit/creditmemory/memory"
	"github.com/intellicredit/creditmemory/oracle"
	"github.com/intellicredit/creditmemory/rules"
)

// Pipeline wires the feature engine, the vector store, and the reasoning
// oracle into the decision flow. Safe for concurrent use.
type Pipeline struct {
	engine      *features.Engine
	store       memory.Store
	oracle      oracle.Oracle
	searchLimit int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSearchLimit overrides how many twins are retrieved per collection.
func WithSearchLimit(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.searchLimit = n
		}
	}
}

// New builds a Pipeline over its three collaborators.
func New(engine *features.Engine, store memory.Store, o oracle.Oracle, opts ...Option) *Pipeline {
	p := &Pipeline{
		engine:      engine,
		store:       store,
		oracle:      o,
		searchLimit: memory.DefaultSearchLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Analyze runs the full decision flow for one application. The only error
// it returns is malformed input; memory and reasoning failures are logged
// and absorbed into a fail-closed response.
func (p *Pipeline) Analyze(ctx context.Context, req core.PipelineRequest, ipDensity, deviceDensity map[string]float64) (*core.PipelineResponse, error) {
	appID := req.Application.ApplicationID

	// PHASE 1: FEATURES_EXTRACTED
	featureMap, riskVec, fraudVec, err := p.engine.Derive(req.Application, req.Transactions, ipDensity, deviceDensity)
	if err != nil {
		return nil, err
	}
	log.Printf("[PIPELINE] features extracted app=%s txs=%d", appID, len(req.Transactions))

	// PHASE 2: RULES_CHECKED
	violations := rules.Check(featureMap)
	if len(violations) > 0 {
		log.Printf("[RULES] app=%s violations=%v", appID, violations)
	}

	// PHASE 3: MEMORY_RETRIEVED
	// Both collections are queried concurrently; a failed query yields an
	// empty hit list, never an aborted decision.
	riskHits, fraudHits := p.retrieve(ctx, appID, riskVec, fraudVec)

	// PHASE 4: CONTEXT_BUILT
	dctx := BuildContext(featureMap, riskHits, fraudHits, violations)

	// PHASE 5: REASONED
	raw, err := p.oracle.Decide(ctx, dctx.OracleRequest())
	if err != nil {
		rerr := &core.ReasoningUnavailableError{Err: err}
		log.Printf("[ORACLE] app=%s degraded: %v", appID, rerr)
		raw = fmt.Sprintf("Error communicating with reasoning service: %v", err)
	}

	// PHASE 6: PARSED
	verdict := ParseVerdict(raw)

	// PHASE 7: RESPONSE_READY
	resp := &core.PipelineResponse{
		ApplicationID:   appID,
		DecisionStatus:  verdict.Status,
		ConfidenceScore: verdict.Confidence,
		Explanation:     verdict.Explanation,
		Suggestions:     verdict.Suggestions,
		RiskTwins:       twinsFromHits(riskHits),
		FraudMatches:    twinsFromHits(fraudHits),
	}
	log.Printf("[PIPELINE] app=%s decision=%s confidence=%d", appID, resp.DecisionStatus, resp.ConfidenceScore)
	return resp, nil
}

// retrieve queries both memory collections concurrently. Each failure is
// logged as a MemoryUnavailableError and replaced with an empty hit list.
func (p *Pipeline) retrieve(ctx context.Context, appID string, riskVec, fraudVec []float32) ([]memory.Hit, []memory.Hit) {
	var (
		wg        sync.WaitGroup
		riskHits  []memory.Hit
		fraudHits []memory.Hit
	)

	query := func(collection string, vec []float32, out *[]memory.Hit) {
		defer wg.Done()
		hits, err := p.store.Query(ctx, collection, memory.NormalizeVector(vec), p.searchLimit)
		if err != nil {
			merr := &core.MemoryUnavailableError{Collection: collection, Op: "query", Err: err}
			log.Printf("[MEMORY] app=%s degraded: %v", appID, merr)
			return
		}
		*out = hits
	}

	wg.Add(2)
	go query(memory.RiskCollection, riskVec, &riskHits)
	go query(memory.FraudCollection, fraudVec, &fraudHits)
	wg.Wait()

	log.Printf("[MEMORY] app=%s risk_hits=%d fraud_hits=%d", appID, len(riskHits), len(fraudHits))
	return riskHits, fraudHits
}

// Finalize records a human reviewer's outcome into memory. The risk
// collection is always written; the fraud collection only when the final
// status marks the case as fraudulent. Writes are sequential and never
// retried: a failed first write aborts, a failed second write reports a
// PartialWriteError so the caller knows memory is inconsistent.
func (p *Pipeline) Finalize(ctx context.Context, action core.ReviewAction, req core.PipelineRequest, ipDensity, deviceDensity map[string]float64) error {
	if action.ApplicationID == "" {
		return &core.MalformedInputError{Field: "application_id", Detail: "must not be empty"}
	}
	if action.FinalStatus == "" {
		return &core.MalformedInputError{Field: "final_status", Detail: "must not be empty"}
	}

	featureMap, riskVec, fraudVec, err := p.engine.Derive(req.Application, req.Transactions, ipDensity, deviceDensity)
	if err != nil {
		return err
	}

	payload := featureMap.Clone()
	payload["loan_status"] = action.FinalStatus
	payload["human_notes"] = action.Notes
	sanitized := memory.SanitizePayload(payload)

	id := memory.PointID(action.ApplicationID)

	if err := p.store.Upsert(ctx, memory.RiskCollection, id, memory.NormalizeVector(riskVec), sanitized); err != nil {
		return &core.MemoryUnavailableError{Collection: memory.RiskCollection, Op: "upsert", Err: err}
	}
	log.Printf("[FEEDBACK] app=%s risk memory updated status=%q", action.ApplicationID, action.FinalStatus)

	if !strings.Contains(action.FinalStatus, core.FraudStatusMarker) {
		return nil
	}

	if err := p.store.Upsert(ctx, memory.FraudCollection, id, memory.NormalizeVector(fraudVec), sanitized); err != nil {
		perr := &core.PartialWriteError{
			ApplicationID: action.ApplicationID,
			Written:       memory.RiskCollection,
			Failed:        memory.FraudCollection,
			Err:           err,
		}
		log.Printf("[FEEDBACK] app=%s partial write: %v", action.ApplicationID, perr)
		return perr
	}
	log.Printf("[FEEDBACK] app=%s fraud memory updated", action.ApplicationID)
	return nil
}

// Health reports whether the memory backend is reachable.
func (p *Pipeline) Health(ctx context.Context) error {
	if err := p.store.Health(ctx); err != nil {
		return fmt.Errorf("memory backend: %w", err)
	}
	return nil
}
