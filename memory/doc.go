// Package memory defines the dual-collection vector memory the decision
// pipeline retrieves precedent from and writes adjudicated outcomes to.
//
// Two logical collections exist: risk memory (financial profiles) and
// fraud memory (behavioral profiles). Every finalized application lands in
// risk memory; fraud memory only grows when a reviewer marks an outcome
// fraudulent.
//
// Architecture:
//   - Store: vector storage backend (chromem-go embedded for local runs
//     and tests, Qdrant over gRPC for production)
//   - SanitizePayload: flattens a feature map to plain JSON-safe values
//     before transmission
//   - PointID: deterministic UUID per application so a re-finalized
//     decision overwrites its earlier record instead of duplicating it
//
// Retrieval is best-effort by contract: a backend failure is logged by the
// caller and substituted with an empty hit list, never propagated as a
// pipeline error.
package memory
