// Package artifact renders pipeline output as the two downstream JSON
// artifacts: the graph object consumed by the map renderer and the ranked
// report object consumed by the review surface.
//
// Both objects are field complete. Downstream schema validation is strict
// about unexpected and missing properties, so every documented field is
// emitted even when empty, collections marshal as [] rather than null, and
// IDs are rendered as fixed-width hex strings because raw uint64 values are
// not safe as JSON numbers. Artifacts carry no wall-clock data; identical
// runs produce byte-identical JSON.
package artifact
