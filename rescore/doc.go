// Package rescore replays stored runs under the current configuration.
//
// Scoring weights, quotas and taxonomy packs evolve; stored artifacts do
// not. Rescoring walks every stored run, re-expands its original candidate
// pool through the current pipeline and overwrites the stored artifacts,
// keeping the run id and creation time. Runs are processed in batches with
// progress reporting; a run that keeps failing is skipped and counted, not
// fatal.
package rescore
