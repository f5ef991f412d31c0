// Package taxonomy defines the canonical Category and Trait records that
// organize interview content, and the fuzzy resolver that reconciles
// free-text model output with those records.
//
// Resolution is intentionally lossy: a name with no canonical match is
// dropped, never an error. The model's vocabulary does not reliably match
// the stored taxonomy, and a partially resolved result is still useful.
package taxonomy
