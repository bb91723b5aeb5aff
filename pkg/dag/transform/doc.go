// Package transform provides graph transformations over [dag.DAG] used when
// presenting dependency graphs.
//
// # Transitive Reduction
//
// [TransitiveReduction] removes redundant edges that can be inferred through
// other paths. If A→B and B→C exist, then A→C is redundant and removed.
// Rendering a reduced graph keeps large component ecosystems legible.
//
// # Cycle Breaking
//
// [BreakCycles] detects and removes edges that create cycles. Upgrade
// planning rejects cyclic graphs outright; this transformation exists so
// that such graphs can still be drawn, with the offending edges reported
// to the user.
//
// # Upgrade Waves
//
// [Waves] partitions components into layers by dependency depth. Components
// in the same wave share no dependency path and can be upgraded together.
//
// # Usage
//
//	g := v.Graph()
//	removed := transform.BreakCycles(g)
//	transform.TransitiveReduction(g)
//	waves, _ := transform.Waves(g)
//
// All transformations mutate the graph in place (except [Waves]); clone the
// graph first with [dag.DAG.Clone] when the original must be preserved.
package transform
