// Package analysis checks a drive configuration exhaustively.
//
// [Explore] walks every track pair reachable from a stopped vehicle under
// all commands and re-checks each transition:
//
//	report, err := analysis.Explore(0, 100, 20)
//	if err == nil && !report.OK() {
//	    // at least one transition broke an invariant
//	}
//
// [ExploreGrid] repeats the walk over a range of limits.
package analysis
