// Package habitat computes habitat regions on a board.
//
// A region is a maximal set of connected cells sharing a habitat. On square
// boards a cell joins its orthogonal neighbor when both tiles carry the
// habitat. On hex boards the check is face to face: the side of the current
// tile facing the neighbor and the side of the neighbor facing back must both
// carry the habitat, so rotating a tile can split or join regions.
//
// Usage:
//
//	scores, err := habitat.CalculateHabitatScores(board)
//	if err != nil {
//		// ErrInvariantViolation means the neighbor and side tables disagree
//		log.Fatal(err)
//	}
//	fmt.Println(scores[engine.Forests])
package habitat
