// Package engine provides the board model of the Cascadia rules core.
//
// The engine package implements:
//   - Habitat, Animal, CardType and Topology enumerations
//   - Square and hex tiles with rotation and a single wildlife token
//   - The Board: a growing grid with topology-dependent adjacency
//   - Tile and token insertion legality, nature tokens
//   - Orthogonal group search used by every scoring rule
//   - Board snapshots for persistence and transport
//
// Core Types:
//
// Board owns a dense grid of tile references and an index from tile to
// position. The index is shifted whenever rows or columns are prepended, so
// callers should always ask the board for positions rather than cache them
// across insertions. Tiles never know where they are placed.
//
// Usage:
//
//	rng := rand.New(rand.NewSource(1))
//	board, err := engine.NewBoard(5, engine.Hex)
//	if err != nil {
//		log.Fatal(err)
//	}
//	seeds, err := engine.StarterTiles(engine.Hex, 0, rng)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := board.Seed(seeds); err != nil {
//		log.Fatal(err)
//	}
//
//	for _, p := range board.ValidPositions() {
//		fmt.Println("can place at", p)
//	}
//
// Adjacency:
//
// Square boards use the four orthogonal neighbors. Hex boards use an odd-row
// offset layout: the four orthogonal neighbors plus two diagonals that sit on
// the west side for even rows and on the east side for odd rows. The grid
// always grows by two rows or columns at a time so row parity, and therefore
// hex adjacency, is preserved.
package engine
