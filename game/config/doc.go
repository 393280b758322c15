// Package config loads and validates game setup configurations.
//
// A configuration names the board topology and size, the players, the scoring
// mode and, in "cards" mode, the card type of every species. Files live in a
// single directory as <name>.json, <name>.yaml or <name>.yml; the name without
// extension is the config id used to create sessions.
//
// Example (standard.yaml):
//
//	name: Standard
//	description: Two players on hex boards with one card per species
//	topology: hex
//	board_size: 7
//	players: [ana, bo]
//	scoring:
//	  mode: cards
//	  cards: {bear: A, elk: A, salmon: A, buzzard: A, fox: A}
//	starter_set: 0
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("standard")
//	if errors.Is(err, config.ErrConfigNotFound) {
//		// the message carries a "did you mean" hint when a close name exists
//	}
//
//	configs, err := manager.ListConfigs()
package config
