// Package scoring turns a board into points.
//
// Each species has a card type A to D chosen before the game. BearCard,
// ElkCard, SalmonCard, BuzzardCard and FoxCard implement Card and read the
// board without mutating it. A Strategy decides which rule scores a species:
// FaunaStrategy uses one card per species, VariantStrategy applies the same
// group-size table (family or intermediate) to every species.
//
// Score caches the species points of a board, the largest region of every
// habitat, and the end-game bonus. CalculateBonusPoints compares the habitat
// regions of every player once the game is over.
//
// Usage:
//
//	strategy, err := scoring.NewStrategy("cards", map[engine.Animal]engine.CardType{
//		engine.Bear: engine.CardA, engine.Elk: engine.CardB, engine.Salmon: engine.CardC,
//		engine.Buzzard: engine.CardD, engine.Fox: engine.CardA,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	score := scoring.NewScore(board)
//	score.SetStrategy(strategy)
//	if err := score.Calculate(); err != nil {
//		log.Fatal(err)
//	}
//	if err := scoring.CalculateBonusPoints([]*scoring.Score{score}); err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(score.TotalPoints())
package scoring
