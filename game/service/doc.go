// Package service is the orchestration boundary between transports and the
// rules core.
//
// GameService creates sessions from game configurations, places tiles and
// tokens on player boards, and scores them. SessionManager stores sessions and
// ConfigManager loads configurations; both are interfaces so the REST API, the
// WebSocket hub and the MCP tools share one implementation while tests plug in
// fakes.
//
// Every mutation holds the service lock, so a board is only touched by one
// goroutine at a time. Failed placements come back as ErrIllegalPlacement and
// leave the board unchanged.
//
// Usage:
//
//	sessions := session.NewManager()
//	configs, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//	svc := service.NewGameService(sessions, configs)
//
//	info, err := svc.CreateSession(ctx, "standard")
//	if err != nil {
//		log.Fatal(err)
//	}
//	valid, _ := svc.ValidPositions(ctx, info.ID, "ana")
//	_, err = svc.PlaceTile(ctx, info.ID, "ana", valid[0], service.TileSpec{
//		Habitats:   []engine.Habitat{engine.Forests, engine.Rivers},
//		Compatible: []engine.Animal{engine.Bear, engine.Salmon},
//		Rotation:   2,
//	})
//	if errors.Is(err, service.ErrIllegalPlacement) {
//		// try another cell
//	}
//
//	final, err := svc.FinalizeScores(ctx, info.ID)
package service
