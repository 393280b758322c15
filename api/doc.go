// Package api exposes the game service over HTTP with gorilla/mux.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions                 create, body {"config_id": "standard"} (optional)
//   - GET    /api/sessions                 list, ?sort=created|accessed&order=asc|desc&limit=N
//   - GET    /api/sessions/{id}            boards and running scores of every player
//   - DELETE /api/sessions/{id}
//
// Player boards:
//   - POST /api/sessions/{id}/players/{player}/tiles
//     body {"position": {"x": 2, "y": 1}, "habitats": ["forests"], "compatible": ["bear"], "rotation": 0}
//   - POST /api/sessions/{id}/players/{player}/tokens
//     body {"position": {"x": 2, "y": 1}, "animal": "bear"}
//   - POST /api/sessions/{id}/players/{player}/nature
//   - GET  /api/sessions/{id}/players/{player}/valid-positions
//
// Scoring:
//   - GET  /api/sessions/{id}/scores      scores without end-game bonuses
//   - POST /api/sessions/{id}/final       apply bonuses, rank players, lock the session
//   - POST /api/score                     score a board snapshot without a session
//
// Configuration:
//   - GET  /api/configs
//   - POST /api/configs?id=name           body is a game configuration
//   - GET  /api/configs/{name}
//
// WebSocket:
//   - GET /ws?session={id}                session events, see package websocket
//
// Errors are returned as {"error": "..."}. Unknown sessions, players and
// configs answer 404; illegal placements and changes to a finalized session
// answer 409; malformed tiles, animals and configurations answer 400.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
package api
