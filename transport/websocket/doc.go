// Package websocket pushes session events to browser and bot clients.
//
// A Hub keeps the clients of each session and a single Run goroutine owns
// that bookkeeping. Clients connect with ?session=<id> and receive one JSON
// frame per event:
//
//	{"session_id": "1a2b3c4d", "event": "tile_placed", "data": {...}}
//
// Incoming frames are read only to notice disconnects.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//	hub.Broadcast(sessionID, websocket.EventTilePlaced, result)
package websocket
