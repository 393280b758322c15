// Package session stores the live game sessions of the server.
//
// A session is one seeded board per configured player, built by
// service.NewSession. The Manager keeps sessions in memory keyed by
// lower-cased ID and, when given a SessionPersistence, writes each session
// through to storage and lazily loads sessions it has not seen yet.
//
// Session Identifiers:
//
// Generated IDs are the first eight hex characters of a random UUID.
// Callers may also choose their own ID; lookups are case-insensitive.
//
// Persistence:
//
// FilePersistence stores one JSON file per session holding the board
// snapshot of every player. Scores are not stored; they are recalculated
// from the boards on load, and majority bonuses are reapplied for
// finalized sessions.
//
// Usage:
//
//	configs, _ := config.NewManager("./configs")
//	store, _ := session.NewFilePersistence("./sessions", configs)
//	manager := session.NewManagerWithPersistence(store)
//	if err := manager.LoadPersistedSessions(); err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err := manager.Create("", "standard", configs.GetDefault())
//	if err != nil {
//		log.Fatal(err)
//	}
//	sess, err = manager.Get(sess.ID)
package session
