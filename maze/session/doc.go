// Package session provides in-memory storage for generated mazes.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Short random session ids derived from UUIDs
//   - Case-insensitive id lookup
//   - Expiry of sessions that have not been accessed recently
//
// Each session owns one engine.Grid together with the configuration it was
// generated from. Grids carry per-cell search state, so callers that search
// the same session from several goroutines must serialise those searches;
// the service layer does this.
//
// Usage:
//
//	manager := session.NewManager()
//
//	grid, _ := engine.NewGridWithConfig(*cfg)
//	sess, err := manager.Create("", grid, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Drop anything idle for an hour
//	removed := manager.CleanupExpiredSessions(time.Hour)
package session
