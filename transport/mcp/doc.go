// Package mcp exposes the game to AI agents over the Model Context Protocol.
//
// The Client registers one MCP tool per REST endpoint and forwards every call
// to a running API server, so an agent and a browser can share a session.
// Results are rendered as text: boards are drawn as grids of three-character
// cells, habitat initials followed by the token (see game_instructions).
//
// MCP Tools:
//   - create_session, get_session, list_sessions
//   - valid_positions, place_tile, place_token, spend_nature
//   - scores, finalize, score_snapshot
//   - list_configs, game_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
