package server

// Config is the HTTP server configuration.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string

	// BodyLimit caps request bodies in bytes. Zero uses fiber's default.
	BodyLimit int

	// AllowOrigins is the CORS allow list (e.g., "*" or "https://ubique.style").
	AllowOrigins string

	// EnableMCP mounts the MCP endpoint at /mcp.
	EnableMCP bool
}
