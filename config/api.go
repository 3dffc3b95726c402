package config

// GetAuthSkipperPaths returns the routes reachable without a session.
func GetAuthSkipperPaths() []string {
	return []string{"/login", "/health", "/favicon.ico"}
}

// LoginPath is where unauthenticated page requests are redirected.
const LoginPath = "/login"
