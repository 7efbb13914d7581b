package chatcli

import "time"

// Config holds the options of one chat run.
type Config struct {
	BaseURL string        // Base URL of the service
	Local   bool          // Run turns in-process instead of over HTTP
	Summary bool          // Print the score summary when the loop ends
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Enable debug logging
}

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:9080"
	DefaultTimeout = 10 * time.Second
)
