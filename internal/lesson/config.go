package lesson

// Config holds generation settings.
type Config struct {
	// MaxTokens caps a lesson bundle. Zero uses the provider default.
	MaxTokens int

	// ChatMaxTokens caps a tutor reply. Zero uses the provider default.
	ChatMaxTokens int

	Temperature float64
}

// DefaultConfig returns defaults sized for a five-section bundle with
// code in three languages.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     8192,
		ChatMaxTokens: 2048,
		Temperature:   0.7,
	}
}
