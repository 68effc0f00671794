package botkit

const (
	// Version of this library
	Version = "v0.3.0"
)
