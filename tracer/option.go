package tracer

type (
	// Option for init tracer option
	Option struct {
		AgentHost     string
		Level         string
		MaxPacketSize int
	}

	// OptionFunc func
	OptionFunc func(*Option)
)

// OptionSetAgentHost option func
func OptionSetAgentHost(agent string) OptionFunc {
	return func(o *Option) {
		o.AgentHost = agent
	}
}

// OptionSetLevel option func, appended to service name
func OptionSetLevel(level string) OptionFunc {
	return func(o *Option) {
		o.Level = level
	}
}

// OptionSetMaxPacketSize option func, bigger tag values are replaced by an overflow notice
func OptionSetMaxPacketSize(size int) OptionFunc {
	return func(o *Option) {
		o.MaxPacketSize = size
	}
}
