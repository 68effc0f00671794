package botshared

// PublisherArgument declare publisher argument
type PublisherArgument struct {
	// Topic or queue name
	Topic       string
	Key         string
	Header      map[string]interface{}
	ContentType string
	// Data encoded to json when Message is empty
	Data    interface{}
	Message []byte
}
