package config

// QueueConfig holds the RabbitMQ settings for booking events.  An empty URL
// disables both the publisher and the consumer.
type QueueConfig struct {
	URL             string
	BookingQueue    string
	ConsumerEnabled bool
	LogDir          string
}

// LoadQueueConfig reads RABBITMQ_URL (or the older AMQP_URL) and friends.
func LoadQueueConfig() QueueConfig {
	url := envStr("RABBITMQ_URL", envStr("AMQP_URL", ""))
	return QueueConfig{
		URL:             url,
		BookingQueue:    envStr("BOOKING_QUEUE", "booking.confirmed"),
		ConsumerEnabled: envBool("BOOKING_CONSUMER_ENABLED", true),
		LogDir:          envStr("BOOKING_LOG_DIR", "logs"),
	}
}
