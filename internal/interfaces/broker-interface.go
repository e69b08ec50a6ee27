package interfaces

// ProducerHandler publishes a routing key + JSON payload to the broker.
// Implementations must tolerate a broker that is down; student actions
// never fail because an event could not be published.
type ProducerHandler interface {
	PublishMessage(key, value []byte) error
}

type ConsumerHandler interface {
	HandleMessage(message string) error
}
