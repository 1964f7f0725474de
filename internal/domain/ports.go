package domain

// EventPublisher публикует доменные события наружу (например, в Kafka).
type EventPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(topic, key string, event any) error
}
