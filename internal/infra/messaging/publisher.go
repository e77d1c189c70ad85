package messaging

import "context"

type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
	Close() error
}

// KAFKA_BROKERS未設定時
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }
func (NoopPublisher) Close() error                              { return nil }
