package testutil

import (
	"context"

	"github.com/Steemhunt/hunt-town-sub000/pkg/pubsub"
)

type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error

	Published []MockMessage
}

type MockMessage struct {
	Topic string
	Pack  *pubsub.Pack
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	m.Published = append(m.Published, MockMessage{Topic: topic, Pack: pack})

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return nil
}

// LastPublished returns the newest message of the topic, or nil.
func (m *MockPublisher) LastPublished(topic string) *pubsub.Pack {
	for i := len(m.Published) - 1; i >= 0; i-- {
		if m.Published[i].Topic == topic {
			return m.Published[i].Pack
		}
	}

	return nil
}
