package mypubsub

import (
	"context"
	"os"
	"sync"

	"github.com/MarcGrol/pharmacare/lib/mylog"
)

// fakePubSub keeps the last messages per topic in memory so they can be inspected locally.
type fakePubSub struct {
	sync.Mutex
	logger   mylog.Logger
	messages map[string][]string
}

const maxFakeMessagesPerTopic = 100

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newFakePubSub
	}
}

func newFakePubSub(c context.Context) (PubSub, func(), error) {
	return NewFake(), func() {}, nil
}

func NewFake() *fakePubSub {
	return &fakePubSub{
		logger:   mylog.New("pubsub"),
		messages: map[string][]string{},
	}
}

func (ps *fakePubSub) CreateTopic(c context.Context, topic string) error {
	ps.Lock()
	defer ps.Unlock()

	if _, exists := ps.messages[topic]; !exists {
		ps.messages[topic] = []string{}
	}
	return nil
}

func (ps *fakePubSub) Publish(c context.Context, topic string, data string) error {
	ps.Lock()
	defer ps.Unlock()

	msgs := append(ps.messages[topic], data)
	if len(msgs) > maxFakeMessagesPerTopic {
		msgs = msgs[len(msgs)-maxFakeMessagesPerTopic:]
	}
	ps.messages[topic] = msgs

	ps.logger.Log(c, topic, mylog.SeverityDebug, "Published on topic %s: %s", topic, data)

	return nil
}

func (ps *fakePubSub) Messages(topic string) []string {
	ps.Lock()
	defer ps.Unlock()

	return append([]string{}, ps.messages[topic]...)
}
