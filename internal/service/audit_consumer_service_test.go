package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/dto"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuditConsumerPersistsTransition(t *testing.T) {
	store := newMemStore()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	const topic = "ENROLLMENT_TRANSITIONS"
	consumer := NewAuditConsumerService(pubSub, topic, &fakeUowFactory{store: store})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService(topic, pubSub)

	actorId := uuid.New()
	msg := dto.EnrollmentTransitionMessage{
		EnrollmentId:      uuid.New(),
		CourseId:          uuid.New(),
		LearnerId:         uuid.New(),
		ActorId:           &actorId,
		Action:            string(entity.AuditActionRevoked),
		FromStatus:        string(entity.EnrollmentStatusActive),
		ToStatus:          string(entity.EnrollmentStatusSuspended),
		FromPaymentStatus: string(entity.PaymentStatusCompleted),
		ToPaymentStatus:   string(entity.PaymentStatusCompleted),
		Details:           map[string]interface{}{"reason": "refund dispute"},
		OccurredAt:        time.Now(),
	}
	payload, err := json.Marshal(msg)
	assert.NoError(t, err)
	assert.NoError(t, publisher.Publish(ctx, payload))

	assert.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.audits) == 1
	}, 2*time.Second, 10*time.Millisecond)

	store.mu.Lock()
	defer store.mu.Unlock()
	logged := store.audits[0]
	assert.Equal(t, msg.EnrollmentId, logged.EnrollmentId)
	assert.Equal(t, entity.AuditActionRevoked, logged.Action)
	assert.Equal(t, entity.EnrollmentStatusSuspended, logged.ToStatus)
	assert.NotNil(t, logged.ActorId)
	assert.Equal(t, actorId, *logged.ActorId)
	assert.Equal(t, "refund dispute", logged.Details["reason"])
}

func TestAuditConsumerSkipsMalformedPayload(t *testing.T) {
	store := newMemStore()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	const topic = "ENROLLMENT_TRANSITIONS"
	consumer := NewAuditConsumerService(pubSub, topic, &fakeUowFactory{store: store})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService(topic, pubSub)
	assert.NoError(t, publisher.Publish(ctx, []byte("{not json")))

	// The malformed message is acked and dropped, never persisted.
	time.Sleep(200 * time.Millisecond)
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.audits)
}
