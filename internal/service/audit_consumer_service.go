// FILE: internal/service/audit_consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/dto"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IAuditConsumerService interface {
	Consume(ctx context.Context) error
}

// auditConsumerService turns committed transition messages into
// enrollment_audit_logs rows. It runs off the request path so a slow audit
// write never delays an enrollment response.
type auditConsumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewAuditConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IAuditConsumerService {
	return &auditConsumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *auditConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *auditConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.EnrollmentTransitionMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal transition message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	auditLog := &entity.EnrollmentAuditLog{
		Id:                uuid.New(),
		EnrollmentId:      payload.EnrollmentId,
		CourseId:          payload.CourseId,
		LearnerId:         payload.LearnerId,
		ActorId:           payload.ActorId,
		Action:            entity.AuditAction(payload.Action),
		FromPaymentStatus: entity.PaymentStatus(payload.FromPaymentStatus),
		ToPaymentStatus:   entity.PaymentStatus(payload.ToPaymentStatus),
		FromStatus:        entity.EnrollmentStatus(payload.FromStatus),
		ToStatus:          entity.EnrollmentStatus(payload.ToStatus),
		Details:           payload.Details,
		CreatedAt:         payload.OccurredAt,
	}

	if err := uow.AuditRepository().Create(ctx, auditLog); err != nil {
		log.Printf("[ERROR] Failed to persist audit log for enrollment %s: %v", payload.EnrollmentId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
