package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/model"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/pkg/logger"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/pkg/mailer"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository"
	"github.com/Aravind210193/E-Shikshan-sub002/pkg/events"
	pktNats "github.com/Aravind210193/E-Shikshan-sub002/pkg/nats" // Renamed to avoid collision

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	mail       mailer.IEmailService
	logger     logger.ILogger

	// typeCache keeps the notification type registry out of the hot path.
	// Rows change rarely; a short TTL is enough.
	typeCache *gocache.Cache
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, mail mailer.IEmailService, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		mail:       mail,
		logger:     log,
		typeCache:  gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	// Subscribe to all events with a durable consumer
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", event.EventType()), map[string]interface{}{"type": event.EventType()})

	// Strip "events." prefix from type if present (NATS subject includes stream name)
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	config, err := s.getNotificationType(ctx, typeCode)
	if err != nil {
		s.logger.Warn("NotificationService", fmt.Sprintf("Config not found for code: '%s'", typeCode), map[string]interface{}{"error": err.Error()})
		return nil
	}
	if !config.IsActive {
		s.logger.Info("NotificationService", fmt.Sprintf("Notification type '%s' is inactive", typeCode), nil)
		return nil
	}

	// Broadcasts are push-only; no per-user inbox rows.
	if config.TargetType == "BROADCAST" {
		notif := s.buildNotification(uuid.Nil, config, event)
		if s.delivery != nil {
			s.delivery.Broadcast(notif)
		}
		return nil
	}

	recipients, err := s.resolveRecipients(ctx, config, event)
	if err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error resolving recipients for %s", event.EventType()), map[string]interface{}{"error": err})
		return err // NATS will retry if we return error
	}
	s.logger.Info("NotificationService", "Recipients resolved", map[string]interface{}{"count": len(recipients), "type": config.TargetType})

	for _, userID := range recipients {
		notif := s.buildNotification(userID, config, event)

		if err := s.repo.CreateNotification(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userID), map[string]interface{}{"error": err})
			continue
		}

		if s.delivery != nil {
			s.delivery.Send(userID, notif)
		}
	}

	s.sendEmails(typeCode, event)
	return nil
}

func (s *NotificationService) getNotificationType(ctx context.Context, code string) (*model.NotificationType, error) {
	if cached, ok := s.typeCache.Get(code); ok {
		return cached.(*model.NotificationType), nil
	}
	config, err := s.repo.GetNotificationTypeByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	s.typeCache.SetDefault(code, config)
	return config, nil
}

// sendEmails handles the email channel for the lifecycle events that warrant
// one. Failures are logged, never retried; the inbox row is the durable copy.
func (s *NotificationService) sendEmails(typeCode string, event events.Event) {
	if s.mail == nil {
		return
	}
	payload := event.Payload()
	email, _ := payload["student_email"].(string)
	courseTitle, _ := payload["course_title"].(string)

	switch typeCode {
	case "ENROLLMENT_CREATED":
		if email == "" {
			return
		}
		name, _ := payload["student_name"].(string)
		amount, _ := payload["amount"].(float64)
		paymentStatus, _ := payload["payment_status"].(string)
		awaiting := paymentStatus == "pending"
		if err := s.mail.SendEnrollmentConfirmation(email, name, courseTitle, amount, awaiting); err != nil {
			s.logger.Warn("NotificationService", "Failed to send enrollment email", map[string]interface{}{"error": err.Error()})
		}
	case "PAYMENT_VERIFIED":
		if email == "" {
			return
		}
		reference, _ := payload["transaction_ref"].(string)
		amount, _ := payload["amount"].(float64)
		if err := s.mail.SendPaymentReceipt(email, courseTitle, reference, amount); err != nil {
			s.logger.Warn("NotificationService", "Failed to send receipt email", map[string]interface{}{"error": err.Error()})
		}
	case "ACCESS_GRANTED", "ACCESS_REVOKED", "ACCESS_RESTORED", "ENROLLMENT_DELETED":
		state := accessChangeState(typeCode)
		if email != "" {
			if err := s.mail.SendAccessUpdate(email, courseTitle, state); err != nil {
				s.logger.Warn("NotificationService", "Failed to send access email", map[string]interface{}{"error": err.Error()})
			}
		}
		// The course owner gets the same change, phrased around the student.
		if ownerEmail, _ := payload["owner_email"].(string); ownerEmail != "" {
			studentName, _ := payload["student_name"].(string)
			if err := s.mail.SendEnrollmentAlert(ownerEmail, courseTitle, studentName, state); err != nil {
				s.logger.Warn("NotificationService", "Failed to send owner email", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}

func accessChangeState(typeCode string) string {
	switch typeCode {
	case "ACCESS_GRANTED":
		return "granted"
	case "ACCESS_REVOKED":
		return "suspended"
	case "ACCESS_RESTORED":
		return "restored"
	default:
		return "removed"
	}
}

func (s *NotificationService) resolveRecipients(ctx context.Context, config *model.NotificationType, event events.Event) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID

	switch config.TargetType {
	case "SELF":
		// Events carry "user_id" by convention.
		if uidStr, ok := event.Payload()["user_id"].(string); ok {
			uid, err := uuid.Parse(uidStr)
			if err == nil {
				userIDs = append(userIDs, uid)
			}
		} else {
			s.logger.Warn("NotificationService", fmt.Sprintf("TargetType SELF but no user_id found in payload for event %s", event.EventType()), nil)
		}

	case "PARTIES":
		// Learner plus course owner. Admin access changes address both; a
		// missing owner_id degrades to learner-only delivery.
		if uidStr, ok := event.Payload()["user_id"].(string); ok {
			if uid, err := uuid.Parse(uidStr); err == nil {
				userIDs = append(userIDs, uid)
			}
		}
		if oidStr, ok := event.Payload()["owner_id"].(string); ok {
			if oid, err := uuid.Parse(oidStr); err == nil && (len(userIDs) == 0 || userIDs[0] != oid) {
				userIDs = append(userIDs, oid)
			}
		}

	case "ADMIN":
		admins, err := s.repo.GetUsersByRole(ctx, "admin")
		if err != nil {
			return nil, err
		}
		for _, u := range admins {
			userIDs = append(userIDs, u.Id)
		}

	case "ROLE":
		users, err := s.repo.GetUsersByRole(ctx, config.TargetRole)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			userIDs = append(userIDs, u.Id)
		}
	}

	return userIDs, nil
}

func (s *NotificationService) buildNotification(userID uuid.UUID, config *model.NotificationType, event events.Event) model.Notification {
	// Simple Template Engine
	msg := config.Template
	payload := event.Payload()

	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		valStr := fmt.Sprintf("%v", v)
		msg = strings.ReplaceAll(msg, placeholder, valStr)
	}

	var actorID *uuid.UUID
	if actorStr, ok := payload["actor_id"].(string); ok {
		if aid, err := uuid.Parse(actorStr); err == nil {
			actorID = &aid
		}
	}

	entityType := ""
	var entityID *uuid.UUID

	if et, ok := payload["entity_type"].(string); ok {
		entityType = et
	}
	if eidStr, ok := payload["entity_id"].(string); ok {
		if eid, err := uuid.Parse(eidStr); err == nil {
			entityID = &eid
		}
	}

	// Metadata - enrich with action_url for deep linking
	metaMap := make(map[string]interface{})
	for k, v := range payload {
		metaMap[k] = v
	}
	if entityType != "" && entityID != nil {
		metaMap["action_url"] = fmt.Sprintf("/%ss/%s", entityType, entityID.String())
	}
	metaJSON, _ := json.Marshal(metaMap)

	return model.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		ActorID:    actorID,
		TypeCode:   config.Code,
		Title:      config.DisplayName,
		Message:    msg,
		Metadata:   datatypes.JSON(metaJSON),
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
		IsRead:     false,
	}
}

// GetNotifications fetches notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

// GetUnreadCount fetches unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks a notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
