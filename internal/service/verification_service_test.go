package service

import (
	"context"
	"testing"
	"time"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/dto"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newVerificationTestService(store *memStore) (IVerificationService, *capturingPublisher, *capturingEventPublisher) {
	pub := &capturingPublisher{}
	evt := &capturingEventPublisher{}
	svc := NewVerificationService(&fakeUowFactory{store: store}, pub, evt, noopLogger{})
	return svc, pub, evt
}

func pendingEnrollment(store *memStore, course *entity.Course) (uuid.UUID, *entity.Enrollment) {
	userId := uuid.New()
	enr := store.addEnrollment(&entity.Enrollment{
		UserId:        userId,
		CourseId:      course.Id,
		Status:        entity.EnrollmentStatusActive,
		PaymentStatus: entity.PaymentStatusPending,
		EnrolledAt:    time.Now(),
	})
	return userId, enr
}

func TestVerifyPaymentCompletesPending(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true})
	userId, enr := pendingEnrollment(store, course)
	svc, pub, evt := newVerificationTestService(store)

	res, err := svc.VerifyPayment(context.Background(), userId, &dto.VerifyPaymentRequest{
		EnrollmentId:   enr.Id,
		TransactionRef: "UPI123456",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(entity.PaymentStatusCompleted), res.PaymentStatus)
	assert.True(t, res.HasAccess)
	assert.False(t, res.AlreadyVerified)

	stored := store.enrollments[enr.Id]
	assert.Equal(t, entity.PaymentStatusCompleted, stored.PaymentStatus)
	assert.Equal(t, entity.PaymentMethodUpi, stored.PaymentMethod)
	assert.Equal(t, 499.0, stored.AmountPaid)
	assert.NotNil(t, stored.TransactionId)
	assert.Equal(t, "UPI123456", *stored.TransactionId)
	assert.NotNil(t, stored.PaymentDate)

	assert.Equal(t, 1, store.courses[course.Id].StudentCount)
	assert.Len(t, pub.payloads, 1)
	assert.Equal(t, []string{"PAYMENT_SUBMITTED", "PAYMENT_VERIFIED"}, evt.events)
}

func TestVerifyPaymentTrimsAndRejectsEmptyReference(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true})
	userId, enr := pendingEnrollment(store, course)
	svc, _, _ := newVerificationTestService(store)

	_, err := svc.VerifyPayment(context.Background(), userId, &dto.VerifyPaymentRequest{
		EnrollmentId:   enr.Id,
		TransactionRef: "   ",
	})

	assert.ErrorIs(t, err, entity.ErrInvalidTransactionRef)
	assert.Equal(t, entity.PaymentStatusPending, store.enrollments[enr.Id].PaymentStatus)
}

func TestVerifyPaymentRejectsOtherOwner(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true})
	_, enr := pendingEnrollment(store, course)
	svc, _, _ := newVerificationTestService(store)

	_, err := svc.VerifyPayment(context.Background(), uuid.New(), &dto.VerifyPaymentRequest{
		EnrollmentId:   enr.Id,
		TransactionRef: "UPI123456",
	})

	assert.ErrorIs(t, err, entity.ErrForbidden)
}

func TestVerifyPaymentUnknownEnrollment(t *testing.T) {
	store := newMemStore()
	svc, _, _ := newVerificationTestService(store)

	_, err := svc.VerifyPayment(context.Background(), uuid.New(), &dto.VerifyPaymentRequest{
		EnrollmentId:   uuid.New(),
		TransactionRef: "UPI123456",
	})

	assert.ErrorIs(t, err, entity.ErrEnrollmentNotFound)
}

func TestVerifyPaymentReplayIsIdempotent(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true})
	userId, enr := pendingEnrollment(store, course)
	svc, _, evt := newVerificationTestService(store)

	req := &dto.VerifyPaymentRequest{EnrollmentId: enr.Id, TransactionRef: "UPI123456"}
	_, err := svc.VerifyPayment(context.Background(), userId, req)
	assert.NoError(t, err)

	res, err := svc.VerifyPayment(context.Background(), userId, req)
	assert.NoError(t, err)
	assert.True(t, res.AlreadyVerified)
	assert.True(t, res.HasAccess)

	// Counter and event stream moved exactly once.
	assert.Equal(t, 1, store.courses[course.Id].StudentCount)
	assert.Equal(t, []string{"PAYMENT_SUBMITTED", "PAYMENT_VERIFIED"}, evt.events)
}

func TestVerifyPaymentRejectsFreeEnrollment(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Free", IsFree: true, IsPublished: true})
	userId := uuid.New()
	enr := store.addEnrollment(&entity.Enrollment{
		UserId:        userId,
		CourseId:      course.Id,
		Status:        entity.EnrollmentStatusActive,
		PaymentStatus: entity.PaymentStatusFree,
	})
	svc, _, _ := newVerificationTestService(store)

	_, err := svc.VerifyPayment(context.Background(), userId, &dto.VerifyPaymentRequest{
		EnrollmentId:   enr.Id,
		TransactionRef: "UPI123456",
	})

	assert.ErrorIs(t, err, entity.ErrPaymentNotPending)
}

func TestVerifyPaymentRejectsDuplicateReference(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true})

	ref := "UPI123456"
	store.addEnrollment(&entity.Enrollment{
		UserId:        uuid.New(),
		CourseId:      course.Id,
		Status:        entity.EnrollmentStatusActive,
		PaymentStatus: entity.PaymentStatusCompleted,
		TransactionId: &ref,
	})

	userId, enr := pendingEnrollment(store, course)
	svc, _, _ := newVerificationTestService(store)

	_, err := svc.VerifyPayment(context.Background(), userId, &dto.VerifyPaymentRequest{
		EnrollmentId:   enr.Id,
		TransactionRef: ref,
	})

	assert.ErrorIs(t, err, entity.ErrDuplicateTransactionRef)
	assert.Equal(t, entity.PaymentStatusPending, store.enrollments[enr.Id].PaymentStatus)
}

func TestVerifyPaymentLostRaceReportsAlreadyVerified(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true})
	userId, enr := pendingEnrollment(store, course)
	svc, _, evt := newVerificationTestService(store)

	// A competing admin grant completes the enrollment between this call's
	// read and its conditional update.
	store.beforeMark = func() {
		store.mu.Lock()
		defer store.mu.Unlock()
		e := store.enrollments[enr.Id]
		if e.PaymentStatus == entity.PaymentStatusPending {
			e.PaymentStatus = entity.PaymentStatusCompleted
			e.PaymentMethod = entity.PaymentMethodAdminGranted
			store.courses[course.Id].StudentCount++
		}
		store.beforeMark = nil
	}

	res, err := svc.VerifyPayment(context.Background(), userId, &dto.VerifyPaymentRequest{
		EnrollmentId:   enr.Id,
		TransactionRef: "UPI123456",
	})

	assert.NoError(t, err)
	assert.True(t, res.AlreadyVerified)
	assert.True(t, res.HasAccess)
	// The loser applied no counter change and published no event.
	assert.Equal(t, 1, store.courses[course.Id].StudentCount)
	assert.Empty(t, evt.events)
}
