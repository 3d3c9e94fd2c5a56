package service

import (
	"context"
	"testing"
	"time"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/dto"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/pkg/admin/dashboard"
	adminEnrollment "github.com/Aravind210193/E-Shikshan-sub002/pkg/admin/enrollment"
	"github.com/Aravind210193/E-Shikshan-sub002/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newAdminTestService(store *memStore) (IAdminService, *capturingPublisher, *capturingEventPublisher) {
	pub := &capturingPublisher{}
	evt := &capturingEventPublisher{}
	svc := NewAdminService(
		&fakeUowFactory{store: store},
		adminEnrollment.NewManager(noopLogger{}),
		dashboard.NewAggregator(noopLogger{}),
		evt,
		pub,
		cache.NewCourseCache(nil, 0),
		noopLogger{},
	)
	return svc, pub, evt
}

func TestGrantAccessCreatesEnrollment(t *testing.T) {
	store := newMemStore()
	user := store.addUser(&entity.User{Email: "asha@example.com", FullName: "Asha Verma", Role: entity.UserRoleStudent})
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true, OwnerId: uuid.New(), OwnerEmail: "teacher@example.com"})
	svc, _, evt := newAdminTestService(store)

	res, err := svc.GrantAccess(context.Background(), uuid.New(), &dto.GrantAccessRequest{
		UserId:   user.Id,
		CourseId: course.Id,
		Reason:   "scholarship",
	})

	assert.NoError(t, err)
	assert.True(t, res.HasAccess)
	assert.Equal(t, string(entity.PaymentStatusCompleted), res.PaymentStatus)
	assert.Equal(t, 1, store.courses[course.Id].StudentCount)
	assert.Equal(t, []string{"ACCESS_GRANTED"}, evt.events)

	// The event addresses both parties: course owner fields ride along.
	assert.Len(t, evt.courses, 1)
	assert.Equal(t, course.OwnerId, evt.courses[0].OwnerId)
	assert.Equal(t, "teacher@example.com", evt.courses[0].OwnerEmail)

	stored := store.enrollments[res.EnrollmentId]
	assert.Equal(t, entity.PaymentMethodAdminGranted, stored.PaymentMethod)
	assert.Equal(t, "Asha Verma", stored.StudentName)
}

func TestGrantAccessOnFreeCourseIsCompleted(t *testing.T) {
	store := newMemStore()
	user := store.addUser(&entity.User{Email: "asha@example.com", FullName: "Asha Verma"})
	course := store.addCourse(&entity.Course{Title: "Vedic Maths", IsFree: true, IsPublished: true})
	svc, _, _ := newAdminTestService(store)

	res, err := svc.GrantAccess(context.Background(), uuid.New(), &dto.GrantAccessRequest{
		UserId:   user.Id,
		CourseId: course.Id,
	})

	// Grants record completed/admin_granted regardless of course pricing.
	assert.NoError(t, err)
	assert.Equal(t, string(entity.PaymentStatusCompleted), res.PaymentStatus)
	assert.Equal(t, 1, store.courses[course.Id].StudentCount)
}

func TestGrantAccessCompletesPendingOnce(t *testing.T) {
	store := newMemStore()
	user := store.addUser(&entity.User{Email: "asha@example.com", FullName: "Asha Verma"})
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true})
	store.addEnrollment(&entity.Enrollment{
		UserId:        user.Id,
		CourseId:      course.Id,
		Status:        entity.EnrollmentStatusActive,
		PaymentStatus: entity.PaymentStatusPending,
	})
	svc, _, _ := newAdminTestService(store)

	req := &dto.GrantAccessRequest{UserId: user.Id, CourseId: course.Id}
	res, err := svc.GrantAccess(context.Background(), uuid.New(), req)
	assert.NoError(t, err)
	assert.True(t, res.HasAccess)
	assert.Equal(t, 1, store.courses[course.Id].StudentCount)

	// Replay: already completed, counter untouched.
	res2, err := svc.GrantAccess(context.Background(), uuid.New(), req)
	assert.NoError(t, err)
	assert.True(t, res2.HasAccess)
	assert.Equal(t, 1, store.courses[course.Id].StudentCount)
}

func TestGrantAccessReactivatesSuspended(t *testing.T) {
	store := newMemStore()
	user := store.addUser(&entity.User{Email: "asha@example.com", FullName: "Asha Verma"})
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true, StudentCount: 1})
	enr := store.addEnrollment(&entity.Enrollment{
		UserId:        user.Id,
		CourseId:      course.Id,
		Status:        entity.EnrollmentStatusSuspended,
		PaymentStatus: entity.PaymentStatusCompleted,
	})
	svc, _, _ := newAdminTestService(store)

	res, err := svc.GrantAccess(context.Background(), uuid.New(), &dto.GrantAccessRequest{
		UserId:   user.Id,
		CourseId: course.Id,
	})

	assert.NoError(t, err)
	assert.True(t, res.HasAccess)
	assert.Equal(t, entity.EnrollmentStatusActive, store.enrollments[enr.Id].Status)
	// Reactivation touches only the access axis.
	assert.Equal(t, 1, store.courses[course.Id].StudentCount)
}

func TestGrantAccessUnknownUser(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true})
	svc, _, _ := newAdminTestService(store)

	_, err := svc.GrantAccess(context.Background(), uuid.New(), &dto.GrantAccessRequest{
		UserId:   uuid.New(),
		CourseId: course.Id,
	})

	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}

func TestRevokeAndRestoreKeepCounter(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true, StudentCount: 1})
	enr := store.addEnrollment(&entity.Enrollment{
		UserId:        uuid.New(),
		CourseId:      course.Id,
		Status:        entity.EnrollmentStatusActive,
		PaymentStatus: entity.PaymentStatusCompleted,
	})
	svc, _, evt := newAdminTestService(store)
	actor := uuid.New()

	revoked, err := svc.RevokeAccess(context.Background(), actor, enr.Id, "refund dispute")
	assert.NoError(t, err)
	assert.False(t, revoked.HasAccess)
	assert.Equal(t, string(entity.EnrollmentStatusSuspended), revoked.Status)
	// Payment axis survives the suspension.
	assert.Equal(t, string(entity.PaymentStatusCompleted), revoked.PaymentStatus)
	assert.Equal(t, 1, store.courses[course.Id].StudentCount)

	restored, err := svc.RestoreAccess(context.Background(), actor, enr.Id, "resolved")
	assert.NoError(t, err)
	assert.True(t, restored.HasAccess)
	assert.Equal(t, 1, store.courses[course.Id].StudentCount)

	assert.Equal(t, []string{"ACCESS_REVOKED", "ACCESS_RESTORED"}, evt.events)
}

func TestRevokeTwiceIsIdempotent(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true})
	enr := store.addEnrollment(&entity.Enrollment{
		UserId:        uuid.New(),
		CourseId:      course.Id,
		Status:        entity.EnrollmentStatusActive,
		PaymentStatus: entity.PaymentStatusCompleted,
	})
	svc, pub, evt := newAdminTestService(store)
	actor := uuid.New()

	_, err := svc.RevokeAccess(context.Background(), actor, enr.Id, "x")
	assert.NoError(t, err)
	_, err = svc.RevokeAccess(context.Background(), actor, enr.Id, "x")
	assert.NoError(t, err)

	// One transition, one event, one audit message.
	assert.Equal(t, []string{"ACCESS_REVOKED"}, evt.events)
	assert.Len(t, pub.payloads, 1)
}

func TestRestorePendingDoesNotGrantAccess(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true})
	enr := store.addEnrollment(&entity.Enrollment{
		UserId:        uuid.New(),
		CourseId:      course.Id,
		Status:        entity.EnrollmentStatusSuspended,
		PaymentStatus: entity.PaymentStatusPending,
	})
	svc, _, _ := newAdminTestService(store)

	res, err := svc.RestoreAccess(context.Background(), uuid.New(), enr.Id, "appeal")

	assert.NoError(t, err)
	assert.Equal(t, string(entity.EnrollmentStatusActive), res.Status)
	// Access still depends on the payment axis.
	assert.False(t, res.HasAccess)
}

func TestDeleteEnrollmentDecrementsCounter(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true, StudentCount: 1})
	enr := store.addEnrollment(&entity.Enrollment{
		UserId:        uuid.New(),
		CourseId:      course.Id,
		Status:        entity.EnrollmentStatusActive,
		PaymentStatus: entity.PaymentStatusCompleted,
	})
	svc, _, evt := newAdminTestService(store)

	err := svc.DeleteEnrollment(context.Background(), uuid.New(), enr.Id, "duplicate record")

	assert.NoError(t, err)
	assert.NotContains(t, store.enrollments, enr.Id)
	assert.Equal(t, 0, store.courses[course.Id].StudentCount)
	assert.Equal(t, []string{"ENROLLMENT_DELETED"}, evt.events)
}

func TestDeletePendingEnrollmentKeepsCounter(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true, StudentCount: 2})
	enr := store.addEnrollment(&entity.Enrollment{
		UserId:        uuid.New(),
		CourseId:      course.Id,
		Status:        entity.EnrollmentStatusActive,
		PaymentStatus: entity.PaymentStatusPending,
	})
	svc, _, _ := newAdminTestService(store)

	err := svc.DeleteEnrollment(context.Background(), uuid.New(), enr.Id, "cleanup")

	assert.NoError(t, err)
	assert.Equal(t, 2, store.courses[course.Id].StudentCount)
}

func TestDashboardCountsStudentsAndMoney(t *testing.T) {
	store := newMemStore()
	c1 := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true})
	store.addCourse(&entity.Course{Title: "Draft", Price: 100, IsPublished: false})

	store.addEnrollment(&entity.Enrollment{UserId: uuid.New(), CourseId: c1.Id, Status: entity.EnrollmentStatusActive, PaymentStatus: entity.PaymentStatusCompleted, AmountPaid: 499})
	store.addEnrollment(&entity.Enrollment{UserId: uuid.New(), CourseId: c1.Id, Status: entity.EnrollmentStatusActive, PaymentStatus: entity.PaymentStatusFree})
	store.addEnrollment(&entity.Enrollment{UserId: uuid.New(), CourseId: c1.Id, Status: entity.EnrollmentStatusActive, PaymentStatus: entity.PaymentStatusPending})
	store.addEnrollment(&entity.Enrollment{UserId: uuid.New(), CourseId: c1.Id, Status: entity.EnrollmentStatusSuspended, PaymentStatus: entity.PaymentStatusCompleted, AmountPaid: 499})

	svc, _, _ := newAdminTestService(store)

	res, err := svc.GetDashboard(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalCourses)
	assert.Equal(t, 1, res.PublishedCourses)
	assert.Equal(t, 3, res.TotalStudents)
	assert.Equal(t, 1, res.PendingPayments)
	assert.Equal(t, 2, res.CompletedPayments)
	assert.Equal(t, 1, res.FreeEnrollments)
	assert.Equal(t, 1, res.SuspendedEnrollment)
	assert.Equal(t, 998.0, res.TotalCollected)
}

func TestGetTransactionsFiltersByPaymentStatus(t *testing.T) {
	store := newMemStore()
	user := store.addUser(&entity.User{Email: "asha@example.com", FullName: "Asha Verma"})
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true})
	store.addEnrollment(&entity.Enrollment{UserId: user.Id, CourseId: course.Id, Status: entity.EnrollmentStatusActive, PaymentStatus: entity.PaymentStatusPending, CreatedAt: time.Now()})
	store.addEnrollment(&entity.Enrollment{UserId: uuid.New(), CourseId: course.Id, Status: entity.EnrollmentStatusActive, PaymentStatus: entity.PaymentStatusCompleted, AmountPaid: 499, CreatedAt: time.Now()})

	svc, _, _ := newAdminTestService(store)

	res, err := svc.GetTransactions(context.Background(), &dto.TransactionListRequest{
		Page:          1,
		Limit:         10,
		PaymentStatus: string(entity.PaymentStatusPending),
	})

	assert.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, "asha@example.com", res[0].UserEmail)
	assert.Equal(t, "Science", res[0].CourseTitle)
}

func TestCreateCourseZeroPriceIsFree(t *testing.T) {
	store := newMemStore()
	svc, _, _ := newAdminTestService(store)

	res, err := svc.CreateCourse(context.Background(), uuid.New(), &dto.CreateCourseRequest{
		Title:       "Vedic Maths",
		Slug:        "vedic-maths",
		Price:       0,
		IsPublished: true,
	})

	assert.NoError(t, err)
	assert.True(t, res.IsFree)
}

func TestUpdateCourseAppliesPartialFields(t *testing.T) {
	store := newMemStore()
	course := store.addCourse(&entity.Course{Title: "Science", Price: 499, IsPublished: true})
	svc, _, _ := newAdminTestService(store)

	newPrice := 599.0
	res, err := svc.UpdateCourse(context.Background(), course.Id, &dto.UpdateCourseRequest{
		Price: &newPrice,
	})

	assert.NoError(t, err)
	assert.Equal(t, 599.0, res.Price)
	assert.Equal(t, "Science", res.Title)
}
