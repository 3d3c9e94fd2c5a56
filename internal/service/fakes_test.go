package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/pkg/logger"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/contract"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/specification"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/unitofwork"
	adminEvents "github.com/Aravind210193/E-Shikshan-sub002/pkg/admin/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memStore backs the fake repositories with plain maps. Specifications are
// interpreted by type switch instead of SQL, which keeps the service tests
// off a real database.
type memStore struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*entity.User
	courses     map[uuid.UUID]*entity.Course
	enrollments map[uuid.UUID]*entity.Enrollment
	audits      []*entity.EnrollmentAuditLog

	// beforeMark runs just before MarkCompletedIfPending evaluates its
	// condition, so tests can interleave a competing writer.
	beforeMark func()
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[uuid.UUID]*entity.User{},
		courses:     map[uuid.UUID]*entity.Course{},
		enrollments: map[uuid.UUID]*entity.Enrollment{},
	}
}

func (s *memStore) addUser(u *entity.User) *entity.User {
	if u.Id == uuid.Nil {
		u.Id = uuid.New()
	}
	s.users[u.Id] = u
	return u
}

func (s *memStore) addCourse(c *entity.Course) *entity.Course {
	if c.Id == uuid.Nil {
		c.Id = uuid.New()
	}
	s.courses[c.Id] = c
	return c
}

func (s *memStore) addEnrollment(e *entity.Enrollment) *entity.Enrollment {
	if e.Id == uuid.Nil {
		e.Id = uuid.New()
	}
	cp := *e
	s.enrollments[e.Id] = &cp
	return e
}

// --- enrollment repository ---

type fakeEnrollmentRepo struct {
	store *memStore
}

func enrollmentMatches(e *entity.Enrollment, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if e.Id != v.ID {
				return false
			}
		case specification.ByLearnerAndCourse:
			if e.UserId != v.UserID || e.CourseId != v.CourseID {
				return false
			}
		case specification.ByTransactionRef:
			if e.TransactionId == nil || *e.TransactionId != v.Reference {
				return false
			}
		case specification.OwnedBy:
			if e.UserId != v.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeEnrollmentRepo) Create(ctx context.Context, enrollment *entity.Enrollment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.enrollments {
		if existing.UserId == enrollment.UserId && existing.CourseId == enrollment.CourseId {
			return gorm.ErrDuplicatedKey
		}
		if enrollment.TransactionId != nil && existing.TransactionId != nil && *existing.TransactionId == *enrollment.TransactionId {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *enrollment
	r.store.enrollments[enrollment.Id] = &cp
	return nil
}

func (r *fakeEnrollmentRepo) Update(ctx context.Context, enrollment *entity.Enrollment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *enrollment
	r.store.enrollments[enrollment.Id] = &cp
	return nil
}

func (r *fakeEnrollmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.enrollments, id)
	return nil
}

func (r *fakeEnrollmentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Enrollment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range r.store.enrollments {
		if enrollmentMatches(e, specs) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEnrollmentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Enrollment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var res []*entity.Enrollment
	for _, e := range r.store.enrollments {
		if enrollmentMatches(e, specs) {
			cp := *e
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (r *fakeEnrollmentRepo) MarkCompletedIfPending(ctx context.Context, id uuid.UUID, reference string, amount float64, method entity.PaymentMethod, paidAt time.Time) (bool, error) {
	if r.store.beforeMark != nil {
		r.store.beforeMark()
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.store.enrollments[id]
	if !ok || e.PaymentStatus != entity.PaymentStatusPending {
		return false, nil
	}
	if reference != "" {
		for _, other := range r.store.enrollments {
			if other.Id != id && other.TransactionId != nil && *other.TransactionId == reference {
				return false, gorm.ErrDuplicatedKey
			}
		}
		e.TransactionId = &reference
	}
	e.PaymentStatus = entity.PaymentStatusCompleted
	e.PaymentMethod = method
	e.AmountPaid = amount
	e.PaymentDate = &paidAt
	e.UpdatedAt = paidAt
	return true, nil
}

func (r *fakeEnrollmentRepo) SetStatus(ctx context.Context, id uuid.UUID, status entity.EnrollmentStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if e, ok := r.store.enrollments[id]; ok {
		e.Status = status
	}
	return nil
}

func (r *fakeEnrollmentRepo) GetTransactions(ctx context.Context, paymentStatus string, limit, offset int) ([]*entity.EnrollmentTransaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var res []*entity.EnrollmentTransaction
	for _, e := range r.store.enrollments {
		if paymentStatus != "" && string(e.PaymentStatus) != paymentStatus {
			continue
		}
		var email, title string
		if u, ok := r.store.users[e.UserId]; ok {
			email = u.Email
		}
		if c, ok := r.store.courses[e.CourseId]; ok {
			title = c.Title
		}
		res = append(res, &entity.EnrollmentTransaction{
			Id:            e.Id,
			UserId:        e.UserId,
			UserEmail:     email,
			CourseTitle:   title,
			AmountPaid:    e.AmountPaid,
			Status:        e.Status,
			PaymentStatus: e.PaymentStatus,
			PaymentMethod: e.PaymentMethod,
			TransactionId: e.TransactionId,
			CreatedAt:     e.CreatedAt,
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	if offset >= len(res) {
		return nil, nil
	}
	res = res[offset:]
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (r *fakeEnrollmentRepo) CountByPaymentStatus(ctx context.Context, status entity.PaymentStatus) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, e := range r.store.enrollments {
		if e.PaymentStatus == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeEnrollmentRepo) CountByStatus(ctx context.Context, status entity.EnrollmentStatus) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, e := range r.store.enrollments {
		if e.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeEnrollmentRepo) TotalCollected(ctx context.Context) (float64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := 0.0
	for _, e := range r.store.enrollments {
		if e.PaymentStatus == entity.PaymentStatusCompleted {
			total += e.AmountPaid
		}
	}
	return total, nil
}

// --- course repository ---

type fakeCourseRepo struct {
	store *memStore
}

func courseMatches(c *entity.Course, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if c.Id != v.ID {
				return false
			}
		case specification.ByIDs:
			found := false
			for _, id := range v.IDs {
				if c.Id == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.FilterBy:
			if v.Field == "is_published" {
				if want, ok := v.Value.(bool); ok && c.IsPublished != want {
					return false
				}
			}
		case titleSearch:
			if !strings.Contains(strings.ToLower(c.Title), strings.ToLower(v.term)) {
				return false
			}
		}
	}
	return true
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *entity.Course) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *course
	r.store.courses[course.Id] = &cp
	return nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, course *entity.Course) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if existing, ok := r.store.courses[course.Id]; ok {
		count := existing.StudentCount
		cp := *course
		cp.StudentCount = count
		r.store.courses[course.Id] = &cp
	}
	return nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.courses, id)
	return nil
}

func (r *fakeCourseRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.courses {
		if courseMatches(c, specs) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCourseRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var res []*entity.Course
	for _, c := range r.store.courses {
		if courseMatches(c, specs) {
			cp := *c
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (r *fakeCourseRepo) AdjustStudentCount(ctx context.Context, id uuid.UUID, delta int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if c, ok := r.store.courses[id]; ok {
		c.StudentCount += delta
		if c.StudentCount < 0 {
			c.StudentCount = 0
		}
	}
	return nil
}

func (r *fakeCourseRepo) Count(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.courses)), nil
}

func (r *fakeCourseRepo) CountPublished(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, c := range r.store.courses {
		if c.IsPublished {
			n++
		}
	}
	return n, nil
}

// --- user repository ---

type fakeUserRepo struct {
	store *memStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *user
	r.store.users[user.Id] = &cp
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.Create(ctx, user)
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.users, id)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		match := true
		for _, sp := range specs {
			if v, ok := sp.(specification.ByID); ok && u.Id != v.ID {
				match = false
			}
		}
		if match {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var res []*entity.User
	for _, u := range r.store.users {
		cp := *u
		res = append(res, &cp)
	}
	return res, nil
}

func (r *fakeUserRepo) FindByRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var res []*entity.User
	for _, u := range r.store.users {
		if u.Role == role {
			cp := *u
			res = append(res, &cp)
		}
	}
	return res, nil
}

// --- audit repository ---

type fakeAuditRepo struct {
	store *memStore
}

func (r *fakeAuditRepo) Create(ctx context.Context, log *entity.EnrollmentAuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *log
	r.store.audits = append(r.store.audits, &cp)
	return nil
}

func (r *fakeAuditRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EnrollmentAuditLog, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var res []*entity.EnrollmentAuditLog
	for _, a := range r.store.audits {
		match := true
		for _, sp := range specs {
			if v, ok := sp.(specification.FilterBy); ok && v.Field == "enrollment_id" {
				if id, ok := v.Value.(uuid.UUID); ok && a.EnrollmentId != id {
					match = false
				}
			}
		}
		if match {
			cp := *a
			res = append(res, &cp)
		}
	}
	return res, nil
}

// --- unit of work ---

// fakeUnitOfWork applies writes directly; Begin/Commit/Rollback only keep
// bookkeeping so the call discipline can still be asserted.
type fakeUnitOfWork struct {
	store     *memStore
	commits   int
	rollbacks int
	inTx      bool
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	u.inTx = true
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if u.inTx {
		u.commits++
		u.inTx = false
	}
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if u.inTx {
		u.rollbacks++
		u.inTx = false
	}
	return nil
}

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUnitOfWork) CourseRepository() contract.CourseRepository {
	return &fakeCourseRepo{store: u.store}
}

func (u *fakeUnitOfWork) EnrollmentRepository() contract.EnrollmentRepository {
	return &fakeEnrollmentRepo{store: u.store}
}

func (u *fakeUnitOfWork) AuditRepository() contract.AuditRepository {
	return &fakeAuditRepo{store: u.store}
}

type fakeUowFactory struct {
	store *memStore
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

// --- publishers ---

type capturingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	p.payloads = append(p.payloads, cp)
	return nil
}

type capturingEventPublisher struct {
	mu      sync.Mutex
	events  []string
	courses []adminEvents.CourseRef
}

func (p *capturingEventPublisher) record(eventType string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
}

func (p *capturingEventPublisher) recordCourse(course adminEvents.CourseRef) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.courses = append(p.courses, course)
}

func (p *capturingEventPublisher) PublishEnrollmentCreated(ctx context.Context, enrollmentId, userId, courseId uuid.UUID, courseTitle, studentEmail, paymentStatus string, amount float64) {
	p.record("ENROLLMENT_CREATED")
}

func (p *capturingEventPublisher) PublishPaymentSubmitted(ctx context.Context, enrollmentId, userId, courseId uuid.UUID, courseTitle, studentEmail, reference string, amount float64) {
	p.record("PAYMENT_SUBMITTED")
}

func (p *capturingEventPublisher) PublishPaymentVerified(ctx context.Context, enrollmentId, userId, courseId uuid.UUID, courseTitle, reference string, amount float64) {
	p.record("PAYMENT_VERIFIED")
}

func (p *capturingEventPublisher) PublishAccessGranted(ctx context.Context, enrollmentId, userId uuid.UUID, course adminEvents.CourseRef, studentName, studentEmail, reason string) {
	p.record("ACCESS_GRANTED")
	p.recordCourse(course)
}

func (p *capturingEventPublisher) PublishAccessRevoked(ctx context.Context, enrollmentId, userId uuid.UUID, course adminEvents.CourseRef, studentName, studentEmail, reason string) {
	p.record("ACCESS_REVOKED")
	p.recordCourse(course)
}

func (p *capturingEventPublisher) PublishAccessRestored(ctx context.Context, enrollmentId, userId uuid.UUID, course adminEvents.CourseRef, studentName, studentEmail, reason string) {
	p.record("ACCESS_RESTORED")
	p.recordCourse(course)
}

func (p *capturingEventPublisher) PublishEnrollmentDeleted(ctx context.Context, enrollmentId, userId uuid.UUID, course adminEvents.CourseRef, studentName, studentEmail, reason string) {
	p.record("ENROLLMENT_DELETED")
	p.recordCourse(course)
}

// --- logger ---

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
func (noopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (noopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }
