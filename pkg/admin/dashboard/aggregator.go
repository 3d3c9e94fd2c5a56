package dashboard

import (
	"context"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/dto"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/pkg/logger"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/unitofwork"
)

// Aggregator handles dashboard statistics
type Aggregator struct {
	logger logger.ILogger
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetStats retrieves dashboard statistics
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.DashboardResponse, error) {
	totalCourses, err := uow.CourseRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	publishedCourses, err := uow.CourseRepository().CountPublished(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := uow.EnrollmentRepository().CountByPaymentStatus(ctx, entity.PaymentStatusPending)
	if err != nil {
		return nil, err
	}

	completed, err := uow.EnrollmentRepository().CountByPaymentStatus(ctx, entity.PaymentStatusCompleted)
	if err != nil {
		return nil, err
	}

	free, err := uow.EnrollmentRepository().CountByPaymentStatus(ctx, entity.PaymentStatusFree)
	if err != nil {
		return nil, err
	}

	suspended, err := uow.EnrollmentRepository().CountByStatus(ctx, entity.EnrollmentStatusSuspended)
	if err != nil {
		return nil, err
	}

	totalCollected, err := uow.EnrollmentRepository().TotalCollected(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		TotalCourses:        int(totalCourses),
		PublishedCourses:    int(publishedCourses),
		TotalStudents:       completed + free,
		PendingPayments:     pending,
		CompletedPayments:   completed,
		FreeEnrollments:     free,
		SuspendedEnrollment: suspended,
		TotalCollected:      totalCollected,
	}, nil
}

// GetTransactions retrieves paginated enrollment transactions
func (a *Aggregator) GetTransactions(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, paymentStatus string) ([]*dto.TransactionResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	txs, err := uow.EnrollmentRepository().GetTransactions(ctx, paymentStatus, limit, offset)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		res = append(res, &dto.TransactionResponse{
			Id:            t.Id,
			UserId:        t.UserId,
			UserEmail:     t.UserEmail,
			CourseTitle:   t.CourseTitle,
			AmountPaid:    t.AmountPaid,
			Status:        string(t.Status),
			PaymentStatus: string(t.PaymentStatus),
			PaymentMethod: string(t.PaymentMethod),
			TransactionId: t.TransactionId,
			CreatedAt:     t.CreatedAt,
		})
	}
	return res, nil
}
