package mapper

import (
	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/model"
)

type EnrollmentMapper struct{}

func NewEnrollmentMapper() *EnrollmentMapper {
	return &EnrollmentMapper{}
}

func (m *EnrollmentMapper) ToEntity(e *model.Enrollment) *entity.Enrollment {
	if e == nil {
		return nil
	}
	return &entity.Enrollment{
		Id:            e.Id,
		UserId:        e.UserId,
		CourseId:      e.CourseId,
		PaymentStatus: entity.PaymentStatus(e.PaymentStatus),
		Status:        entity.EnrollmentStatus(e.Status),
		PaymentMethod: entity.PaymentMethod(e.PaymentMethod),
		AmountPaid:    e.AmountPaid,
		TransactionId: e.TransactionId,
		EnrolledAt:    e.EnrolledAt,
		PaymentDate:   e.PaymentDate,
		StudentName:   e.StudentName,
		StudentEmail:  e.StudentEmail,
		StudentPhone:  e.StudentPhone,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (m *EnrollmentMapper) ToModel(e *entity.Enrollment) *model.Enrollment {
	if e == nil {
		return nil
	}
	return &model.Enrollment{
		Id:            e.Id,
		UserId:        e.UserId,
		CourseId:      e.CourseId,
		PaymentStatus: string(e.PaymentStatus),
		Status:        string(e.Status),
		PaymentMethod: string(e.PaymentMethod),
		AmountPaid:    e.AmountPaid,
		TransactionId: e.TransactionId,
		EnrolledAt:    e.EnrolledAt,
		PaymentDate:   e.PaymentDate,
		StudentName:   e.StudentName,
		StudentEmail:  e.StudentEmail,
		StudentPhone:  e.StudentPhone,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
