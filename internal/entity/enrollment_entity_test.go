package entity

import (
	"testing"
)

func TestCounterDelta(t *testing.T) {
	tests := []struct {
		name string
		from PaymentStatus
		to   PaymentStatus
		want int
	}{
		{name: "create pending", from: "", to: PaymentStatusPending, want: 0},
		{name: "create free", from: "", to: PaymentStatusFree, want: 1},
		{name: "create completed", from: "", to: PaymentStatusCompleted, want: 1},
		{name: "verify pending", from: PaymentStatusPending, to: PaymentStatusCompleted, want: 1},
		{name: "delete pending", from: PaymentStatusPending, to: "", want: 0},
		{name: "delete free", from: PaymentStatusFree, to: "", want: -1},
		{name: "delete completed", from: PaymentStatusCompleted, to: "", want: -1},
		{name: "no change completed", from: PaymentStatusCompleted, to: PaymentStatusCompleted, want: 0},
		{name: "no change pending", from: PaymentStatusPending, to: PaymentStatusPending, want: 0},
		{name: "downgrade completed to pending", from: PaymentStatusCompleted, to: PaymentStatusPending, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CounterDelta(tt.from, tt.to); got != tt.want {
				t.Errorf("CounterDelta(%q, %q) = %d, want %d", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestHasAccess(t *testing.T) {
	tests := []struct {
		name          string
		status        EnrollmentStatus
		paymentStatus PaymentStatus
		want          bool
	}{
		{name: "active free", status: EnrollmentStatusActive, paymentStatus: PaymentStatusFree, want: true},
		{name: "active completed", status: EnrollmentStatusActive, paymentStatus: PaymentStatusCompleted, want: true},
		{name: "active pending", status: EnrollmentStatusActive, paymentStatus: PaymentStatusPending, want: false},
		{name: "suspended free", status: EnrollmentStatusSuspended, paymentStatus: PaymentStatusFree, want: false},
		{name: "suspended completed", status: EnrollmentStatusSuspended, paymentStatus: PaymentStatusCompleted, want: false},
		{name: "suspended pending", status: EnrollmentStatusSuspended, paymentStatus: PaymentStatusPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Enrollment{Status: tt.status, PaymentStatus: tt.paymentStatus}
			if got := e.HasAccess(); got != tt.want {
				t.Errorf("HasAccess() with %s/%s = %v, want %v", tt.status, tt.paymentStatus, got, tt.want)
			}
		})
	}
}

func TestCounted(t *testing.T) {
	if PaymentStatusPending.Counted() {
		t.Error("pending must not count toward the student counter")
	}
	if !PaymentStatusFree.Counted() {
		t.Error("free must count toward the student counter")
	}
	if !PaymentStatusCompleted.Counted() {
		t.Error("completed must count toward the student counter")
	}
}
