package domain

import "testing"

func TestTransactionStatus_CanTransitionTo(t *testing.T) {
	if !TransactionIssued.CanTransitionTo(TransactionReturned) {
		t.Error("ISSUED → RETURNED must be allowed")
	}
	if TransactionReturned.CanTransitionTo(TransactionIssued) {
		t.Error("RETURNED → ISSUED must be rejected")
	}
	if TransactionReturned.CanTransitionTo(TransactionReturned) {
		t.Error("RETURNED → RETURNED must be rejected")
	}
}

func TestReservationStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to ReservationStatus
		want     bool
	}{
		{ReservationPending, ReservationReady, true},
		{ReservationPending, ReservationCancelled, true},
		{ReservationPending, ReservationFulfilled, false},
		{ReservationReady, ReservationFulfilled, true},
		{ReservationReady, ReservationExpired, true},
		{ReservationReady, ReservationPending, false},
		{ReservationFulfilled, ReservationCancelled, false},
		{ReservationExpired, ReservationReady, false},
		{ReservationCancelled, ReservationPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s → %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestFineStatus_CanTransitionTo(t *testing.T) {
	if !FinePending.CanTransitionTo(FinePaid) {
		t.Error("PENDING → PAID must be allowed")
	}
	if !FinePending.CanTransitionTo(FineWaived) {
		t.Error("PENDING → WAIVED must be allowed")
	}
	if FinePaid.CanTransitionTo(FinePending) {
		t.Error("PAID is terminal")
	}
	if FineWaived.CanTransitionTo(FinePaid) {
		t.Error("WAIVED is terminal")
	}
}

func TestRole_Valid(t *testing.T) {
	if !RoleStudent.Valid() || !RoleAdmin.Valid() {
		t.Error("known roles must be valid")
	}
	if Role("LIBRARIAN").Valid() {
		t.Error("unknown role must be invalid")
	}
}
