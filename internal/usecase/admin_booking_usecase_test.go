package usecase

import (
	"context"
	"errors"
	"testing"

	"homecare-booking-api/internal/delivery/dto"
	"homecare-booking-api/internal/domain/entity"

	"github.com/google/uuid"
)

func assignWorker(t *testing.T, env *testEnv, admin *entity.User, bookingID uuid.UUID, worker *entity.User) *dto.BookingResponse {
	t.Helper()

	resp, err := env.admin.SetProcessing(context.Background(), adminActor(admin), bookingID, &dto.AssignWorkerRequest{
		HealthWorkerUUID: worker.ID.String(),
	})
	if err != nil {
		t.Fatalf("failed to assign worker: %v", err)
	}
	return resp
}

func TestSetProcessingAssignsWorker(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env.db, entity.RoleIDAdmin, "Admin", "admin@example.com")
	client := createUser(t, env.db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")
	worker := createUser(t, env.db, entity.RoleIDHealthWorker, "Nurse Grace", "grace@example.com")

	bookingID := createBooking(t, env, client)
	resp := assignWorker(t, env, admin, bookingID, worker)

	if resp.Status != string(entity.BookingStatusProcessing) {
		t.Errorf("expected status Processing, got %s", resp.Status)
	}
	if resp.HealthWorkerUUID == nil || *resp.HealthWorkerUUID != worker.ID {
		t.Errorf("expected worker %s attached, got %v", worker.ID, resp.HealthWorkerUUID)
	}
	if len(env.notifier.assigned) != 1 {
		t.Errorf("expected one assignment notification, got %d", len(env.notifier.assigned))
	}
	if len(env.notifier.reassignedFrom) != 0 {
		t.Errorf("fresh assignment must not report a previous worker")
	}
}

func TestSetProcessingWithoutWorker(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env.db, entity.RoleIDAdmin, "Admin", "admin@example.com")
	client := createUser(t, env.db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")

	bookingID := createBooking(t, env, client)
	resp, err := env.admin.SetProcessing(context.Background(), adminActor(admin), bookingID, &dto.AssignWorkerRequest{})
	if err != nil {
		t.Fatalf("expected transition without assignment, got %v", err)
	}
	if resp.Status != string(entity.BookingStatusProcessing) {
		t.Errorf("expected status Processing, got %s", resp.Status)
	}
	if resp.HealthWorkerUUID != nil {
		t.Errorf("expected no worker attached, got %v", resp.HealthWorkerUUID)
	}
}

func TestSetProcessingWorkerBusy(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env.db, entity.RoleIDAdmin, "Admin", "admin@example.com")
	clientA := createUser(t, env.db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")
	clientB := createUser(t, env.db, entity.RoleIDClient, "Bola Ade", "bola@example.com")
	worker := createUser(t, env.db, entity.RoleIDHealthWorker, "Nurse Grace", "grace@example.com")

	firstID := createBooking(t, env, clientA)
	first := assignWorker(t, env, admin, firstID, worker)

	secondID := createBooking(t, env, clientB)
	_, err := env.admin.SetProcessing(context.Background(), adminActor(admin), secondID, &dto.AssignWorkerRequest{
		HealthWorkerUUID: worker.ID.String(),
	})

	var busy *WorkerBusyError
	if !errors.As(err, &busy) {
		t.Fatalf("expected WorkerBusyError, got %v", err)
	}
	if busy.Reference != first.Reference {
		t.Errorf("expected blocking reference %s, got %s", first.Reference, busy.Reference)
	}
}

func TestSetProcessingReassignment(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env.db, entity.RoleIDAdmin, "Admin", "admin@example.com")
	client := createUser(t, env.db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")
	first := createUser(t, env.db, entity.RoleIDHealthWorker, "Nurse Grace", "grace@example.com")
	second := createUser(t, env.db, entity.RoleIDHealthWorker, "Nurse Tunde", "tunde@example.com")

	bookingID := createBooking(t, env, client)
	assignWorker(t, env, admin, bookingID, first)

	resp := assignWorker(t, env, admin, bookingID, second)
	if resp.HealthWorkerUUID == nil || *resp.HealthWorkerUUID != second.ID {
		t.Errorf("expected replacement worker %s, got %v", second.ID, resp.HealthWorkerUUID)
	}
	if len(env.notifier.reassignedFrom) != 1 || env.notifier.reassignedFrom[0] != first.FullName {
		t.Errorf("expected reassignment away from %s, got %v", first.FullName, env.notifier.reassignedFrom)
	}
}

func TestSetProcessingRejectsNonWorkerAccount(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env.db, entity.RoleIDAdmin, "Admin", "admin@example.com")
	client := createUser(t, env.db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")

	bookingID := createBooking(t, env, client)
	_, err := env.admin.SetProcessing(context.Background(), adminActor(admin), bookingID, &dto.AssignWorkerRequest{
		HealthWorkerUUID: client.ID.String(),
	})
	if !errors.Is(err, ErrWorkerNotFound) {
		t.Fatalf("expected ErrWorkerNotFound for a client account, got %v", err)
	}
}

func TestSetProcessingInvalidSourceStatus(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env.db, entity.RoleIDAdmin, "Admin", "admin@example.com")
	client := createUser(t, env.db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")

	bookingID := createBooking(t, env, client)
	_, err := env.admin.Cancel(context.Background(), adminActor(admin), bookingID, &dto.CancelBookingRequest{
		Reason: "no workers available this week",
	})
	if err != nil {
		t.Fatalf("failed to cancel booking: %v", err)
	}

	_, err = env.admin.SetProcessing(context.Background(), adminActor(admin), bookingID, &dto.AssignWorkerRequest{})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from Cancelled, got %v", err)
	}
}

func runThroughOngoing(t *testing.T, env *testEnv, admin, client, worker *entity.User) uuid.UUID {
	t.Helper()

	bookingID := createBooking(t, env, client)
	assignWorker(t, env, admin, bookingID, worker)

	if _, err := env.worker.Accept(context.Background(), workerActor(worker), bookingID); err != nil {
		t.Fatalf("failed to accept booking: %v", err)
	}
	if _, err := env.worker.Start(context.Background(), workerActor(worker), bookingID); err != nil {
		t.Fatalf("failed to start booking: %v", err)
	}
	return bookingID
}

func TestCompleteBooking(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env.db, entity.RoleIDAdmin, "Admin", "admin@example.com")
	client := createUser(t, env.db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")
	worker := createUser(t, env.db, entity.RoleIDHealthWorker, "Nurse Grace", "grace@example.com")

	bookingID := runThroughOngoing(t, env, admin, client, worker)

	resp, err := env.admin.Complete(context.Background(), adminActor(admin), bookingID, &dto.CompleteBookingRequest{
		Rating: 5,
		Review: "Excellent and punctual care",
	})
	if err != nil {
		t.Fatalf("failed to complete booking: %v", err)
	}

	if resp.Status != string(entity.BookingStatusDone) {
		t.Errorf("expected status Done, got %s", resp.Status)
	}
	if resp.Review == nil || resp.Review.Rating != 5 {
		t.Errorf("expected review with rating 5, got %v", resp.Review)
	}

	var count int64
	env.db.Model(&entity.Review{}).Where("booking_id = ?", bookingID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one review row, got %d", count)
	}
	if len(env.notifier.completed) != 1 {
		t.Errorf("expected one completion notification, got %d", len(env.notifier.completed))
	}
}

func TestCompleteBookingWrongStatus(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env.db, entity.RoleIDAdmin, "Admin", "admin@example.com")
	client := createUser(t, env.db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")
	worker := createUser(t, env.db, entity.RoleIDHealthWorker, "Nurse Grace", "grace@example.com")

	bookingID := runThroughOngoing(t, env, admin, client, worker)
	if _, err := env.admin.Complete(context.Background(), adminActor(admin), bookingID, &dto.CompleteBookingRequest{Rating: 4}); err != nil {
		t.Fatalf("failed to complete booking: %v", err)
	}

	// a Done booking cannot be completed twice
	_, err := env.admin.Complete(context.Background(), adminActor(admin), bookingID, &dto.CompleteBookingRequest{Rating: 4})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	var count int64
	env.db.Model(&entity.Review{}).Count(&count)
	if count != 1 {
		t.Errorf("expected a single review row, got %d", count)
	}
}

func TestCancelBooking(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env.db, entity.RoleIDAdmin, "Admin", "admin@example.com")
	client := createUser(t, env.db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")

	bookingID := createBooking(t, env, client)
	resp, err := env.admin.Cancel(context.Background(), adminActor(admin), bookingID, &dto.CancelBookingRequest{
		Reason: "no workers available this week",
	})
	if err != nil {
		t.Fatalf("failed to cancel booking: %v", err)
	}

	if resp.Status != string(entity.BookingStatusCancelled) {
		t.Errorf("expected status Cancelled, got %s", resp.Status)
	}
	if resp.CancellationReason == nil || *resp.CancellationReason != "no workers available this week" {
		t.Errorf("expected cancellation reason to be recorded, got %v", resp.CancellationReason)
	}
	if len(env.notifier.cancelled) != 1 {
		t.Errorf("expected one cancellation notification, got %d", len(env.notifier.cancelled))
	}
}

func TestCancelBookingWrongStatus(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env.db, entity.RoleIDAdmin, "Admin", "admin@example.com")
	client := createUser(t, env.db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")
	worker := createUser(t, env.db, entity.RoleIDHealthWorker, "Nurse Grace", "grace@example.com")

	bookingID := createBooking(t, env, client)
	assignWorker(t, env, admin, bookingID, worker)

	_, err := env.admin.Cancel(context.Background(), adminActor(admin), bookingID, &dto.CancelBookingRequest{
		Reason: "no workers available this week",
	})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for a Processing booking, got %v", err)
	}
}

func TestDeleteBooking(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env.db, entity.RoleIDAdmin, "Admin", "admin@example.com")
	client := createUser(t, env.db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")

	bookingID := createBooking(t, env, client)
	if err := env.admin.Delete(context.Background(), adminActor(admin), bookingID); err != nil {
		t.Fatalf("failed to delete booking: %v", err)
	}

	var bookings, services int64
	env.db.Model(&entity.Booking{}).Count(&bookings)
	env.db.Model(&entity.BookingService{}).Count(&services)
	if bookings != 0 {
		t.Errorf("expected booking row to be removed, found %d", bookings)
	}
	if services != 0 {
		t.Errorf("expected service line items to be removed, found %d", services)
	}
}

func TestDeleteBookingNotDeletable(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env.db, entity.RoleIDAdmin, "Admin", "admin@example.com")
	client := createUser(t, env.db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")
	worker := createUser(t, env.db, entity.RoleIDHealthWorker, "Nurse Grace", "grace@example.com")

	bookingID := runThroughOngoing(t, env, admin, client, worker)

	err := env.admin.Delete(context.Background(), adminActor(admin), bookingID)
	if !errors.Is(err, ErrBookingNotDeletable) {
		t.Fatalf("expected ErrBookingNotDeletable for an Ongoing booking, got %v", err)
	}
}

func TestListBookingsStatusFilter(t *testing.T) {
	env := newTestEnv(t)
	admin := createUser(t, env.db, entity.RoleIDAdmin, "Admin", "admin@example.com")
	clientA := createUser(t, env.db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")
	clientB := createUser(t, env.db, entity.RoleIDClient, "Bola Ade", "bola@example.com")
	worker := createUser(t, env.db, entity.RoleIDHealthWorker, "Nurse Grace", "grace@example.com")

	createBooking(t, env, clientA)
	secondID := createBooking(t, env, clientB)
	assignWorker(t, env, admin, secondID, worker)

	all, err := env.admin.ListBookings(context.Background(), adminActor(admin), "")
	if err != nil {
		t.Fatalf("failed to list bookings: %v", err)
	}
	if all.Total != 2 {
		t.Errorf("expected 2 bookings, got %d", all.Total)
	}

	pending, err := env.admin.ListBookings(context.Background(), adminActor(admin), "Pending")
	if err != nil {
		t.Fatalf("failed to filter bookings: %v", err)
	}
	if pending.Total != 1 {
		t.Errorf("expected 1 pending booking, got %d", pending.Total)
	}

	if _, err := env.admin.ListBookings(context.Background(), adminActor(admin), "Unknown"); !errors.Is(err, ErrInvalidStatusFilter) {
		t.Errorf("expected ErrInvalidStatusFilter, got %v", err)
	}
}

func TestAdminOperationsRejectNonAdmin(t *testing.T) {
	env := newTestEnv(t)
	client := createUser(t, env.db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")

	bookingID := createBooking(t, env, client)
	actor := clientActor(client)

	if _, err := env.admin.SetProcessing(context.Background(), actor, bookingID, &dto.AssignWorkerRequest{}); !errors.Is(err, ErrForbidden) {
		t.Errorf("SetProcessing: expected ErrForbidden, got %v", err)
	}
	if _, err := env.admin.Cancel(context.Background(), actor, bookingID, &dto.CancelBookingRequest{Reason: "client changed their mind"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("Cancel: expected ErrForbidden, got %v", err)
	}
	if err := env.admin.Delete(context.Background(), actor, bookingID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Delete: expected ErrForbidden, got %v", err)
	}
}
