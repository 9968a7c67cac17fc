package usecase

import (
	"context"
	"testing"

	"homecare-booking-api/internal/delivery/dto"
	"homecare-booking-api/internal/domain/entity"
	"homecare-booking-api/internal/repository"
	"homecare-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Booking{},
		&entity.BookingService{},
		&entity.Recurrence{},
		&entity.Review{},
		&entity.Notification{},
		&entity.AuditLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func createUser(t *testing.T, db *gorm.DB, roleID int, name, email string) *entity.User {
	t.Helper()

	active := true
	user := &entity.User{
		ID:       uuid.New(),
		RoleID:   roleID,
		Email:    email,
		FullName: name,
		IsActive: &active,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// fakeNotifier records side-effect dispatches without delivering anything
type fakeNotifier struct {
	created        []string
	assigned       []string
	reassignedFrom []string
	confirmed      []string
	started        []string
	completed      []string
	cancelled      []string
}

func (f *fakeNotifier) BookingCreated(ctx context.Context, booking *entity.Booking) {
	f.created = append(f.created, booking.Reference)
}

func (f *fakeNotifier) WorkerAssigned(ctx context.Context, booking *entity.Booking, previousWorker *entity.User) {
	f.assigned = append(f.assigned, booking.Reference)
	if previousWorker != nil {
		f.reassignedFrom = append(f.reassignedFrom, previousWorker.FullName)
	}
}

func (f *fakeNotifier) BookingConfirmed(ctx context.Context, booking *entity.Booking) {
	f.confirmed = append(f.confirmed, booking.Reference)
}

func (f *fakeNotifier) BookingStarted(ctx context.Context, booking *entity.Booking) {
	f.started = append(f.started, booking.Reference)
}

func (f *fakeNotifier) BookingCompleted(ctx context.Context, booking *entity.Booking, rating int) {
	f.completed = append(f.completed, booking.Reference)
}

func (f *fakeNotifier) BookingCancelled(ctx context.Context, booking *entity.Booking, reason string) {
	f.cancelled = append(f.cancelled, booking.Reference)
}

var _ service.BookingNotifier = (*fakeNotifier)(nil)

type testEnv struct {
	db       *gorm.DB
	notifier *fakeNotifier
	client   BookingUsecase
	admin    AdminBookingUsecase
	worker   WorkerBookingUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	log := testLogger()
	notifier := &fakeNotifier{}

	bookingRepo := repository.NewBookingRepository()
	reviewRepo := repository.NewReviewRepository()
	userRepo := repository.NewUserRepository()
	auditRepo := repository.NewAuditLogRepository()
	auditService := service.NewAuditService(log, auditRepo)

	return &testEnv{
		db:       db,
		notifier: notifier,
		client:   NewBookingUsecase(db, log, bookingRepo, auditService, notifier),
		admin:    NewAdminBookingUsecase(db, log, bookingRepo, reviewRepo, userRepo, auditService, notifier),
		worker:   NewWorkerBookingUsecase(db, log, bookingRepo, auditService, notifier),
	}
}

func clientActor(user *entity.User) entity.Actor {
	return entity.Actor{UUID: user.ID, Role: entity.RoleIDClient}
}

func adminActor(user *entity.User) entity.Actor {
	return entity.Actor{UUID: user.ID, Role: entity.RoleIDAdmin}
}

func workerActor(user *entity.User) entity.Actor {
	return entity.Actor{UUID: user.ID, Role: entity.RoleIDHealthWorker}
}

func validCreateRequest() *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		RequestingFor:     "Self",
		StartDate:         "2025-03-01",
		EndDate:           "2025-03-03",
		StartTime:         "08:00",
		StartPeriod:       "AM",
		EndTime:           "05:00",
		EndPeriod:         "PM",
		CareDuration:      "Hourly",
		CareDurationValue: 8,
		CareType:          "Live-out",
		SpecialNotes:      "Need daily wound care and mobility support",
		MedicalServices:   []string{"Wound dressing", "Vitals monitoring"},
		OtherExtraService: []string{"Meal preparation"},
	}
}

// createBooking is a shortcut used by admin/worker transition tests
func createBooking(t *testing.T, env *testEnv, client *entity.User) uuid.UUID {
	t.Helper()

	resp, err := env.client.Create(context.Background(), clientActor(client), validCreateRequest())
	if err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}
	return resp.ID
}
