package service

import (
	"context"
	"errors"
	"testing"

	"homecare-booking-api/config"
	"homecare-booking-api/internal/domain/entity"
	"homecare-booking-api/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingMailer captures sends and can be told to fail every delivery
type recordingMailer struct {
	sent []string
	fail bool
}

func (m *recordingMailer) Send(ctx context.Context, templateID, recipient string, data map[string]string) error {
	if m.fail {
		return errors.New("mail API unavailable")
	}
	m.sent = append(m.sent, recipient)
	return nil
}

func setupNotifierTest(t *testing.T, mailer *recordingMailer) (*gorm.DB, BookingNotifier) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.Notification{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	notifications := NewNotificationService(db, log, repository.NewNotificationRepository())
	notifier := NewBookingNotifier(db, log, mailer, notifications, repository.NewUserRepository(), config.MailConfig{
		AdminEmail: "ops@example.com",
	})
	return db, notifier
}

func seedNotifierUser(t *testing.T, db *gorm.DB, roleID int, name, email string) *entity.User {
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

func notifierBooking(client, worker *entity.User) *entity.Booking {
	booking := &entity.Booking{
		ID:        uuid.New(),
		Reference: "HC-20250301-AB12CD",
		UserUUID:  client.ID,
		Client:    *client,
		Status:    entity.BookingStatusProcessing,
	}
	if worker != nil {
		workerID := worker.ID
		booking.HealthWorkerUUID = &workerID
		booking.HealthWorker = worker
	}
	return booking
}

func TestWorkerAssignedNotifiesAllRecipients(t *testing.T) {
	mailer := &recordingMailer{}
	db, notifier := setupNotifierTest(t, mailer)

	admin := seedNotifierUser(t, db, entity.RoleIDAdmin, "Admin", "admin@example.com")
	client := seedNotifierUser(t, db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")
	worker := seedNotifierUser(t, db, entity.RoleIDHealthWorker, "Nurse Grace", "grace@example.com")

	notifier.WorkerAssigned(context.Background(), notifierBooking(client, worker), nil)

	var rows []entity.Notification
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("failed to load notifications: %v", err)
	}
	// one for the client, one for the worker, one for the admin
	if len(rows) != 3 {
		t.Fatalf("expected 3 notification rows, got %d", len(rows))
	}

	recipients := map[uuid.UUID]bool{}
	for _, row := range rows {
		recipients[row.UserUUID] = true
		if row.Type != entity.NotifBookingAssigned {
			t.Errorf("expected booking_assigned type, got %s", row.Type)
		}
	}
	for _, u := range []*entity.User{client, worker, admin} {
		if !recipients[u.ID] {
			t.Errorf("expected notification for %s", u.FullName)
		}
	}

	if len(mailer.sent) != 3 {
		t.Errorf("expected 3 emails, got %d (%v)", len(mailer.sent), mailer.sent)
	}
}

func TestWorkerAssignedReassignmentType(t *testing.T) {
	mailer := &recordingMailer{}
	db, notifier := setupNotifierTest(t, mailer)

	client := seedNotifierUser(t, db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")
	worker := seedNotifierUser(t, db, entity.RoleIDHealthWorker, "Nurse Grace", "grace@example.com")
	previous := seedNotifierUser(t, db, entity.RoleIDHealthWorker, "Nurse Tunde", "tunde@example.com")

	notifier.WorkerAssigned(context.Background(), notifierBooking(client, worker), previous)

	var row entity.Notification
	if err := db.Where("user_uuid = ?", client.ID).First(&row).Error; err != nil {
		t.Fatalf("failed to load client notification: %v", err)
	}
	if row.Type != entity.NotifBookingReassigned {
		t.Errorf("expected booking_reassigned type for the client, got %s", row.Type)
	}
}

func TestNotifierSurvivesMailFailure(t *testing.T) {
	mailer := &recordingMailer{fail: true}
	db, notifier := setupNotifierTest(t, mailer)

	client := seedNotifierUser(t, db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")
	worker := seedNotifierUser(t, db, entity.RoleIDHealthWorker, "Nurse Grace", "grace@example.com")

	// must not panic or propagate even when every email fails
	notifier.WorkerAssigned(context.Background(), notifierBooking(client, worker), nil)

	var count int64
	db.Model(&entity.Notification{}).Count(&count)
	if count == 0 {
		t.Error("expected in-app notifications despite mail failures")
	}
}

func TestBookingCreatedNotifiesAdmins(t *testing.T) {
	mailer := &recordingMailer{}
	db, notifier := setupNotifierTest(t, mailer)

	adminA := seedNotifierUser(t, db, entity.RoleIDAdmin, "Admin A", "admin-a@example.com")
	adminB := seedNotifierUser(t, db, entity.RoleIDAdmin, "Admin B", "admin-b@example.com")
	client := seedNotifierUser(t, db, entity.RoleIDClient, "Amina Yusuf", "amina@example.com")

	notifier.BookingCreated(context.Background(), notifierBooking(client, nil))

	var rows []entity.Notification
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("failed to load notifications: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected one row per admin, got %d", len(rows))
	}
	seen := map[uuid.UUID]bool{}
	for _, row := range rows {
		seen[row.UserUUID] = true
	}
	if !seen[adminA.ID] || !seen[adminB.ID] {
		t.Error("expected both admins to be notified")
	}
}
