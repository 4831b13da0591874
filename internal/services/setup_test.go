package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"beautymatch_backend/internal/gateway"
	"beautymatch_backend/internal/models"
	"beautymatch_backend/internal/repositories"
	"beautymatch_backend/internal/services"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB поднимает чистую in-memory базу на каждый тест.
// TranslateError нужен, чтобы репозитории ловили gorm.ErrDuplicatedKey
// так же, как на постгресе.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "не удалось открыть тестовую базу")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// У in-memory sqlite каждое соединение - отдельная база
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ServiceRequest{},
		&models.AvailabilityPost{},
		&models.ModelResponse{},
		&models.CustomerOffer{},
		&models.Subscription{},
		&models.Rating{},
	), "не удалось прогнать миграции")

	return db
}

// sentMessage - записанное моком личное сообщение
type sentMessage struct {
	ChatID  int64
	Text    string
	Buttons [][]gateway.Button
}

// recordingMessenger пишет все отправки в память
type recordingMessenger struct {
	mu           sync.Mutex
	seq          int64
	Sent         []sentMessage
	ChannelPosts []string
	Edits        []int64
}

func (m *recordingMessenger) Send(ctx context.Context, chatID int64, text string, buttons [][]gateway.Button) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.Sent = append(m.Sent, sentMessage{ChatID: chatID, Text: text, Buttons: buttons})
	return m.seq, nil
}

func (m *recordingMessenger) Edit(ctx context.Context, chatID, messageID int64, text string, buttons [][]gateway.Button) error {
	return nil
}

func (m *recordingMessenger) PublishToChannel(ctx context.Context, text string, buttons [][]gateway.Button) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.ChannelPosts = append(m.ChannelPosts, text)
	return m.seq, nil
}

func (m *recordingMessenger) EditChannelPost(ctx context.Context, messageID int64, text string, buttons [][]gateway.Button) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Edits = append(m.Edits, messageID)
	return nil
}

func (m *recordingMessenger) sentTo(chatID int64) []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sentMessage
	for _, msg := range m.Sent {
		if msg.ChatID == chatID {
			out = append(out, msg)
		}
	}
	return out
}

// stubPaymentGateway отдает заранее заданный статус платежа
type stubPaymentGateway struct {
	mu     sync.Mutex
	seq    int
	Status models.PaymentStatus
}

func (g *stubPaymentGateway) CreateCharge(ctx context.Context, req gateway.ChargeRequest) (*gateway.Charge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return &gateway.Charge{
		ID:              fmt.Sprintf("charge-%d", g.seq),
		Status:          models.PaymentStatusPending,
		Amount:          req.Amount,
		ConfirmationURL: "https://pay.example.com/confirm",
	}, nil
}

func (g *stubPaymentGateway) CheckStatus(ctx context.Context, chargeID string) (models.PaymentStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Status, nil
}

// testEnv - полный набор сервисов над одной тестовой базой
type testEnv struct {
	db        *gorm.DB
	messenger *recordingMessenger
	payments  *stubPaymentGateway

	userRepo    repositories.UserRepository
	listingRepo repositories.ListingRepository
	subRepo     repositories.SubscriptionRepository

	identity      services.IdentityService
	subscriptions services.SubscriptionService
	listings      services.ListingService
	responses     services.ResponseService
	ratings       services.RatingService
	payment       services.PaymentService
	forms         services.FormService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	messenger := &recordingMessenger{}
	payments := &stubPaymentGateway{Status: models.PaymentStatusSucceeded}

	userRepo := repositories.NewUserRepository(db)
	listingRepo := repositories.NewListingRepository(db)
	responseRepo := repositories.NewResponseRepository(db)
	subRepo := repositories.NewSubscriptionRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)

	notifier := services.NewNotificationService(messenger)
	subscriptions := services.NewSubscriptionService(subRepo, userRepo, 30)
	identity := services.NewIdentityService(userRepo, subRepo, listingRepo, responseRepo)
	listings := services.NewListingService(listingRepo, userRepo, subscriptions, notifier, 48)
	responses := services.NewResponseService(responseRepo, listingRepo, userRepo, notifier, 2)
	ratings := services.NewRatingService(ratingRepo, responseRepo, userRepo)
	formsService := services.NewFormService(identity, listings)
	payment := services.NewPaymentService(payments, subscriptions, subRepo, userRepo, map[models.UserRole]services.Tariff{
		models.UserRoleModel:    {Price: 100, Days: 30},
		models.UserRoleCustomer: {Price: 500, Days: 30},
	})

	return &testEnv{
		db:            db,
		messenger:     messenger,
		payments:      payments,
		userRepo:      userRepo,
		listingRepo:   listingRepo,
		subRepo:       subRepo,
		identity:      identity,
		subscriptions: subscriptions,
		listings:      listings,
		responses:     responses,
		ratings:       ratings,
		payment:       payment,
		forms:         formsService,
	}
}

func (e *testEnv) createUser(t *testing.T, id int64, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		ID:       id,
		Username: fmt.Sprintf("user%d", id),
		Role:     role,
		FullName: fmt.Sprintf("Тестовый пользователь %d", id),
		City:     "Алматы",
		District: "Бостандыкский",
		Phone1:   "+77001234567",
	}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

// subscribe выдает действующую подписку, минуя платежи
func (e *testEnv) subscribe(t *testing.T, userID int64, role models.UserRole) {
	t.Helper()
	_, err := e.subscriptions.Grant(context.Background(), userID, role, 30, fmt.Sprintf("test-%d-%s", userID, role))
	require.NoError(t, err)
}

func (e *testEnv) createRequest(t *testing.T, customerID int64, modelsNeeded int) *models.ServiceRequest {
	t.Helper()
	req := &models.ServiceRequest{
		CustomerID:        customerID,
		Category:          "Маникюр",
		City:              "Алматы",
		District:          "Бостандыкский",
		Date:              "2026-09-10",
		Time:              "14:00",
		Duration:          "2 часа",
		ModelsNeeded:      modelsNeeded,
		ParticipationType: "Бесплатно",
	}
	require.NoError(t, e.listingRepo.CreateRequest(req))
	return req
}

func (e *testEnv) createPost(t *testing.T, modelID int64) *models.AvailabilityPost {
	t.Helper()
	post := &models.AvailabilityPost{
		ModelID:           modelID,
		Date:              "2026-09-10",
		District:          "Медеуский",
		Category:          "Ресницы",
		TimeRange:         "10:00-18:00",
		ParticipationType: "Бесплатно",
	}
	require.NoError(t, e.listingRepo.CreatePost(post))
	return post
}

// expireSubscriptions сдвигает все подписки пользователя в прошлое
func (e *testEnv) expireSubscriptions(t *testing.T, userID int64) {
	t.Helper()
	err := e.db.Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		Update("end_date", time.Now().Add(-time.Hour)).Error
	require.NoError(t, err)
}
