package services_test

import (
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"alshop/internal/models"
	"alshop/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ListAdminIDs() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) AddFavorite(userID, productID string) error {
	args := m.Called(userID, productID)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveFavorite(userID, productID string) error {
	args := m.Called(userID, productID)
	return args.Error(0)
}

func (m *MockUserRepository) GetFavorites(userID string) ([]models.Product, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockUserRepository) HasFavorite(userID, productID string) (bool, error) {
	args := m.Called(userID, productID)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(includeInactive bool) ([]models.Product, error) {
	args := m.Called(includeInactive)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ids []string) ([]models.Product, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll(includeInactive bool) ([]models.Category, error) {
	args := m.Called(includeInactive)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(id string) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of repositories.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll() ([]models.Order, error) {
	args := m.Called()
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) TransitionStatus(id string, to models.OrderStatus) (*models.Order, bool, error) {
	args := m.Called(id, to)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Order), args.Bool(1), args.Error(2)
}

func (m *MockOrderRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByUser(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) SumTotals(excludeCancelled bool) (float64, error) {
	args := m.Called(excludeCancelled)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockOrderRepository) ListCreatedSince(since time.Time, excludeCancelled bool) ([]models.Order, error) {
	args := m.Called(since, excludeCancelled)
	return args.Get(0).([]models.Order), args.Error(1)
}

// MockNotificationRepository is a mock implementation of repositories.NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(notification *models.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(userID string, limit int) ([]models.Notification, error) {
	args := m.Called(userID, limit)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(userID, id string) error {
	args := m.Called(userID, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockReviewRepository is a mock implementation of repositories.ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(id string) (*models.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByProduct(productID string, includeInactive bool) ([]models.Review, error) {
	args := m.Called(productID, includeInactive)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsForUserProduct(userID, productID string) (bool, error) {
	args := m.Called(userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) Update(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

// MockPasswordResetRepository is a mock implementation of
// repositories.PasswordResetRepository.
type MockPasswordResetRepository struct {
	mock.Mock
}

func (m *MockPasswordResetRepository) Upsert(reset *models.PasswordReset) error {
	args := m.Called(reset)
	return args.Error(0)
}

func (m *MockPasswordResetRepository) GetByEmailAndOTP(email, otp string) (*models.PasswordReset, error) {
	args := m.Called(email, otp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PasswordReset), args.Error(1)
}

func (m *MockPasswordResetRepository) GetVerifiedByEmail(email string) (*models.PasswordReset, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PasswordReset), args.Error(1)
}

func (m *MockPasswordResetRepository) Save(reset *models.PasswordReset) error {
	args := m.Called(reset)
	return args.Error(0)
}

func (m *MockPasswordResetRepository) DeleteByEmail(email string) error {
	args := m.Called(email)
	return args.Error(0)
}

// sentNotification records one dispatch observed by the fake notifier.
type sentNotification struct {
	UserID string
	Input  services.NotificationInput
}

// fakeNotifier records dispatches under a mutex so tests can assert on
// notifications fired from background goroutines. FailFor simulates a
// per-recipient delivery failure.
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentNotification
	FailFor map[string]error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{FailFor: map[string]error{}}
}

func (f *fakeNotifier) Dispatch(userID string, in services.NotificationInput) error {
	if err, ok := f.FailFor[userID]; ok {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{UserID: userID, Input: in})
	return nil
}

func (f *fakeNotifier) FanOut(userIDs []string, in services.NotificationInput) {
	for _, id := range userIDs {
		_ = f.Dispatch(id, in)
	}
}

// Sent returns a snapshot of everything dispatched so far.
func (f *fakeNotifier) Sent() []sentNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentNotification, len(f.sent))
	copy(out, f.sent)
	return out
}

// SentTo filters the snapshot by recipient.
func (f *fakeNotifier) SentTo(userID string) []sentNotification {
	var out []sentNotification
	for _, s := range f.Sent() {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out
}

// fakeMailer records outgoing mail; Err makes every send fail.
type fakeMailer struct {
	mu   sync.Mutex
	mail []string
	Err  error
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mail = append(f.mail, to)
	return nil
}

func (f *fakeMailer) SentTo() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.mail))
	copy(out, f.mail)
	return out
}
