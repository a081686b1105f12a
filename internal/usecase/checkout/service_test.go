package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/trendyhq/storefront/internal/domain"
	"github.com/trendyhq/storefront/internal/pkg/logger"
	"github.com/trendyhq/storefront/internal/usecase/cart"
)

// MockOrderRepository is a mock implementation of domain.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) SaveLast(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetLast(ctx context.Context) (*domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

// MockPublisher is a mock implementation of EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

var (
	redCap  = domain.Product{ID: 1, Name: "Red Cap", Category: "Caps", Price: 5000}
	blueCap = domain.Product{ID: 2, Name: "Blue Cap", Category: "Caps", Price: 7000}

	validDetails = domain.UserDetails{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
		Phone:     "+2348012345678",
		Address:   "12 Marina Road, Lagos",
	}
)

func newTestCart() *cart.Service {
	return cart.NewService(6000, logger.New("test"))
}

func TestService_Quote_AppliesCouponToFeeInclusiveTotal(t *testing.T) {
	cartService := newTestCart()
	cartService.AddN(redCap, 2)
	cartService.Add(blueCap)
	service := NewService(cartService, new(MockOrderRepository), new(MockPublisher), logger.New("test"))

	quote := service.Quote("1YEAR19")

	assert.Equal(t, int64(17000), quote.Totals.Subtotal)
	assert.Equal(t, int64(23000), quote.Totals.Total)
	assert.Equal(t, int64(19550), quote.FinalAmount)
	assert.True(t, quote.CouponApplied)
}

func TestService_Quote_WithoutCoupon(t *testing.T) {
	cartService := newTestCart()
	cartService.Add(redCap)
	service := NewService(cartService, new(MockOrderRepository), new(MockPublisher), logger.New("test"))

	quote := service.Quote("")

	assert.Equal(t, int64(11000), quote.FinalAmount)
	assert.False(t, quote.CouponApplied)
}

func TestService_Quote_EmptyCart_ZeroTotals(t *testing.T) {
	service := NewService(newTestCart(), new(MockOrderRepository), new(MockPublisher), logger.New("test"))

	quote := service.Quote("1YEAR19")

	assert.Equal(t, int64(0), quote.Totals.Subtotal)
	assert.Equal(t, int64(0), quote.Totals.Total)
	assert.Equal(t, int64(0), quote.FinalAmount)
}

func TestService_PlaceOrder_Success(t *testing.T) {
	cartService := newTestCart()
	cartService.AddN(redCap, 2)
	cartService.Add(blueCap)

	mockRepo := new(MockOrderRepository)
	mockPublisher := new(MockPublisher)
	service := NewService(cartService, mockRepo, mockPublisher, logger.New("test"))

	mockRepo.On("SaveLast", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
	mockPublisher.On("Publish", mock.Anything, "orders.events", mock.Anything).Return(nil).Maybe()

	order, err := service.PlaceOrder(context.Background(), validDetails, "1YEAR19")

	assert.NoError(t, err)
	assert.Equal(t, int64(17000), order.Subtotal)
	assert.Equal(t, int64(6000), order.DeliveryFee)
	assert.Equal(t, int64(19550), order.FinalAmount)
	assert.True(t, order.CouponApplied)
	assert.Len(t, order.CartItems, 2)
	assert.Equal(t, validDetails, order.UserDetails)
	assert.WithinDuration(t, time.Now().UTC(), order.Timestamp, time.Minute)

	// Cart is cleared after a successful order
	assert.Empty(t, cartService.Lines())
	mockRepo.AssertExpectations(t)
}

func TestService_PlaceOrder_InvalidCoupon_NoDiscount(t *testing.T) {
	cartService := newTestCart()
	cartService.Add(redCap)

	mockRepo := new(MockOrderRepository)
	mockRepo.On("SaveLast", mock.Anything, mock.Anything).Return(nil)
	mockPublisher := new(MockPublisher)
	mockPublisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	service := NewService(cartService, mockRepo, mockPublisher, logger.New("test"))

	order, err := service.PlaceOrder(context.Background(), validDetails, "NOPE")

	assert.NoError(t, err)
	assert.Equal(t, int64(11000), order.FinalAmount)
	assert.False(t, order.CouponApplied)
}

func TestService_PlaceOrder_InvalidDetails(t *testing.T) {
	cartService := newTestCart()
	cartService.Add(redCap)

	mockRepo := new(MockOrderRepository)
	service := NewService(cartService, mockRepo, new(MockPublisher), logger.New("test"))

	details := validDetails
	details.Email = "not-an-email"

	_, err := service.PlaceOrder(context.Background(), details, "")

	assert.Error(t, err)
	assert.Equal(t, domain.ErrInvalidInput, err)
	assert.Len(t, cartService.Lines(), 1)
	mockRepo.AssertNotCalled(t, "SaveLast")
}

func TestService_PlaceOrder_EmptyCart(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := NewService(newTestCart(), mockRepo, new(MockPublisher), logger.New("test"))

	_, err := service.PlaceOrder(context.Background(), validDetails, "")

	assert.Error(t, err)
	assert.Equal(t, domain.ErrEmptyCart, err)
	mockRepo.AssertNotCalled(t, "SaveLast")
}

func TestService_PlaceOrder_RepositoryFailure_KeepsCart(t *testing.T) {
	cartService := newTestCart()
	cartService.Add(redCap)

	mockRepo := new(MockOrderRepository)
	mockRepo.On("SaveLast", mock.Anything, mock.Anything).Return(domain.ErrInternal)
	service := NewService(cartService, mockRepo, new(MockPublisher), logger.New("test"))

	_, err := service.PlaceOrder(context.Background(), validDetails, "")

	assert.Error(t, err)
	assert.Len(t, cartService.Lines(), 1)
}

func TestService_LastOrder_Found(t *testing.T) {
	expected := &domain.Order{Subtotal: 5000}

	mockRepo := new(MockOrderRepository)
	mockRepo.On("GetLast", mock.Anything).Return(expected, nil)
	service := NewService(newTestCart(), mockRepo, new(MockPublisher), logger.New("test"))

	order, err := service.LastOrder(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, order)
}

func TestService_LastOrder_NoneYet(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRepo.On("GetLast", mock.Anything).Return(nil, domain.ErrNotFound)
	service := NewService(newTestCart(), mockRepo, new(MockPublisher), logger.New("test"))

	order, err := service.LastOrder(context.Background())

	assert.Error(t, err)
	assert.Equal(t, domain.ErrNotFound, err)
	assert.Nil(t, order)
}
