package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/interfaces"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/models"
)

// MockBancardService, BancardServiceInterface için sahte (mock) bir yapıdır.
type MockBancardService struct {
	mock.Mock
}

var _ interfaces.BancardServiceInterface = (*MockBancardService)(nil)

func (m *MockBancardService) CreateLoadSession(userID int, req *models.LoadBalanceRequest) (*models.LoadBalanceResponse, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoadBalanceResponse), args.Error(1)
}
func (m *MockBancardService) ProcessConfirmation(req *models.BancardConfirmRequest) error {
	args := m.Called(req)
	return args.Error(0)
}
func (m *MockBancardService) PayWithBalance(userID int, req *models.PayWithBalanceRequest) (*models.PayWithBalanceResponse, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PayWithBalanceResponse), args.Error(1)
}

// TestWalletQueue_ProcessesJob, queue'ya eklenen job'ın işlenip sonucun
// result channel'dan döndüğünü test eder.
func TestWalletQueue_ProcessesJob(t *testing.T) {
	// Arrange
	mockBancard := new(MockBancardService)
	queue := NewWalletQueue(2, mockBancard, 10)
	queue.Start()
	defer queue.Stop()

	expectedResponse := &models.PayWithBalanceResponse{
		Success:          true,
		UserID:           1,
		AmountPaid:       3000,
		RemainingBalance: 7000,
		TransactionRef:   "SALE-42",
	}
	mockBancard.On("PayWithBalance", 1, mock.Anything).Return(expectedResponse, nil)

	// Act
	resultChan := queue.AddJob(1, &models.PayWithBalanceRequest{Amount: 3000, SaleID: "SALE-42"})

	// Assert
	select {
	case result := <-resultChan:
		require.NoError(t, result.Error)
		assert.Equal(t, expectedResponse, result.Response)
	case <-time.After(2 * time.Second):
		t.Fatal("job sonucu zamanında dönmedi")
	}
	mockBancard.AssertExpectations(t)
}

// TestWalletQueue_PropagatesError, service hatasının result üzerinden
// çağırana ulaştığını test eder.
func TestWalletQueue_PropagatesError(t *testing.T) {
	// Arrange
	mockBancard := new(MockBancardService)
	queue := NewWalletQueue(1, mockBancard, 10)
	queue.Start()
	defer queue.Stop()

	insufficientErr := &models.InsufficientBalanceError{CurrentBalance: 1000, RequiredAmount: 3000}
	mockBancard.On("PayWithBalance", 1, mock.Anything).Return(nil, insufficientErr)

	// Act
	resultChan := queue.AddJob(1, &models.PayWithBalanceRequest{Amount: 3000})

	// Assert
	select {
	case result := <-resultChan:
		var targetErr *models.InsufficientBalanceError
		require.ErrorAs(t, result.Error, &targetErr)
		assert.Nil(t, result.Response)
	case <-time.After(2 * time.Second):
		t.Fatal("job sonucu zamanında dönmedi")
	}
}

// TestWalletQueue_RejectsWhenFull, dolu queue'nun yeni job'ı hata ile
// reddettiğini test eder.
func TestWalletQueue_RejectsWhenFull(t *testing.T) {
	// Arrange: worker'lar başlatılmıyor, buffer 1 job alır
	mockBancard := new(MockBancardService)
	queue := NewWalletQueue(0, mockBancard, 1)

	first := queue.AddJob(1, &models.PayWithBalanceRequest{Amount: 100})
	assert.NotNil(t, first)

	// Act: buffer dolu, ikinci job reddedilir
	second := queue.AddJob(2, &models.PayWithBalanceRequest{Amount: 200})

	// Assert
	select {
	case result := <-second:
		assert.Error(t, result.Error)
		assert.Nil(t, result.Response)
	case <-time.After(2 * time.Second):
		t.Fatal("dolu queue hatası zamanında dönmedi")
	}
}

// TestWalletQueue_StopWaitsForPendingJobs, Stop'un kalan job'ları işleyip
// bitirmesini test eder.
func TestWalletQueue_StopWaitsForPendingJobs(t *testing.T) {
	// Arrange
	mockBancard := new(MockBancardService)
	queue := NewWalletQueue(1, mockBancard, 10)

	response := &models.PayWithBalanceResponse{Success: true, TransactionRef: "REF-1"}
	mockBancard.On("PayWithBalance", mock.Anything, mock.Anything).Return(response, nil)

	// Worker'lar başlamadan job'ları sıraya koy
	results := []<-chan PaymentResult{
		queue.AddJob(1, &models.PayWithBalanceRequest{Amount: 100}),
		queue.AddJob(2, &models.PayWithBalanceRequest{Amount: 200}),
	}

	// Act
	queue.Start()
	queue.Stop()

	// Assert: tüm sonuçlar teslim edildi
	for _, resultChan := range results {
		select {
		case result := <-resultChan:
			assert.NoError(t, result.Error)
		case <-time.After(2 * time.Second):
			t.Fatal("Stop bekleyen job'ları işlemedi")
		}
	}
}
