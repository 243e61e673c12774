package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/interfaces"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/models"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/services"
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

// newTestBancardHandler çalışan queue ile handler oluşturur
func newTestBancardHandler(t *testing.T, mockService *MockBancardService) *BancardHandler {
	t.Helper()
	queue := services.NewWalletQueue(1, mockService, 10)
	queue.Start()
	t.Cleanup(queue.Stop)
	return NewBancardHandler(mockService, queue)
}

// payRequest gövdeli ve claims'li ödeme isteği üretir
func payRequest(userID int, body string) *http.Request {
	return authenticatedRequest("POST", "/api/v1/wallet/pay", userID, body)
}

// TestBancardHandler_LoadBalance_Success, saldo yükleme oturumu endpoint'ini test eder.
func TestBancardHandler_LoadBalance_Success(t *testing.T) {
	// Arrange
	mockService := new(MockBancardService)
	handler := newTestBancardHandler(t, mockService)

	session := &models.LoadBalanceResponse{
		Success:       true,
		ShopProcessID: 123456,
		Amount:        50000,
		Currency:      "PYG",
		ProcessURL:    "https://vpos.infonet.com.py:8888/checkout/new?process_id=abc",
	}
	mockService.On("CreateLoadSession", 1, mock.MatchedBy(func(req *models.LoadBalanceRequest) bool {
		return req.Amount == 50000
	})).Return(session, nil)

	req := authenticatedRequest("POST", "/api/v1/wallet/load", 1, `{"amount": 50000}`)
	recorder := httptest.NewRecorder()

	// Act
	handler.LoadBalance(recorder, req)

	// Assert
	assert.Equal(t, http.StatusCreated, recorder.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	mockService.AssertExpectations(t)
}

// TestBancardHandler_Confirm_Success, webhook yanıt formatını test eder.
func TestBancardHandler_Confirm_Success(t *testing.T) {
	// Arrange
	mockService := new(MockBancardService)
	handler := newTestBancardHandler(t, mockService)

	mockService.On("ProcessConfirmation", mock.Anything).Return(nil)

	body := `{"operation": {"token": "abc", "shop_process_id": 123456, "response": "S", "response_code": "00", "amount": "10000.00", "currency": "PYG"}}`
	req := httptest.NewRequest("POST", "/api/v1/bancard/confirm", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	// Act
	handler.Confirm(recorder, req)

	// Assert
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "success", response["status"])
	mockService.AssertExpectations(t)
}

// TestBancardHandler_Pay_Success, queue üzerinden başarılı ödemeyi test eder.
func TestBancardHandler_Pay_Success(t *testing.T) {
	// Arrange
	mockService := new(MockBancardService)
	handler := newTestBancardHandler(t, mockService)

	response := &models.PayWithBalanceResponse{
		Success:          true,
		UserID:           1,
		AmountPaid:       3000,
		RemainingBalance: 7000,
		TransactionRef:   "SALE-42",
		Message:          "Ödeme saldo ile başarıyla işlendi",
	}
	mockService.On("PayWithBalance", 1, mock.Anything).Return(response, nil)

	recorder := httptest.NewRecorder()

	// Act
	handler.Pay(recorder, payRequest(1, `{"amount": 3000, "sale_id": "SALE-42"}`))

	// Assert
	assert.Equal(t, http.StatusOK, recorder.Code)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, 7000.0, data["remaining_balance"])
	mockService.AssertExpectations(t)
}

// TestBancardHandler_Pay_InsufficientBalance, yetersiz saldoda 400 ve deficit
// detayı döndüğünü test eder.
func TestBancardHandler_Pay_InsufficientBalance(t *testing.T) {
	// Arrange
	mockService := new(MockBancardService)
	handler := newTestBancardHandler(t, mockService)

	insufficientErr := &models.InsufficientBalanceError{CurrentBalance: 7000, RequiredAmount: 8000}
	mockService.On("PayWithBalance", 1, mock.Anything).Return(nil, insufficientErr)

	recorder := httptest.NewRecorder()

	// Act
	handler.Pay(recorder, payRequest(1, `{"amount": 8000}`))

	// Assert
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope["success"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, 7000.0, data["current_balance"])
	assert.Equal(t, 8000.0, data["required_amount"])
	assert.Equal(t, 1000.0, data["deficit"])
}

// TestBancardHandler_Pay_ConflictReturns409, kalıcı eşzamanlı çakışmada 409
// döndüğünü test eder.
func TestBancardHandler_Pay_ConflictReturns409(t *testing.T) {
	// Arrange
	mockService := new(MockBancardService)
	handler := newTestBancardHandler(t, mockService)

	mockService.On("PayWithBalance", 1, mock.Anything).Return(nil, models.ErrPersistenceConflict)

	recorder := httptest.NewRecorder()

	// Act
	handler.Pay(recorder, payRequest(1, `{"amount": 3000}`))

	// Assert
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

// TestBancardHandler_Pay_Unauthorized, claims olmadan isteğin reddedildiğini test eder.
func TestBancardHandler_Pay_Unauthorized(t *testing.T) {
	handler := newTestBancardHandler(t, new(MockBancardService))

	req := httptest.NewRequest("POST", "/api/v1/wallet/pay", strings.NewReader(`{"amount": 3000}`))
	recorder := httptest.NewRecorder()

	handler.Pay(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
