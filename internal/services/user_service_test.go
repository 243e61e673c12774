package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jomachado2002/Zennelectronica-sub006/internal/interfaces"
	"github.com/Jomachado2002/Zennelectronica-sub006/internal/models"
)

// MockUserRepository - test için mock repository
type MockUserRepository struct {
	mock.Mock
}

var _ interfaces.UserRepositoryInterface = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(user *models.RegisterRequest) (*models.User, error) {
	args := m.Called(user)
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

func (m *MockUserRepository) GetByID(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// TestUserService_Register_Success, kullanıcı kaydı senaryosunu test eder.
func TestUserService_Register_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	userService := NewUserService(mockRepo)

	req := &models.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Password123!",
	}

	expectedUser := &models.User{
		ID:    1,
		Name:  "Test User",
		Email: "test@example.com",
	}

	// Mock expectations
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, nil) // Email yok
	mockRepo.On("Create", mock.MatchedBy(func(r *models.RegisterRequest) bool {
		// Şifre hashlenmiş olmalı
		return bcrypt.CompareHashAndPassword([]byte(r.Password), []byte("Password123!")) == nil
	})).Return(expectedUser, nil)

	// Act
	result, err := userService.Register(req)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "Test User", result.Name)
	assert.Equal(t, "test@example.com", result.Email)

	// Mock assertions
	mockRepo.AssertExpectations(t)
}

// TestUserService_Register_EmailExists, mevcut email ile kaydın reddedildiğini test eder.
func TestUserService_Register_EmailExists(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	userService := NewUserService(mockRepo)

	req := &models.RegisterRequest{
		Name:     "Test User",
		Email:    "existing@example.com",
		Password: "Password123!",
	}

	existingUser := &models.User{
		ID:    1,
		Email: "existing@example.com",
	}

	// Mock: Email zaten var
	mockRepo.On("GetByEmail", "existing@example.com").Return(existingUser, nil)

	// Act
	result, err := userService.Register(req)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "bu email zaten kullanılıyor")

	// Mock assertions
	mockRepo.AssertExpectations(t)
}

// TestUserService_Login_Success, doğru şifreyle girişin token döndüğünü test eder.
func TestUserService_Login_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	userService := NewUserService(mockRepo)

	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		ID:       1,
		Name:     "Test User",
		Email:    "test@example.com",
		Password: string(hashed),
	}
	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil)

	// Act
	result, err := userService.Login(&models.LoginRequest{
		Email:    "test@example.com",
		Password: "Password123!",
	})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, 1, result.User.ID)
	mockRepo.AssertExpectations(t)
}

// TestUserService_Login_WrongPassword, yanlış şifrenin reddedildiğini test eder.
func TestUserService_Login_WrongPassword(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	userService := NewUserService(mockRepo)

	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{ID: 1, Email: "test@example.com", Password: string(hashed)}
	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil)

	// Act
	result, err := userService.Login(&models.LoginRequest{
		Email:    "test@example.com",
		Password: "yanlis-sifre",
	})

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "email veya şifre hatalı")
}

// TestUserService_Login_UnknownEmail, bilinmeyen email için aynı generic
// hatanın döndüğünü test eder.
func TestUserService_Login_UnknownEmail(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	userService := NewUserService(mockRepo)

	mockRepo.On("GetByEmail", "unknown@example.com").Return(nil, errors.New("sql: no rows"))

	// Act
	result, err := userService.Login(&models.LoginRequest{
		Email:    "unknown@example.com",
		Password: "Password123!",
	})

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "email veya şifre hatalı")
}

// TestUserService_GetUserByID, kullanıcı getirme ve geçersiz ID durumlarını test eder.
func TestUserService_GetUserByID(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	userService := NewUserService(mockRepo)

	user := &models.User{ID: 1, Name: "Test User", Email: "test@example.com"}
	mockRepo.On("GetByID", 1).Return(user, nil)

	// Act & Assert
	result, err := userService.GetUserByID(1)
	assert.NoError(t, err)
	assert.Equal(t, user, result)

	result, err = userService.GetUserByID(0)
	assert.Error(t, err)
	assert.Nil(t, result)
}
