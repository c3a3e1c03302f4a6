package jwt

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "test-access-secret-key-for-testing-purposes"
	testRefreshSecret = "test-refresh-secret-key-for-testing-purposes"
)

func newTestService() *Service {
	return NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
}

func testSubject() Subject {
	employeeID := int64(14)
	return Subject{
		AdminID:    uuid.New(),
		Email:      "agent@example.com",
		Role:       "agent",
		EmployeeID: &employeeID,
	}
}

func TestNewService(t *testing.T) {
	service := newTestService()

	assert.NotNil(t, service)
	assert.Equal(t, time.Hour, service.AccessTokenExpiry())
	assert.Equal(t, 24*time.Hour, service.RefreshTokenExpiry())
}

func TestGenerateAccessToken(t *testing.T) {
	service := newTestService()
	sub := testSubject()

	token, err := service.GenerateAccessToken(sub)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, sub.AdminID, claims.AdminID)
	assert.Equal(t, sub.Email, claims.Email)
	assert.Equal(t, "agent", claims.Role)
	require.NotNil(t, claims.EmployeeID)
	assert.Equal(t, int64(14), *claims.EmployeeID)
	assert.Equal(t, AccessToken, claims.TokenType)
}

func TestGenerateRefreshToken(t *testing.T) {
	service := newTestService()
	sub := testSubject()

	token, err := service.GenerateRefreshToken(sub)
	require.NoError(t, err)

	claims, err := service.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, sub.AdminID, claims.AdminID)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestTokensAreUnique(t *testing.T) {
	service := newTestService()
	sub := testSubject()

	first, err := service.GenerateRefreshToken(sub)
	require.NoError(t, err)
	second, err := service.GenerateRefreshToken(sub)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenTypeMismatch(t *testing.T) {
	service := NewService(testAccessSecret, testAccessSecret, time.Hour, 24*time.Hour)
	sub := testSubject()

	refresh, err := service.GenerateRefreshToken(sub)
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(refresh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token type")
}

func TestWrongSecret(t *testing.T) {
	service := newTestService()
	other := NewService("another-access-secret-of-sufficient-size", testRefreshSecret, time.Hour, time.Hour)

	token, err := other.GenerateAccessToken(testSubject())
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrTokenExpired))
}

func TestExpiredToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, -time.Minute, 24*time.Hour)

	token, err := service.GenerateAccessToken(testSubject())
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.True(t, errors.Is(err, ErrTokenExpired))
}

func TestMalformedToken(t *testing.T) {
	service := newTestService()

	for _, token := range []string{"", "invalid.token.here", "abc"} {
		_, err := service.ValidateAccessToken(token)
		assert.Error(t, err, token)
	}
}

func TestExtractClaims(t *testing.T) {
	service := newTestService()
	sub := testSubject()

	token, err := service.GenerateAccessToken(sub)
	require.NoError(t, err)

	claims, err := service.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, sub.AdminID, claims.AdminID)
	assert.Equal(t, sub.Email, claims.Email)
}

func TestGetTokenExpiry(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateAccessToken(testSubject())
	require.NoError(t, err)

	expiry, err := service.GetTokenExpiry(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	_, err = service.GetTokenExpiry("invalid.token.here")
	assert.Error(t, err)
}

func TestTokenSigningMethod(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateAccessToken(testSubject())
	require.NoError(t, err)

	parsedToken, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(testAccessSecret), nil
	})
	require.NoError(t, err)

	_, ok := parsedToken.Method.(*jwt.SigningMethodHMAC)
	assert.True(t, ok, "Token should use HMAC signing method")
}

func TestTokenIssuerAndSubject(t *testing.T) {
	service := newTestService()
	sub := testSubject()

	token, err := service.GenerateAccessToken(sub)
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "travel-agency-admin", claims.Issuer)
	assert.Equal(t, sub.AdminID.String(), claims.Subject)
}

func TestConcurrentTokenGeneration(t *testing.T) {
	service := newTestService()

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			token, err := service.GenerateAccessToken(testSubject())
			if err != nil {
				errs <- err
				return
			}
			if _, err := service.ValidateAccessToken(token); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
