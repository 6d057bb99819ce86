package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService("test-jwt-secret", time.Hour, "dealer-payment-service")

	token, expiry, err := svc.Generate("order-service")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	subject, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "order-service", subject)
}

func TestJWTTokenService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTTokenService("secret-a", time.Hour, "dealer-payment-service")
	other := NewJWTTokenService("secret-b", time.Hour, "dealer-payment-service")

	token, _, err := svc.Generate("order-service")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_RejectsExpired(t *testing.T) {
	svc := NewJWTTokenService("test-jwt-secret", -time.Minute, "dealer-payment-service")

	token, _, err := svc.Generate("order-service")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_RejectsGarbage(t *testing.T) {
	svc := NewJWTTokenService("test-jwt-secret", time.Hour, "dealer-payment-service")

	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)

	_, err = svc.Validate("")
	assert.Error(t, err)
}
