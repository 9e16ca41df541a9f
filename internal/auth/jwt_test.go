package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldleaf/internal/auth"
)

func TestIssueAndValidate(t *testing.T) {
	m := auth.NewTokenManager("test-secret", time.Hour)
	tok, err := m.Issue("adm-1", "admin@goldleaf.test")
	require.NoError(t, err)

	claims, err := m.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "adm-1", claims.AdminID)
	assert.Equal(t, "admin@goldleaf.test", claims.Email)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	tok, err := auth.NewTokenManager("secret-a", time.Hour).Issue("adm-1", "a@b.co")
	require.NoError(t, err)

	_, err = auth.NewTokenManager("secret-b", time.Hour).Validate(tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	tok, err := auth.NewTokenManager("secret", -time.Minute).Issue("adm-1", "a@b.co")
	require.NoError(t, err)

	_, err = auth.NewTokenManager("secret", -time.Minute).Validate(tok)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}
