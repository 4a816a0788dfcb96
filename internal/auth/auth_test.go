package auth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGhCliProvider_GetToken_Success(t *testing.T) {
	provider := &GhCliProvider{}
	token, err := provider.GetToken()

	// This test will only pass if gh CLI is installed and authenticated
	// We can't reliably test this in CI without setup, so we just verify the interface
	if err != nil {
		// If gh CLI not available, error should be descriptive
		assert.Contains(t, err.Error(), "gh")
	} else {
		assert.NotEmpty(t, token)
	}
}

func TestEnvProvider_GetToken_Success(t *testing.T) {
	// Set up test environment
	expectedToken := "ghp_test_token_123"
	os.Setenv("GITHUB_TOKEN", expectedToken)
	defer os.Unsetenv("GITHUB_TOKEN")

	provider := &EnvProvider{}
	token, err := provider.GetToken()

	require.NoError(t, err)
	assert.Equal(t, expectedToken, token)
}

func TestEnvProvider_GetToken_LegacyVariable(t *testing.T) {
	// GITHUB_ACCESS_TOKEN should work when GITHUB_TOKEN is unset
	os.Unsetenv("GITHUB_TOKEN")
	expectedToken := "ghp_legacy_token"
	os.Setenv("GITHUB_ACCESS_TOKEN", expectedToken)
	defer os.Unsetenv("GITHUB_ACCESS_TOKEN")

	provider := &EnvProvider{}
	token, err := provider.GetToken()

	require.NoError(t, err)
	assert.Equal(t, expectedToken, token)
}

func TestEnvProvider_GetToken_PrefersCurrentVariable(t *testing.T) {
	os.Setenv("GITHUB_TOKEN", "ghp_current")
	os.Setenv("GITHUB_ACCESS_TOKEN", "ghp_legacy")
	defer os.Unsetenv("GITHUB_TOKEN")
	defer os.Unsetenv("GITHUB_ACCESS_TOKEN")

	provider := &EnvProvider{}
	token, err := provider.GetToken()

	require.NoError(t, err)
	assert.Equal(t, "ghp_current", token)
}

func TestEnvProvider_GetToken_Missing(t *testing.T) {
	// Ensure env vars are not set
	os.Unsetenv("GITHUB_TOKEN")
	os.Unsetenv("GITHUB_ACCESS_TOKEN")

	provider := &EnvProvider{}
	token, err := provider.GetToken()

	assert.Error(t, err)
	assert.Empty(t, token)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}

func TestGetToken_FallbackToEnv(t *testing.T) {
	// Set environment variable
	expectedToken := "ghp_fallback_token"
	os.Setenv("GITHUB_TOKEN", expectedToken)
	defer os.Unsetenv("GITHUB_TOKEN")

	// Even if gh CLI fails, we should get the env token
	token, err := GetToken()

	// Should succeed with env token if gh CLI isn't available
	if err == nil {
		assert.NotEmpty(t, token)
	}
}

func TestGetToken_BothFail(t *testing.T) {
	// Ensure no env tokens are set
	os.Unsetenv("GITHUB_TOKEN")
	os.Unsetenv("GITHUB_ACCESS_TOKEN")

	// We can't reliably make gh CLI fail in tests, but we can verify
	// the error handling structure exists
	token, err := GetToken()

	// If both fail, should get clear error
	if err != nil {
		errMsg := err.Error()
		// Error should be actionable
		assert.NotEmpty(t, errMsg)
	} else {
		// If we got a token, verify it's valid
		assert.NotEmpty(t, token)
	}
}

func TestTokenProvider_Interface(t *testing.T) {
	// Verify both implementations satisfy the interface
	var _ TokenProvider = &GhCliProvider{}
	var _ TokenProvider = &EnvProvider{}
}
