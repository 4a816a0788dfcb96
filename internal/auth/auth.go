// Package auth provides GitHub authentication token management.
// It implements a simple interface with multiple providers following the
// "deep modules" principle - simple interface, complex implementation hidden.
package auth

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// TokenProvider defines the interface for obtaining a GitHub authentication token.
// Implementations may use different sources (CLI tools, environment variables, etc).
type TokenProvider interface {
	GetToken() (string, error)
}

// GhCliProvider obtains tokens by shelling out to the GitHub CLI (`gh auth token`).
// This is the preferred method as it respects the user's gh CLI authentication state.
type GhCliProvider struct{}

// GetToken shells out to `gh auth token` to retrieve the current token.
// Returns an error if gh CLI is not installed, not authenticated, or the command fails.
func (g *GhCliProvider) GetToken() (string, error) {
	cmd := exec.Command("gh", "auth", "token", "--hostname", "github.com")
	output, err := cmd.Output()
	if err != nil {
		// Check if it's an exec error (gh not found)
		if execErr, ok := err.(*exec.Error); ok && execErr.Err == exec.ErrNotFound {
			return "", errors.New("gh CLI not found in PATH")
		}
		// Other errors (not authenticated, etc)
		return "", fmt.Errorf("gh auth token failed: %w", err)
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return "", errors.New("gh auth token returned empty token")
	}

	return token, nil
}

// EnvProvider obtains tokens from environment variables. GITHUB_TOKEN is
// checked first, then GITHUB_ACCESS_TOKEN for compatibility with older
// tooling that used that name.
type EnvProvider struct{}

// GetToken reads the token from the environment.
// Returns an error if neither variable is set or both are empty.
func (e *EnvProvider) GetToken() (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}
	if token := os.Getenv("GITHUB_ACCESS_TOKEN"); token != "" {
		return token, nil
	}
	return "", errors.New("GITHUB_TOKEN environment variable not set or empty")
}

// GetToken attempts to obtain a GitHub token using the following strategy:
// 1. Try gh CLI first (preferred method)
// 2. Fall back to GITHUB_TOKEN / GITHUB_ACCESS_TOKEN environment variables
// 3. Return a clear, actionable error if both fail
//
// Callers that can run anonymously (the search API accepts unauthenticated
// requests at a lower rate limit) may treat the error as non-fatal and pass
// an empty token through.
func GetToken() (string, error) {
	// Try gh CLI first
	ghCli := &GhCliProvider{}
	token, err := ghCli.GetToken()
	if err == nil {
		return token, nil
	}

	// Store gh CLI error for later
	ghErr := err

	// Fall back to environment variables
	envProvider := &EnvProvider{}
	token, err = envProvider.GetToken()
	if err == nil {
		return token, nil
	}

	// Both failed - return actionable error
	return "", fmt.Errorf(
		"failed to obtain GitHub token: gh CLI error (%v) and GITHUB_TOKEN not set.\n"+
			"Please either:\n"+
			"  1. Run 'gh auth login' to authenticate with GitHub CLI, or\n"+
			"  2. Set the GITHUB_TOKEN environment variable with a personal access token",
		ghErr,
	)
}
