package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwttoken "maidlink/internal/jwt_token"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestTransitions(t *testing.T) {
	out, err := execute(t, "transitions")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "STATUS")
	assert.Regexp(t, `^draft\s+Draft\s+under_review$`, lines[1])
	assert.Regexp(t, `^under_review\s+Under Review\s+active, rejected$`, lines[2])
	assert.Regexp(t, `^archived\s+Archived\s+-$`, lines[5])
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "cli-test-key")
	userID := "6f1c1f0e-5c57-4a4e-9a53-5ad0f4f5d5a1"

	out, err := execute(t, "token", "--user", userID, "--role", "reviewer")
	require.NoError(t, err)

	claims, err := jwttoken.NewJWTService("cli-test-key", "maidlink", "maidlink-api").ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "reviewer", claims.Role)
}

func TestToken_RejectsBadInput(t *testing.T) {
	_, err := execute(t, "token", "--role", "superuser")
	assert.ErrorContains(t, err, "invalid --role")

	_, err = execute(t, "token", "--user", "not-a-uuid")
	assert.ErrorContains(t, err, "invalid --user")
}

func TestMigrate_RequiresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	_, err := execute(t, "migrate", "version")
	assert.ErrorContains(t, err, "no DSN")
}
