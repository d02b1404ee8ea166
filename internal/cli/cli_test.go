package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "cli-test-secret")
	t.Setenv("JWT_ISSUER", "cli-test")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTokenIssue(t *testing.T) {
	out, err := run(t, "token", "issue", "ops-1", "--ttl", "5m")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(strings.TrimSpace(out), claims, func(*jwt.Token) (any, error) {
		return []byte("cli-test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ops-1", claims.Subject)
	assert.Equal(t, "cli-test", claims.Issuer)
}

func TestTokenIssueRequiresUser(t *testing.T) {
	_, err := run(t, "token", "issue")
	assert.Error(t, err)
}

func TestChartSeedDefault(t *testing.T) {
	out, err := run(t, "chart", "seed")
	require.NoError(t, err)
	assert.Equal(t, "Chart seeded with 10 accounts\n", out)
}

func TestPeriodsEnsureDefault(t *testing.T) {
	out, err := run(t, "periods", "ensure-default")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Created period FY-"), out)
}

func TestPeriodsCreateValidatesDates(t *testing.T) {
	_, err := run(t, "periods", "create", "--start", "2025-13-01", "--end", "2025-12-31")
	assert.ErrorContains(t, err, "invalid --start")

	out, err := run(t, "periods", "create", "--start", "2025-01-01", "--end", "2025-03-31", "--code", "Q1-2025")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Created period Q1-2025"), out)
}

func TestMigrateRequiresPostgres(t *testing.T) {
	_, err := run(t, "migrate", "up")
	assert.ErrorContains(t, err, "postgres store only")

	_, err = run(t, "migrate", "sideways")
	assert.Error(t, err)
}
