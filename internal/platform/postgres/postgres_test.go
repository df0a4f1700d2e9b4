package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maidlink/internal/platform/config"
)

func TestOpenWithoutDSNIsDisabled(t *testing.T) {
	db, err := Open(context.Background(), config.Postgres{})
	require.NoError(t, err)
	assert.Nil(t, db)
}
