package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/shopstock-backend/internal/config"
)

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "migrate", "createsuperuser"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestCreateSuperuserRequiresCredentials(t *testing.T) {
	for _, name := range []string{"username", "password"} {
		f := createSuperuserCmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, []string{"true"}, f.Annotations["cobra_annotation_bash_completion_one_required_flag"], name)
	}
}

func TestSetupRefusesDefaultKeyInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SIGNING_KEY", "")

	_, db, err := setup(context.Background())
	assert.ErrorIs(t, err, config.ErrInsecureSigningKey)
	assert.Nil(t, db)
}
