package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akeren/creatorchain/internal/log"
	"github.com/stretchr/testify/assert"
)

func TestValidateAutoMigrateAllowed(t *testing.T) {
	for _, env := range []string{"", "dev", "development", "local", "test", "testing", "DEV", "  Local  "} {
		assert.NoError(t, ValidateAutoMigrateAllowed(env), env)
	}
	for _, env := range []string{"prod", "production", "staging", "preprod", " Production ", "qa"} {
		assert.Error(t, ValidateAutoMigrateAllowed(env), env)
	}
}

func TestEnvFiles(t *testing.T) {
	t.Setenv(EnvFileKey, "")
	assert.Equal(t, []string{".env"}, envFiles())

	t.Setenv(EnvFileKey, " .env.local , ,.env ")
	assert.Equal(t, []string{".env.local", ".env"}, envFiles())
}

func TestInitializeEnvFile_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	assert.NoError(t, os.WriteFile(path, []byte("WAITLIST_FORM_ID=fromfile\nCC_ENV_TEST_ONLY=loaded\n"), 0o600))

	t.Setenv("SKIP_DOTENV", "")
	t.Setenv(EnvFileKey, path+","+filepath.Join(dir, "missing.env"))
	t.Setenv("WAITLIST_FORM_ID", "fromprocess")
	t.Setenv("CC_ENV_TEST_ONLY", "")
	os.Unsetenv("CC_ENV_TEST_ONLY")

	InitializeEnvFile(log.NewDiscardLogger())

	assert.Equal(t, "fromprocess", os.Getenv("WAITLIST_FORM_ID"))
	assert.Equal(t, "loaded", os.Getenv("CC_ENV_TEST_ONLY"))
}
