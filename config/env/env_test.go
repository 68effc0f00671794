package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("BOT_SERVER_URL", "https://bots.example.com/")
	t.Setenv("BOT_NAME", "Kora")
	t.Setenv("BOT_ID", "st-123")
	t.Setenv("CLIENT_ID", "cs-abc")
	t.Setenv("CLIENT_SECRET", "secret")
}

func TestLoad(t *testing.T) {
	t.Run("Test defaults", func(t *testing.T) {
		setRequired(t)
		t.Setenv("WORKDIR", t.TempDir()+"/")

		e, err := Load("botkit")
		require.NoError(t, err)
		assert.Equal(t, "https://bots.example.com", e.BotServerURL)
		assert.Equal(t, StoreMemory, e.StoreDriver)
		assert.Equal(t, 3, e.HTTPRetries)
		assert.Equal(t, 10*time.Second, e.HTTPTimeout)
		assert.Equal(t, 100, e.HistoryLimit)
		assert.True(t, e.IsAnonymous)
		assert.Equal(t, "botkit", e.Kafka.ClientID)
		assert.Equal(t, e, BaseEnv())
	})

	t.Run("Test aggregate every error", func(t *testing.T) {
		t.Setenv("WORKDIR", t.TempDir()+"/")
		t.Setenv("BOT_SERVER_URL", "not a url")
		t.Setenv("BOT_NAME", "")
		t.Setenv("BOT_ID", "")
		t.Setenv("CLIENT_ID", "")
		t.Setenv("CLIENT_SECRET", "")
		t.Setenv("HTTP_RETRIES", "many")
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("SQL_DSN", "")

		_, err := Load("botkit")
		require.Error(t, err)
		for _, key := range []string{"BOT_SERVER_URL", "BOT_NAME", "CLIENT_SECRET", "HTTP_RETRIES", "SQL_DSN"} {
			assert.Contains(t, err.Error(), key)
		}
	})

	t.Run("Test unknown store driver", func(t *testing.T) {
		setRequired(t)
		t.Setenv("WORKDIR", t.TempDir()+"/")
		t.Setenv("STORE_DRIVER", "sqlite")

		_, err := Load("botkit")
		assert.ErrorContains(t, err, "STORE_DRIVER")
	})
}
