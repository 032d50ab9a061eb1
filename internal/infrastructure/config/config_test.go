package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doorasi/closingbot/internal/infrastructure/config"
)

func TestLoad(t *testing.T) {
	yaml := `
server:
  port: 9000
  timezone: Asia/Jakarta
telegram:
  token: test-token
  sales_group_id: "-1001"
  sales_thread_id: 42
  reminder_thread_ids: [1, 1875, 5838]
sheets:
  spreadsheet_id: sheet-abc
  closing_sheet: Closing
jobs:
  sales_report: "0 21 * * *"
observability:
  logging:
    level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "test-token", cfg.Telegram.Token)
	assert.Equal(t, 42, cfg.Telegram.SalesThreadID)
	assert.Equal(t, []int{1, 1875, 5838}, cfg.Telegram.ReminderThreadIDs)
	assert.Equal(t, "sheet-abc", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)

	// Defaults fill in everything the file left out.
	assert.Equal(t, "Closing MP", cfg.Sheets.ClosingMPSheet)
	assert.Equal(t, "AGEN", cfg.Sheets.AgentSheet)
	assert.Equal(t, "0 8 * * *", cfg.Jobs.AgentList)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_BOT_TOKEN", "secret-from-env")

	yaml := "telegram:\n  token: ${TEST_BOT_TOKEN}\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-from-env", cfg.Telegram.Token)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "env-token")
	t.Setenv("SS_ID", "env-sheet")
	t.Setenv("PORT", "8081")
	t.Setenv("REMINDER_THREAD_IDS", "1, 1875,5838, 19334")

	cfg := config.LoadFromEnv()

	assert.Equal(t, "env-token", cfg.Telegram.Token)
	assert.Equal(t, "env-sheet", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, []int{1, 1875, 5838, 19334}, cfg.Telegram.ReminderThreadIDs)
	assert.Equal(t, "Asia/Jakarta", cfg.Server.Timezone)
	assert.Equal(t, "message_id_store.json", cfg.Jobs.MessageIDStore)
}

func TestLoadOrEnvWithPath_FallsBack(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "fallback-token")

	cfg := config.LoadOrEnvWithPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, "fallback-token", cfg.Telegram.Token)
}
