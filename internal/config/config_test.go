package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProperties(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "application.properties")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeProperties(t, "coach.name=Virat\nteam.name=India\nscan.basePackages=coachdemo/internal/coach, coachdemo/internal/runner\n")
	t.Setenv("APP_PROPERTIES", path)
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Virat", cfg.Team.CoachName)
	assert.Equal(t, "India", cfg.Team.TeamName)
	assert.Equal(t, []string{"coachdemo/internal/coach", "coachdemo/internal/runner"}, cfg.Components.BasePackages)
	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Database.Enabled())
}

func TestLoad_MissingPropertiesFile(t *testing.T) {
	t.Setenv("APP_PROPERTIES", filepath.Join(t.TempDir(), "missing.properties"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Team.CoachName)
	assert.Equal(t, "", cfg.Team.TeamName)
	assert.Empty(t, cfg.Components.BasePackages)
}

func TestFromProperties_EnvOverrides(t *testing.T) {
	t.Setenv("COACH_NAME", "Dhoni")
	t.Setenv("COACH_TYPE", "trackCoach")

	cfg := FromProperties(map[string]string{
		KeyCoachName: "Virat",
		KeyTeamName:  "India",
		KeyCoachType: "cricketCoach",
	})

	assert.Equal(t, "Dhoni", cfg.Team.CoachName)
	assert.Equal(t, "India", cfg.Team.TeamName)
	assert.Equal(t, "trackCoach", cfg.Components.CoachType)
}

func TestFromProperties_EmptyValue(t *testing.T) {
	path := writeProperties(t, "coach.name=\nteam.name=India\n")
	props, err := ReadProperties(path)
	require.NoError(t, err)

	cfg := FromProperties(props)

	assert.Equal(t, "", cfg.Team.CoachName)
	assert.Equal(t, "India", cfg.Team.TeamName)
}

func TestReadProperties_ValuesPassThrough(t *testing.T) {
	path := writeProperties(t, "# team settings\n"+
		"coach.name=M$HOME Dhoni\n"+
		"team.name=India #1\n"+
		"coach.type=\"quoted\"\n"+
		"scan.basePackages=${HOME}/coach\n")
	t.Setenv("HOME", "/root")

	props, err := ReadProperties(path)
	require.NoError(t, err)

	assert.Equal(t, "M$HOME Dhoni", props[KeyCoachName])
	assert.Equal(t, "India #1", props[KeyTeamName])
	assert.Equal(t, `"quoted"`, props[KeyCoachType])
	assert.Equal(t, "${HOME}/coach", props[KeyScanBasePackages])
	assert.Len(t, props, 4)

	t.Setenv("COACH_NAME", "")
	t.Setenv("TEAM_NAME", "")
	cfg := FromProperties(props)
	assert.Equal(t, "M$HOME Dhoni", cfg.Team.CoachName)
	assert.Equal(t, "India #1", cfg.Team.TeamName)
}

func TestReadProperties_Separators(t *testing.T) {
	path := writeProperties(t, "coach.name = Virat\nteam.name:India\n! old style comment\n")

	props, err := ReadProperties(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{KeyCoachName: "Virat", KeyTeamName: "India"}, props)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	t.Setenv(key, "value")

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	t.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	t.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	t.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	t.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	t.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvList(t *testing.T) {
	key := "TEST_LIST_VAR"

	t.Setenv(key, " a, ,b ,c")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvList(key, ""))

	os.Unsetenv(key)
	assert.Equal(t, []string{"x"}, getEnvList(key, "x"))
	assert.Nil(t, getEnvList(key, ""))
}
