package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathbuddy/internal/llm"
	"github.com/abhisek/mathbuddy/internal/store"
	"github.com/abhisek/mathbuddy/internal/tutor"
)

// flagCmd returns a command carrying the root's persistent flags, parsed
// from args.
func flagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	f := c.Flags()
	f.String("db", "", "")
	f.Bool("record", false, "")
	f.String("provider", "", "")
	f.String("model", "", "")
	f.String("grade", "", "")
	f.String("type", "", "")
	f.String("difficulty", "", "")
	require.NoError(t, f.Parse(args))
	return c
}

func TestPracticeSettings_Defaults(t *testing.T) {
	s, err := practiceSettings(flagCmd(t))
	require.NoError(t, err)
	assert.Equal(t, tutor.DefaultSettings(), s)
}

func TestPracticeSettings_FromFlags(t *testing.T) {
	s, err := practiceSettings(flagCmd(t, "--grade", "3rd Grade", "--type", "fractions", "--difficulty", "Hard"))
	require.NoError(t, err)
	assert.Equal(t, tutor.Grade3, s.Grade)
	assert.Equal(t, tutor.TypeFractions, s.ProblemType)
	assert.Equal(t, tutor.DifficultyHard, s.Difficulty)
}

func TestPracticeSettings_Invalid(t *testing.T) {
	_, err := practiceSettings(flagCmd(t, "--difficulty", "impossible"))
	assert.ErrorContains(t, err, "difficulty")
}

func TestResolveLLMConfig_ProviderAndModelFlags(t *testing.T) {
	t.Setenv("MATHBUDDY_LLM_PROVIDER", "mock")

	cfg, err := resolveLLMConfig(flagCmd(t))
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderMock, cfg.Provider)

	cfg, err = resolveLLMConfig(flagCmd(t, "--provider", "openai", "--model", "gpt-4o"))
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
}

func TestResolveLLMConfig_ProviderFlagPicksUpWellKnownKey(t *testing.T) {
	t.Setenv("MATHBUDDY_LLM_PROVIDER", "mock")
	t.Setenv("MATHBUDDY_ANTHROPIC_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-env")

	cfg, err := resolveLLMConfig(flagCmd(t, "--provider", "anthropic"))
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "sk-ant-env", cfg.APIKey())
}

func TestResolveLLMConfig_UnknownProvider(t *testing.T) {
	t.Setenv("MATHBUDDY_LLM_PROVIDER", "mock")

	_, err := resolveLLMConfig(flagCmd(t, "--provider", "palm"))
	assert.ErrorContains(t, err, "unknown LLM provider")
}

func TestEnvProvider_NilWithoutKey(t *testing.T) {
	env := &oracleEnv{cfg: llm.Config{Provider: llm.ProviderOpenAI}}
	p, err := env.envProvider(t.Context())
	require.NoError(t, err)
	assert.Nil(t, p)

	env = &oracleEnv{cfg: llm.Config{Provider: llm.ProviderMock}}
	p, err = env.envProvider(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}

func TestController_UsesConnectorForTypedKey(t *testing.T) {
	env := &oracleEnv{cfg: llm.Config{Provider: llm.ProviderMock}}
	ctrl := env.controller(tutor.DefaultSettings(), nil)
	assert.False(t, ctrl.HasCredential())

	require.NoError(t, ctrl.SetCredential(t.Context(), "typed-key"))
	assert.True(t, ctrl.HasCredential())
}

func TestResolveDBPath(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv(store.EnvDBPath, "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	p, err := resolveDBPath(flagCmd(t))
	require.NoError(t, err)
	assert.Empty(t, p, "no log unless asked for")

	explicit := filepath.Join(t.TempDir(), "calls.db")
	p, err = resolveDBPath(flagCmd(t, "--db", explicit))
	require.NoError(t, err)
	assert.Equal(t, explicit, p)

	p, err = resolveDBPath(flagCmd(t, "--record"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "mathbuddy", "events.db"), p)

	p, err = eventLogPath(flagCmd(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "mathbuddy", "events.db"), p)
}

func TestPrintUsage(t *testing.T) {
	var out bytes.Buffer
	printUsage(&out,
		[]store.LLMUsageStats{
			{Purpose: "problem", Calls: 2, InputTokens: 100, OutputTokens: 40, AvgLatencyMs: 300},
			{Purpose: "check", Calls: 1, InputTokens: 50, OutputTokens: 10, AvgLatencyMs: 200},
		},
		[]store.ModelUsage{
			{Model: "gemini-2.0-flash", Calls: 2, InputTokens: 100, OutputTokens: 40},
			{Model: "homegrown-model", Calls: 1, InputTokens: 50, OutputTokens: 10},
		},
	)

	got := out.String()
	assert.Contains(t, got, "Usage by Action")
	assert.Contains(t, got, "TOTAL (partial)")
	assert.Contains(t, got, "Pricing unavailable for: homegrown-model")
}

func TestPrintUsage_Empty(t *testing.T) {
	var out bytes.Buffer
	printUsage(&out, nil, nil)
	assert.Equal(t, "No oracle usage recorded yet.\n", out.String())
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0012", formatCost(0.00123))
	assert.Equal(t, "$1.50", formatCost(1.5))
}
