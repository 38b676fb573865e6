package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathbuddy/internal/llm"
	"github.com/abhisek/mathbuddy/internal/session"
	"github.com/abhisek/mathbuddy/internal/store"
	"github.com/abhisek/mathbuddy/internal/tutor"
)

// oracleEnv is what every practice front end needs to reach the oracle:
// the resolved provider config and the optional call log.
type oracleEnv struct {
	cfg    llm.Config
	store  *store.Store
	events store.EventRepo
}

// openOracle resolves the oracle config from env and flags and opens the
// call log if one is configured.
func openOracle(cmd *cobra.Command) (*oracleEnv, error) {
	cfg, err := resolveLLMConfig(cmd)
	if err != nil {
		return nil, err
	}

	env := &oracleEnv{cfg: cfg}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	if dbPath != "" {
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		env.store = st
		env.events = st.EventRepo()
		slog.Info("recording oracle calls", "path", dbPath)
	}
	return env, nil
}

// resolveLLMConfig starts from the environment and applies --provider and
// --model. A missing key is fine here: students can type one in.
func resolveLLMConfig(cmd *cobra.Command) (llm.Config, error) {
	// On error the env config comes back without a key, which is fine.
	cfg, _ := llm.ResolveConfig()

	if p, _ := cmd.Flags().GetString("provider"); p != "" && p != cfg.Provider {
		cfg.Provider = p
		cfg = cfg.WithWellKnownKey()
	}
	if !llm.KnownProvider(cfg.Provider) {
		return cfg, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	model, _ := cmd.Flags().GetString("model")
	return cfg.WithModel(model), nil
}

func (o *oracleEnv) Close() error {
	if o.store == nil {
		return nil
	}
	return o.store.Close()
}

// connector builds providers for keys typed in by students.
func (o *oracleEnv) connector() session.Connector {
	return func(ctx context.Context, apiKey string) (llm.Provider, error) {
		return llm.NewProvider(ctx, o.cfg.WithAPIKey(apiKey), o.events)
	}
}

// envProvider returns a provider for the key found in the environment, or
// nil when there is none.
func (o *oracleEnv) envProvider(ctx context.Context) (llm.Provider, error) {
	if err := o.cfg.Validate(); err != nil {
		return nil, nil
	}
	return llm.NewProvider(ctx, o.cfg, o.events)
}

// controller creates a practice session. provider may be nil.
func (o *oracleEnv) controller(settings tutor.Settings, provider llm.Provider) *session.Controller {
	return session.New(session.Options{
		Settings:  settings,
		Connector: o.connector(),
		Provider:  provider,
		Timeout:   o.cfg.Timeout,
	})
}

// practiceSettings reads --grade, --type and --difficulty over the
// defaults.
func practiceSettings(cmd *cobra.Command) (tutor.Settings, error) {
	s := tutor.DefaultSettings()

	if v, _ := cmd.Flags().GetString("grade"); v != "" {
		g, err := tutor.ParseGradeLevel(v)
		if err != nil {
			return s, err
		}
		s.Grade = g
	}
	if v, _ := cmd.Flags().GetString("type"); v != "" {
		p, err := tutor.ParseProblemType(v)
		if err != nil {
			return s, err
		}
		s.ProblemType = p
	}
	if v, _ := cmd.Flags().GetString("difficulty"); v != "" {
		d, err := tutor.ParseDifficulty(v)
		if err != nil {
			return s, err
		}
		s.Difficulty = d
	}
	return s, nil
}
