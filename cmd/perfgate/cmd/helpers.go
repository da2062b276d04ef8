package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/perfgate/perfgate/pkg/canonical"
	"github.com/perfgate/perfgate/pkg/config"
	"github.com/perfgate/perfgate/pkg/form"
	"github.com/perfgate/perfgate/pkg/logger"
	"github.com/perfgate/perfgate/pkg/preset"
	"github.com/perfgate/perfgate/pkg/refconfig"
	"github.com/perfgate/perfgate/pkg/token"
	"github.com/perfgate/perfgate/pkg/validation"
)

// loadReference resolves the reference configuration from the --ref-config
// flag, the config file, or the default location in the tool config dir.
func loadReference(ctx context.Context) (*refconfig.Config, error) {
	src := refConfigSrc
	if src == "" {
		src = viper.GetString("reference_config")
	}
	if src == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		src = filepath.Join(dir, "reference.json")
	}

	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return refconfig.NewFetcher(nil).Fetch(ctx, src)
	}
	return refconfig.LoadFile(src)
}

// tokenStore returns the credential store: an env-var backend when
// token_env is configured, the file backend otherwise.
func tokenStore() (token.Store, error) {
	if envVar := viper.GetString("token_env"); envVar != "" {
		return token.NewEnvStore(envVar), nil
	}
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return token.NewFileStore(filepath.Join(dir, "token.json")), nil
}

// resolveToken returns the credential for an environment, preferring the
// environment's own token variable over the stored token.
func resolveToken(env *config.Environment) (string, error) {
	if env != nil && env.TokenEnv != "" {
		if t := os.Getenv(env.TokenEnv); t != "" {
			return t, nil
		}
	}
	store, err := tokenStore()
	if err != nil {
		return "", err
	}
	return store.Token()
}

// presetStore opens the preset store over the file backend in the tool
// config dir.
func presetStore() (*preset.Store, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return preset.NewStore(preset.NewFileBackend(filepath.Join(dir, "storage"))), nil
}

// gatherInput collects the flat form input, either from a named preset or
// by running the interactive form. The reference config is returned when
// it was loaded; it is nil on the preset path.
func gatherInput(ctx context.Context, presetName string) (form.Input, *refconfig.Config, error) {
	if presetName != "" {
		store, err := presetStore()
		if err != nil {
			return form.Input{}, nil, err
		}
		p, ok, err := store.Get(presetName)
		if err != nil {
			return form.Input{}, nil, err
		}
		if !ok {
			return form.Input{}, nil, fmt.Errorf("preset %q not found", presetName)
		}
		return form.Input{
			Selections:   p.Config.Selections,
			LoadData:     p.Config.LoadData,
			ScenarioData: p.Config.ScenarioData,
			Environment:  configuredEnvironment(p.Config.Selections.Environment),
		}, nil, nil
	}

	ref, err := loadReference(ctx)
	if err != nil {
		return form.Input{}, nil, fmt.Errorf("failed to load reference config: %w", err)
	}

	envCfg, err := config.LoadEnvironments()
	if err != nil {
		return form.Input{}, nil, fmt.Errorf("failed to load environments: %w", err)
	}

	in, err := form.New(ref).WithEnvironments(envCfg.Environments, envCfg.Selected).Run()
	if err != nil {
		return form.Input{}, nil, err
	}

	// remember the configured environment for the next run
	if in.Environment != nil && envCfg.Selected != in.Environment.Name {
		envCfg.Selected = in.Environment.Name
		if err := config.SaveEnvironments(envCfg); err != nil {
			logger.Warnf("failed to remember environment selection: %v", err)
		}
	}

	return in, ref, nil
}

// configuredEnvironment returns the named environment from the tool config,
// nil when it is not configured.
func configuredEnvironment(name string) *config.Environment {
	if name == "" {
		return nil
	}
	cfg, err := config.LoadEnvironments()
	if err != nil {
		return nil
	}
	return findEnvironment(cfg, name)
}

// selectedEnvironment returns the remembered environment selection, nil
// when none is remembered.
func selectedEnvironment() *config.Environment {
	cfg, err := config.LoadEnvironments()
	if err != nil || cfg.Selected == "" {
		return nil
	}
	return findEnvironment(cfg, cfg.Selected)
}

func findEnvironment(cfg *config.Config, name string) *config.Environment {
	for i := range cfg.Environments {
		if cfg.Environments[i].Name == name {
			return &cfg.Environments[i]
		}
	}
	return nil
}

// buildDocument maps the form input into a validated canonical document.
func buildDocument(in form.Input, ref *refconfig.Config) (*canonical.Document, error) {
	if violations := validation.ValidateLoadConfig(in.LoadData); len(violations) > 0 {
		return nil, fmt.Errorf("load configuration invalid: %s", strings.Join(violations, "; "))
	}

	var lookup canonical.ReferenceLookup
	if ref != nil {
		lookup = ref
	}
	doc := canonical.ToCanonical(in.Selections, in.LoadData, in.ScenarioData, lookup)

	if result := canonical.Validate(doc); !result.Valid {
		return nil, fmt.Errorf("configuration incomplete: %s", strings.Join(result.Errors, "; "))
	}
	return doc, nil
}
