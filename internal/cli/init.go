package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInitCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize randomizer storage",
		Long: "Create the configuration and data directories, record the selected\n" +
			"backend in config.yaml, and create an empty store if none exists.",
		Args: cobra.NoArgs,
		RunE: s.runInit,
	}
}

func (s *session) runInit(cmd *cobra.Command, _ []string) error {
	configPath := filepath.Join(s.configDir, configFileExt)
	if err := s.writeConfig(configPath); err != nil {
		return systemError(fmt.Errorf("write config: %w", err))
	}

	// A store that already holds tables is left as is.
	if s.pool.IsEmpty() {
		if err := s.pool.Save(); err != nil {
			return err
		}
	}

	if s.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), map[string]string{
			"config":  configPath,
			"backend": s.cfg.Backend,
			"data":    s.cfg.DataDir,
		})
	}
	s.out.Success("Randomizer initialized (%s store in %s)", s.cfg.Backend, s.cfg.DataDir)
	return nil
}

// writeConfig records the effective backend in config.yaml. The data
// directory is recorded only when it came from a flag or was already set,
// so platform defaults stay implicit.
func (s *session) writeConfig(path string) error {
	cfg := s.configured
	cfg.Backend = s.cfg.Backend
	if s.flags.dataDir != "" {
		cfg.DataDir = s.cfg.DataDir
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
