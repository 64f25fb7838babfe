// ABOUTME: CLI commands for the settings document.
// ABOUTME: Shows, merges, and wipes config.json and reads or sets the theme.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/trainer/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"settings"},
	Short:   "Show or change settings",
	Long: `Show or change the settings document.

KEYS:

  theme          UI theme name (default superhero)
  metrics_port   integer port (default 8000, METRICS_PORT overrides)
  notifications  true or false (default true)
  sentry_dsn     optional error reporting DSN (SENTRY_DSN overrides)

Unknown keys are kept as they are.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings document as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := svc.Config()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		fmt.Println(string(data))

		if port := config.ResolvedMetricsPort(doc, env); port != doc.MetricsPort() {
			fmt.Println(color.New(color.Faint).Sprintf("metrics_port overridden by %s=%d", config.EnvMetricsPort, port))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value> | set <key=value>...",
	Short: "Merge values into the settings document",
	Long: `Merge values into the settings document. Values are read as YAML
scalars, so 8000 is a number and true is a boolean; quote them to keep a
string.

EXAMPLES:

  trainer config set notifications false
  trainer config set theme=darkly metrics_port=9100`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pairs map[string]string
		if len(args) == 2 && !strings.Contains(args[0], "=") {
			pairs = map[string]string{args[0]: args[1]}
		} else {
			var err error
			if pairs, err = parseAssignments(args); err != nil {
				return err
			}
		}

		partial := make(config.Document, len(pairs))
		for key, raw := range pairs {
			partial[key] = parseScalar(raw)
		}
		if _, err := svc.UpdateConfig(partial); err != nil {
			return fmt.Errorf("failed to update config: %w", err)
		}
		color.Green("✓ Updated %d key(s)", len(partial))
		return nil
	},
}

var configThemeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Print or set the UI theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			theme, err := svc.Theme()
			if err != nil {
				return fmt.Errorf("failed to load theme: %w", err)
			}
			fmt.Println(theme)
			return nil
		}
		if err := svc.SaveTheme(args[0]); err != nil {
			return fmt.Errorf("failed to save theme: %w", err)
		}
		color.Green("✓ Theme set to %s", strings.TrimSpace(args[0]))
		return nil
	},
}

var configWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete the settings file",
	Long: `Delete the settings file. Defaults are written again the next time
settings are read.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.WipeConfig(); err != nil {
			return fmt.Errorf("failed to delete config: %w", err)
		}
		color.Yellow("✗ Deleted %s", svc.ConfigPath())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(svc.ConfigPath())
	},
}

// parseScalar decodes raw as a YAML scalar, falling back to the raw string.
func parseScalar(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return raw
	}
	switch v.(type) {
	case string, int, float64, bool:
		return v
	}
	return raw
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configThemeCmd, configWipeCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
