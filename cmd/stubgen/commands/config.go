package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/stubgen/config"
	"github.com/teranos/stubgen/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stubgen configuration",
	Long: `Display and manage stubgen configuration settings.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (STUBGEN_* prefix)
3. Project config (nearest stubgen.toml, searching up directories)
4. User config (~/.stubgen/config.toml)
5. System config (/etc/stubgen/config.toml)
6. Default values

Examples:
  stubgen config show                        # Show current configuration
  stubgen config show --sources              # Show where each value came from
  stubgen config get export.on_error         # Get specific config value
  stubgen config set batch.workers 8         # Write to ./stubgen.toml
  stubgen config init --user                 # Create ~/.stubgen/config.toml`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., export.on_error, batch.workers)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value in a config file",
	Long: `Set one setting in the project config (./stubgen.toml by default, or
the nearest one found walking up) or, with --user, in ~/.stubgen/config.toml.
The previous file is kept as a .back1 backup.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runConfigValidate,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE:  runConfigInit,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	RunE:  runConfigWhere,
}

var (
	configFormat  string
	configSources bool
	configUser    bool
	configForce   bool
)

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	configShowCmd.Flags().BoolVar(&configSources, "sources", false, "Show the source of every setting")
	configSetCmd.Flags().BoolVar(&configUser, "user", false, "Write to the user config instead of the project config")
	configInitCmd.Flags().BoolVar(&configUser, "user", false, "Create the user config instead of ./stubgen.toml")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file (a backup is kept)")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configSetCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configWhereCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if configSources {
		return showSources(w)
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	return writeConfig(w, cfg, configFormat)
}

func writeConfig(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		_, _ = fmt.Fprintln(w, string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		_, _ = fmt.Fprintf(w, "# stubgen configuration\n%s", data)

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		_, _ = fmt.Fprintf(w, "# stubgen configuration\n%s", data)

	default:
		return errors.WithHint(
			errors.NewInvalidRequestError("unsupported format: %s", format),
			"supported formats: toml, json, yaml")
	}
	return nil
}

func showSources(w io.Writer) error {
	intro, err := config.GetIntrospection()
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"Key", "Value", "Source", "From"})
	for _, s := range intro.Settings {
		t.AppendRow(table.Row{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
	}
	t.Render()
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	value, err := cfg.Lookup(args[0])
	if err != nil {
		return errors.WithHint(err, "run stubgen config show to list the settings")
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := targetConfigPath()
	if err != nil {
		return err
	}

	if err := checkSetting(path, args[0], args[1]); err != nil {
		return err
	}
	if err := config.UpdateSetting(path, args[0], args[1]); err != nil {
		return err
	}

	config.Reset()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s (%s)\n", pterm.Green("✓"), args[0], args[1], path)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration is valid\n", pterm.Green("✓"))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectFileName
	if configUser {
		path = config.UserConfigPath()
		if path == "" {
			return errors.New("no home directory for the user config")
		}
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return errors.WithHint(
			errors.Newf("%s already exists", path),
			"pass --force to overwrite it")
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", pterm.Green("✓"), path)
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(w, "Configuration cascade (later overrides earlier):")
	_, _ = fmt.Fprintln(w, "  [DEFAULT]  Built-in defaults")
	for _, path := range config.ConfigFiles() {
		status := pterm.Gray("missing")
		if _, err := os.Stat(path); err == nil {
			status = pterm.Green("found")
		}
		_, _ = fmt.Fprintf(w, "  %-10s %s (%s)\n", sourceLabel(path), path, status)
	}
	_, _ = fmt.Fprintf(w, "  [ENV]      %s_* environment variables\n", config.EnvPrefix)
	return nil
}

func sourceLabel(path string) string {
	switch path {
	case config.SystemPath:
		return "[SYSTEM]"
	case config.UserConfigPath():
		return "[USER]"
	}
	return "[PROJECT]"
}

// targetConfigPath picks the file config set writes to
func targetConfigPath() (string, error) {
	if configUser {
		path := config.UserConfigPath()
		if path == "" {
			return "", errors.New("no home directory for the user config")
		}
		return path, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get working directory")
	}
	if project := config.FindProjectConfig(wd); project != "" {
		return project, nil
	}
	return config.ProjectFileName, nil
}

// checkSetting applies the update to a scratch copy of path and validates
// the result, leaving path untouched
func checkSetting(path, key, value string) error {
	scratch, err := os.MkdirTemp("", "stubgen-config-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(scratch)

	copyPath := filepath.Join(scratch, config.ProjectFileName)
	if data, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(copyPath, data, config.DefaultFilePermissions); err != nil {
			return errors.Wrap(err, "failed to copy config")
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	if err := config.UpdateSetting(copyPath, key, value); err != nil {
		return err
	}
	updated, err := config.LoadFromFile(copyPath)
	if err != nil {
		return err
	}
	if err := updated.Validate(); err != nil {
		return errors.Wrapf(err, "invalid setting %s = %s", key, value)
	}
	return nil
}
