package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"hyperlex/internal/config"
	"hyperlex/internal/driver"
)

// settings is the merged result of the config file and the command flags.
type settings struct {
	cfg   config.Config
	opts  driver.Options
	color colorMode
	ui    uiMode
}

// addParseFlags registers the flags that override the [parse] table.
func addParseFlags(fs *pflag.FlagSet) {
	fs.Int("max-depth", 256, "maximum mark nesting depth (0 = unlimited)")
	fs.String("hyper", "", "inline markup provider (markdown|none)")
	fs.Bool("stray-closers", false, "report closing marks that have no opener")
	fs.Bool("cache", false, "reuse parse results from the disk cache")
}

// loadSettings discovers the config for target and applies flag overrides.
// Only flags the user actually set take precedence over the file.
func loadSettings(cmd *cobra.Command, target string) (*settings, error) {
	root := cmd.Root().PersistentFlags()
	local := cmd.Flags()

	cfgPath, err := root.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	switch {
	case cfgPath != "":
		cfg, err = config.Load(cfgPath)
	case target == "-":
		cfg, err = config.Discover(".")
	default:
		cfg, err = config.Discover(target)
	}
	if err != nil {
		return nil, err
	}

	if local.Changed("max-depth") {
		if cfg.Parse.MaxDepth, err = local.GetInt("max-depth"); err != nil {
			return nil, err
		}
	}
	if local.Changed("hyper") {
		if cfg.Parse.Hyper, err = local.GetString("hyper"); err != nil {
			return nil, err
		}
	}
	if local.Changed("stray-closers") {
		if cfg.Parse.ReportStrayClosers, err = local.GetBool("stray-closers"); err != nil {
			return nil, err
		}
	}
	if local.Changed("cache") {
		if cfg.Cache.Enabled, err = local.GetBool("cache"); err != nil {
			return nil, err
		}
	}
	// diag has its own --format for diagnostics.
	if cmd.Name() == "tokenize" && local.Changed("format") {
		if cfg.Output.Format, err = local.GetString("format"); err != nil {
			return nil, err
		}
	}
	if root.Changed("max-diagnostics") {
		if cfg.Output.MaxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		if cfg.Path != "" {
			return nil, fmt.Errorf("%s: %w", cfg.Path, err)
		}
		return nil, err
	}

	st := &settings{cfg: cfg, opts: driver.OptionsFromConfig(&cfg)}
	if st.opts.Jobs, err = root.GetInt("jobs"); err != nil {
		return nil, err
	}
	if cfg.Cache.Enabled {
		dir, err := cfg.CacheDir()
		if err != nil {
			return nil, err
		}
		if st.opts.Cache, err = driver.OpenDiskCache(dir); err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
	}

	colorStr, err := root.GetString("color")
	if err != nil {
		return nil, err
	}
	if st.color, err = readColorMode(colorStr); err != nil {
		return nil, err
	}
	uiStr, err := root.GetString("ui")
	if err != nil {
		return nil, err
	}
	if st.ui, err = readUIMode(uiStr); err != nil {
		return nil, err
	}
	return st, nil
}

func (st *settings) stdoutColor() bool { return st.color.enabled(os.Stdout) }
func (st *settings) stderrColor() bool { return st.color.enabled(os.Stderr) }
