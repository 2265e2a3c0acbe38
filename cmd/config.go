package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/chikita/internal/clierr"
	"github.com/twiced-technology-gmbh/chikita/internal/clock"
	"github.com/twiced-technology-gmbh/chikita/internal/config"
	"github.com/twiced-technology-gmbh/chikita/internal/logx"
	"github.com/twiced-technology-gmbh/chikita/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Prints every setting of the data directory. Use "config get" to read one
key and "config set" to change it; store and location keys are read-only.`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:               "get KEY",
	Short:             "Print one setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeConfigKeys(false),
	RunE:              runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:               "set KEY VALUE",
	Short:             "Change one setting",
	Args:              cobra.ExactArgs(2), //nolint:mnd // key and value
	ValidArgsFunction: completeConfigKeys(true),
	RunE:              runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configKey is one addressable setting. A nil set makes it read-only.
type configKey struct {
	name string
	get  func(*config.Config) any
	set  func(*config.Config, string) error
}

func (k configKey) writable() bool { return k.set != nil }

// configKeys lists the settings in display order.
func configKeys() []configKey {
	return []configKey{
		{name: "version", get: func(c *config.Config) any { return c.Version }},
		{name: "dir", get: func(c *config.Config) any { return c.Dir() }},
		{name: "store.driver", get: func(c *config.Config) any { return c.Store.Driver }},
		{name: "store.path", get: func(c *config.Config) any { return c.StorePath() }},
		{
			name: "store.key",
			get:  func(c *config.Config) any { return c.StoreKey() },
			set:  setText(func(c *config.Config) *string { return &c.Store.Key }),
		},
		{
			name: "timer.default",
			get:  func(c *config.Config) any { return c.Timer.Default },
			set:  setDuration(func(c *config.Config) *string { return &c.Timer.Default }),
		},
		{
			name: "timer.alarm_interval",
			get:  func(c *config.Config) any { return c.Timer.AlarmInterval },
			set:  setDuration(func(c *config.Config) *string { return &c.Timer.AlarmInterval }),
		},
		{
			name: "timer.alarm_max_repeats",
			get:  func(c *config.Config) any { return c.Timer.AlarmMaxRepeats },
			set:  setCount(1, func(c *config.Config) *int { return &c.Timer.AlarmMaxRepeats }),
		},
		{
			name: "timer.presets",
			get:  func(c *config.Config) any { return c.Timer.Presets },
			set:  setPresets,
		},
		{
			name: "planner.minute_step",
			get:  func(c *config.Config) any { return c.Planner.MinuteStep },
			set:  setCount(1, func(c *config.Config) *int { return &c.Planner.MinuteStep }),
		},
		{
			name: "planner.default_start",
			get:  func(c *config.Config) any { return c.Planner.DefaultStart },
			set:  setClock(func(c *config.Config) *string { return &c.Planner.DefaultStart }),
		},
		{
			name: "planner.default_end",
			get:  func(c *config.Config) any { return c.Planner.DefaultEnd },
			set:  setClock(func(c *config.Config) *string { return &c.Planner.DefaultEnd }),
		},
		{
			name: "log.level",
			get:  func(c *config.Config) any { return c.Log.Level },
			set:  setLogLevel,
		},
		{
			name: "log.file",
			get:  func(c *config.Config) any { return c.Log.File },
			set:  setText(func(c *config.Config) *string { return &c.Log.File }),
		},
	}
}

func lookupConfigKey(name string) (configKey, error) {
	for _, k := range configKeys() {
		if k.name == name {
			return k, nil
		}
	}
	return configKey{}, clierr.Newf(clierr.InvalidInput, "unknown config key %q", name).
		WithDetails(map[string]any{"key": name})
}

func completeConfigKeys(writableOnly bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var names []string
		for _, k := range configKeys() {
			if !writableOnly || k.writable() {
				names = append(names, k.name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

func setText(field func(*config.Config) *string) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		*field(c) = strings.TrimSpace(v)
		return nil
	}
}

func setDuration(field func(*config.Config) *string) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		v = strings.TrimSpace(v)
		if _, err := config.ParseTimerDuration(v); err != nil {
			return clierr.Newf(clierr.InvalidInput, "invalid duration %q: %v", v, err)
		}
		*field(c) = v
		return nil
	}
}

func setClock(field func(*config.Config) *string) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		m, err := clock.Parse(v)
		if err != nil {
			return clierr.New(clierr.InvalidTime, err.Error())
		}
		*field(c) = clock.Format24(m)
		return nil
	}
}

func setCount(minimum int, field func(*config.Config) *int) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < minimum {
			return clierr.Newf(clierr.InvalidInput, "invalid count %q (want an integer >= %d)", v, minimum)
		}
		*field(c) = n
		return nil
	}
}

func setPresets(c *config.Config, v string) error {
	var presets []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		if _, err := config.ParseTimerDuration(p); err != nil {
			return clierr.Newf(clierr.InvalidInput, "invalid preset %q: %v", p, err)
		}
		presets = append(presets, p)
	}
	c.Timer.Presets = presets
	return nil
}

func setLogLevel(c *config.Config, v string) error {
	if _, err := logx.ParseLevel(v); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(v))
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	keys := configKeys()

	if outputFormat() == output.FormatJSON {
		values := make(map[string]any, len(keys))
		for _, k := range keys {
			values[k.name] = k.get(cfg)
		}
		return output.JSON(os.Stdout, values)
	}
	for _, k := range keys {
		fmt.Fprintf(os.Stdout, "%-24s %s\n", k.name, formatConfigValue(k.get(cfg)))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	k, err := lookupConfigKey(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, k.get(cfg))
	}
	fmt.Fprintln(os.Stdout, formatConfigValue(k.get(cfg)))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	k, err := lookupConfigKey(args[0])
	if err != nil {
		return err
	}
	if !k.writable() {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", k.name)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := k.set(cfg, args[1]); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": k.name, "value": k.get(cfg)})
	}
	output.Messagef(os.Stdout, "%s is now %s", k.name, formatConfigValue(k.get(cfg)))
	return nil
}

// formatConfigValue renders unset values as "--".
func formatConfigValue(val any) string {
	switch v := val.(type) {
	case []string:
		if len(v) > 0 {
			return strings.Join(v, ", ")
		}
	case string:
		if v != "" {
			return v
		}
	default:
		return fmt.Sprint(v)
	}
	return "--"
}
