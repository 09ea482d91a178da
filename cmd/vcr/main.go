package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"vcr-go/internal/app"
	"vcr-go/internal/config"
	"vcr-go/internal/renamer"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when none exists.
func loadConfig() (*config.Config, string, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, "", fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.Load(defaults.ConfigPath, defaults.BaseDir)
	if err != nil {
		return nil, "", fmt.Errorf("reading config: %w", err)
	}
	return cfg, defaults.ConfigPath, nil
}

// newApp reads the config and creates a VCRApp. The caller must defer app.Close().
func newApp(cmd *cobra.Command) (*app.VCRApp, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	a, err := app.NewVCRApp(cfg, app.Options{Console: os.Stderr, Verbose: verbose})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// requestFromFlags builds a Request from the flags added by addRunFlags.
func requestFromFlags(cmd *cobra.Command) *app.Request {
	dir, _ := cmd.Flags().GetString("directory")
	platform, _ := cmd.Flags().GetString("platform")
	enable, _ := cmd.Flags().GetStringSlice("enable")
	disable, _ := cmd.Flags().GetStringSlice("disable")
	return &app.Request{Root: dir, Platform: platform, Enable: enable, Disable: disable}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("directory", "d", "", "Course directory to rename")
	cmd.Flags().StringP("platform", "p", "", "Platform the course was downloaded from")
	cmd.Flags().StringSlice("enable", nil, "Enable a rename rule (repeatable)")
	cmd.Flags().StringSlice("disable", nil, "Disable a rename rule (repeatable)")
	cmd.MarkFlagRequired("directory")
	cmd.MarkFlagRequired("platform")
}

var rootCmd = &cobra.Command{
	Use:   "vcr -d DIRECTORY -p PLATFORM",
	Short: "Clean up the names of downloaded video courses",
	Long: `vcr renames a downloaded course tree in place: it strips leftover
numeric prefixes, renames cover images and tags the top-level folders
with the platform name.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		run, err := a.Run(requestFromFlags(cmd))
		if err != nil {
			return fmt.Errorf("rename failed: %w", err)
		}

		fmt.Printf("Renamed %d entries (run %s)\n", run.Renames, run.ID)
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan -d DIRECTORY -p PLATFORM",
	Short: "Show the renames a run would make",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		plan, err := a.Plan(requestFromFlags(cmd))
		if err != nil {
			return err
		}

		if plan.Len() == 0 {
			fmt.Println("Nothing to rename.")
			return nil
		}

		for _, op := range plan.Operations {
			from, err := filepath.Rel(plan.Root, op.From)
			if err != nil {
				from = op.From
			}
			fmt.Printf("%-16s %s -> %s\n", op.Rule, from, filepath.Base(op.To))
		}
		fmt.Printf("%d rename(s)\n", plan.Len())
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View past runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		runs, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		for _, run := range runs {
			fmt.Println(formatRun(run))
		}
		return nil
	},
}

func formatRun(run *renamer.Run) string {
	duration := ""
	if run.FinishedAt.Valid {
		duration = run.FinishedAt.Time.Sub(run.StartedAt).Truncate(time.Millisecond).String()
	}
	return fmt.Sprintf("%s  %s  %-8s  %-12s  %4d  %-8s  %s",
		run.ID,
		run.StartedAt.Local().Format("2006-01-02 15:04:05"),
		run.Status,
		run.Platform,
		run.Renames,
		duration,
		run.Root,
	)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults.BaseDir)
		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("Base Dir: %s\n", defaults.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration from %s:\n\n", path)
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:  %s\n", cfg.LogDir)
		fmt.Printf("History:  %s %s\n", cfg.History.Type, cfg.History.DataDir)

		fmt.Println("\nPlatforms:")
		names := make([]string, 0, len(cfg.Platforms))
		for name := range cfg.Platforms {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-12s %q\n", name, cfg.Platforms[name])
		}

		fmt.Println("\nRules:")
		fmt.Printf("  %-16s %t\n", renamer.RuleStripPrefix, cfg.Rules.StripPrefix)
		fmt.Printf("  %-16s %t\n", renamer.RuleIncreaseIndex, cfg.Rules.IncreaseIndex)
		fmt.Printf("  %-16s %t\n", renamer.RuleReplaceImage, cfg.Rules.ReplaceImage)
		fmt.Printf("  %-16s %t\n", renamer.RuleCleanName, cfg.Rules.CleanName)
		fmt.Printf("  %-16s %t\n", renamer.RuleAppendPlatform, cfg.Rules.AppendPlatform)

		if len(cfg.Filesystem.Ignore) > 0 {
			fmt.Println("\nIgnore:")
			for _, p := range cfg.Filesystem.Ignore {
				fmt.Printf("  %s\n", p)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log planning decisions")
	addRunFlags(rootCmd)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	rootCmd.AddCommand(planCmd)
	addRunFlags(planCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(configCmd)
}
