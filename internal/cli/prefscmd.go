package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/opbop/opbop/internal/model"
	"github.com/opbop/opbop/internal/prefs"
	"github.com/spf13/cobra"
)

// prefsCmd represents the prefs command
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show and change display preferences",
	Long: `Show and change the preferences that govern what parse displays:

  filterLevel                    0, 1 or 2 (see "prefs show")
  enableSimilarArticleFiltering  true/false
  articleRangeBefore             date, YYYY-MM-DD
  articleRangeAfter              date, YYYY-MM-DD
  censorImages                   true/false
  disableReliabilityWarning      true/false

The blacklist has its own command, "opbop blacklist".`,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		manager := newPrefsManager()
		if err := manager.EnsureDefaults(ctx); err != nil {
			return err
		}

		p, err := manager.Load(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("filterLevel:                    %d\n", p.FilterLevel)
		fmt.Printf("  %s\n", model.FilterLevelDescription(p.FilterLevel))
		fmt.Printf("enableSimilarArticleFiltering:  %t\n", p.EnableSimilarArticleFiltering)
		fmt.Printf("articleRangeBefore:             %s\n", orUnset(p.ArticleRangeBefore))
		fmt.Printf("articleRangeAfter:              %s\n", orUnset(p.ArticleRangeAfter))
		fmt.Printf("censorImages:                   %t\n", p.CensorImages)
		fmt.Printf("disableReliabilityWarning:      %t\n", p.DisableReliabilityWarning)
		fmt.Printf("blackList:                      %d domain(s), see \"opbop blacklist list\"\n", len(p.BlackList))
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one preference",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		ctx := context.Background()

		manager := newPrefsManager()
		if err := manager.EnsureDefaults(ctx); err != nil {
			return err
		}
		p, err := manager.Load(ctx)
		if err != nil {
			return err
		}

		if err := applyPreference(&p, key, value); err != nil {
			return err
		}
		if err := manager.Save(ctx, p); err != nil {
			return err
		}

		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all preferences to their defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager := newPrefsManager()
		if err := manager.Reset(context.Background()); err != nil {
			return err
		}
		fmt.Println("Preferences reset to defaults (blacklist cleared)")
		return nil
	},
}

func applyPreference(p *model.Preferences, key, value string) error {
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		return b, nil
	}
	parseDate := func() (string, error) {
		if value == "" {
			return "", nil
		}
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return "", fmt.Errorf("%s expects a date like 2024-01-31, got %q", key, value)
		}
		return value, nil
	}

	var err error
	switch key {
	case model.KeyFilterLevel:
		level, convErr := strconv.Atoi(value)
		if convErr != nil || level < model.FilterBlockUnsafe || level > model.FilterNone {
			return fmt.Errorf("filterLevel must be 0, 1 or 2, got %q", value)
		}
		p.FilterLevel = level
	case model.KeyEnableSimilarArticleFiltering:
		p.EnableSimilarArticleFiltering, err = parseBool()
	case model.KeyArticleRangeBefore:
		p.ArticleRangeBefore, err = parseDate()
	case model.KeyArticleRangeAfter:
		p.ArticleRangeAfter, err = parseDate()
	case model.KeyCensorImages:
		p.CensorImages, err = parseBool()
	case model.KeyDisableReliabilityWarning:
		p.DisableReliabilityWarning, err = parseBool()
	case model.KeyBlackList:
		return fmt.Errorf("use \"opbop blacklist add/remove\" to change the blacklist")
	default:
		return fmt.Errorf("unknown preference %q (known: %s)", key, strings.Join(model.PreferenceKeys, ", "))
	}
	return err
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func newPrefsManager() *prefs.Manager {
	cfg := loadConfig()
	return prefs.NewManager(prefs.NewFileStore(cfg.Prefs.Path))
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsResetCmd)
}
