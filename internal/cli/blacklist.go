package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/opbop/opbop/internal/prefs"
	"github.com/spf13/cobra"
)

// blacklistCmd represents the blacklist command
var blacklistCmd = &cobra.Command{
	Use:   "blacklist",
	Short: "Manage the blocked-source domain list",
	Long: `Manage the domain blacklist sent with every parse request. Blacklisted
sources are excluded from similar-article suggestions by the service.

Domains are plain hostnames like "opbop.com". Positions shown by
"blacklist list" are the deletion handles for "blacklist remove" and are
reassigned after every change.`,
}

var blacklistAddCmd = &cobra.Command{
	Use:   "add <domain>",
	Short: "Add a domain to the blacklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager := newBlacklistManager()

		err := manager.Add(context.Background(), args[0])
		switch {
		case errors.Is(err, prefs.ErrDuplicate):
			fmt.Printf("%q is already blacklisted\n", args[0])
			return nil
		case err != nil:
			return err
		}

		fmt.Printf("Blacklisted %q\n", args[0])
		return nil
	},
}

var blacklistRemoveCmd = &cobra.Command{
	Use:   "remove <position>",
	Short: "Remove the entry at a position shown by \"blacklist list\"",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("position must be a number, got %q", args[0])
		}

		manager := newBlacklistManager()
		if err := manager.Remove(context.Background(), position); err != nil {
			if errors.Is(err, prefs.ErrOutOfRange) {
				return fmt.Errorf("no entry at position %d; run \"opbop blacklist list\" and retry", position)
			}
			return err
		}

		fmt.Printf("Removed entry %d\n", position)
		return nil
	},
}

var blacklistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List blacklisted domains with their positions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager := newBlacklistManager()

		entries, err := manager.List(context.Background())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Blacklist is empty")
			return nil
		}

		for _, entry := range entries {
			fmt.Printf("%3d  %s\n", entry.Position, entry.Domain)
		}
		return nil
	},
}

func newBlacklistManager() *prefs.BlacklistManager {
	cfg := loadConfig()
	return prefs.NewBlacklistManager(prefs.NewFileStore(cfg.Prefs.Path))
}

func init() {
	rootCmd.AddCommand(blacklistCmd)
	blacklistCmd.AddCommand(blacklistAddCmd)
	blacklistCmd.AddCommand(blacklistRemoveCmd)
	blacklistCmd.AddCommand(blacklistListCmd)
}
