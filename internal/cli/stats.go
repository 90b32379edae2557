package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [player]",
		Short: "Show a player's stats (defaults to --player)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player := cfg.Player
			if len(args) == 1 {
				player = args[0]
			}
			if player == "" {
				return ErrNoPlayer
			}

			var result PlayerStats
			if err := client.Get(cmd.Context(), "/api/v1/players/"+url.PathEscape(player)+"/stats", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Leaderboard
			if err := client.Get(cmd.Context(), "/api/v1/leaderboard", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
