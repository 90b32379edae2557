package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameGuessCmd())
	cmd.AddCommand(newGameSayCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "start <conversation> [word]",
		Short: "Suggest a word and start a game in the conversation",
		Long: `Start a new game in the conversation with the given solution word.

Wordle games may omit the word, in which case one is picked at random.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"variant": variant}
			if len(args) == 2 {
				req["word"] = args[1]
			}

			var result Game
			if err := client.Post(cmd.Context(), conversationPath(args[0], "/game"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "hangman", "Game variant: hangman, wordle")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <conversation>",
		Short: "Get the conversation's current game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Get(cmd.Context(), conversationPath(args[0], "/game"), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <conversation> <guess>",
		Short: "Guess a letter (hangman) or a word (wordle)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"guess": args[1]}

			var result GuessResult
			if err := client.Post(cmd.Context(), conversationPath(args[0], "/game/guess"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameSayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "say <conversation> <text...>",
		Short: "Post a chat message; it counts as a guess if it looks like one",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"text": strings.Join(args[1:], " ")}

			var result MessageResult
			if err := client.Post(cmd.Context(), conversationPath(args[0], "/messages"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
