package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shinyyama/message-board/internal/client"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Terminal front end for the message board",
		Long: `board lists, shows and posts messages against a running board API.
Admin commands (reply, draft, delete) need the token printed by "board login",
passed with --token or BOARD_TOKEN.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.PersistentFlags().String("server", envOr("BOARD_SERVER", "http://localhost:3000"), "board API base URL")
	cmd.PersistentFlags().String("token", os.Getenv("BOARD_TOKEN"), "admin token")
	cmd.PersistentFlags().Duration("timeout", 10*time.Second, "request timeout")

	cmd.AddCommand(
		newListCmd(),
		newShowCmd(),
		newPostCmd(),
		newLikeCmd(),
		newLoginCmd(),
		newReplyCmd(),
		newDraftCmd(),
		newDeleteCmd(),
	)
	return cmd
}

// Execute runs the root command; called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// apiClient builds a client from the persistent flags and a context bounded
// by --timeout.
func apiClient(cmd *cobra.Command) (*client.Client, context.Context, context.CancelFunc) {
	server, _ := cmd.Flags().GetString("server")
	token, _ := cmd.Flags().GetString("token")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	c := client.New(server, nil)
	c.SetToken(token)
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	return c, ctx, cancel
}
