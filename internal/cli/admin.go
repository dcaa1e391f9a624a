package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as admin and print the admin token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			c, ctx, cancel := apiClient(cmd)
			defer cancel()

			token, err := c.AdminLogin(ctx, username, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "admin", "admin username")
	return cmd
}

func newReplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reply <id> <text>",
		Short: "Append an admin reply to a message",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, ctx, cancel := apiClient(cmd)
			defer cancel()

			res, err := c.ReplyMessage(ctx, id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "replied to message %d at %s\n", res.ID, res.RepliedAt)
			return nil
		},
	}
}

func newDraftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draft <id>",
		Short: "Ask the server for a suggested admin reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, ctx, cancel := apiClient(cmd)
			defer cancel()

			d, err := c.DraftReply(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.Draft)
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a message permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, ctx, cancel := apiClient(cmd)
			defer cancel()

			if err := c.DeleteMessage(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted message %d\n", id)
			return nil
		},
	}
}

// readPassword prefers BOARD_PASSWORD, then a hidden terminal prompt, then
// a plain line from stdin when stdin is not a terminal.
func readPassword(cmd *cobra.Command) (string, error) {
	if pw := os.Getenv("BOARD_PASSWORD"); pw != "" {
		return pw, nil
	}
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
