package cli

import (
	"fmt"
	"strconv"

	"github.com/shinyyama/message-board/internal/client"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		page     int
		pageSize int
		keyword  string
		sort     string
		replied  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel := apiClient(cmd)
			defer cancel()

			params := client.ListParams{Page: page, PageSize: pageSize, Keyword: keyword, Sort: sort}
			if replied != "" {
				v, err := strconv.ParseBool(replied)
				if err != nil {
					return fmt.Errorf("--replied must be true or false")
				}
				params.Replied = &v
			}
			list, err := c.ListMessages(ctx, params)
			if err != nil {
				return err
			}
			renderList(cmd.OutOrStdout(), list)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "limit", 10, "messages per page")
	cmd.Flags().StringVar(&keyword, "keyword", "", "filter by nickname, title or content")
	cmd.Flags().StringVar(&sort, "sort", "newest", "newest, oldest or mostLiked")
	cmd.Flags().StringVar(&replied, "replied", "", "only replied (true) or unreplied (false) messages")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one message with its replies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, ctx, cancel := apiClient(cmd)
			defer cancel()

			msg, err := c.GetMessage(ctx, id)
			if err != nil {
				return err
			}
			renderMessage(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func newPostCmd() *cobra.Command {
	var p client.CreateMessageParams
	var email string
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a new message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email != "" {
				p.Email = &email
			}
			c, ctx, cancel := apiClient(cmd)
			defer cancel()

			created, err := c.CreateMessage(ctx, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "posted message %d at %s\n", created.ID, created.CreatedAt)
			return nil
		},
	}
	cmd.Flags().StringVar(&p.Nickname, "nickname", "", "your nickname")
	cmd.Flags().StringVar(&p.Title, "title", "", "message title")
	cmd.Flags().StringVar(&p.Content, "content", "", "message body")
	cmd.Flags().StringVar(&email, "email", "", "optional contact email")
	return cmd
}

func newLikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like <id>",
		Short: "Like a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, ctx, cancel := apiClient(cmd)
			defer cancel()

			liked, err := c.LikeMessage(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "message %d now has %d likes\n", liked.ID, liked.Likes)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid message id %q", s)
	}
	return id, nil
}
