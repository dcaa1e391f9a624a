package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shinyyama/message-board/internal/client"
)

const previewRunes = 40

func renderList(w io.Writer, list *client.MessageList) {
	pages := 1
	if list.PageSize > 0 && list.Total > 0 {
		pages = (list.Total + list.PageSize - 1) / list.PageSize
	}
	fmt.Fprintf(w, "page %d/%d, %d messages\n", list.Page, pages, list.Total)
	if len(list.Items) == 0 {
		fmt.Fprintln(w, "no messages")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNICKNAME\tTITLE\tLIKES\tREPLIED\tCREATED")
	for _, m := range list.Items {
		replied := "no"
		if len(m.Reply) > 0 {
			replied = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n", m.ID, m.Nickname, preview(m.Title), m.Likes, replied, m.CreatedAt)
	}
	tw.Flush()
}

func renderMessage(w io.Writer, m *client.Message) {
	fmt.Fprintf(w, "#%d %s\n", m.ID, m.Title)
	fmt.Fprintf(w, "by %s", m.Nickname)
	if m.Email != nil {
		fmt.Fprintf(w, " <%s>", *m.Email)
	}
	fmt.Fprintf(w, " at %s, %d likes\n\n", m.CreatedAt, m.Likes)
	fmt.Fprintln(w, m.Content)
	if len(m.Reply) == 0 {
		return
	}
	fmt.Fprintln(w)
	when := ""
	if m.RepliedAt != nil {
		when = " (last " + *m.RepliedAt + ")"
	}
	fmt.Fprintf(w, "admin replies%s:\n", when)
	for _, r := range m.Reply {
		fmt.Fprintf(w, "  > %s\n", r)
	}
}

func preview(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= previewRunes {
		return s
	}
	return string(runes[:previewRunes-3]) + "..."
}
