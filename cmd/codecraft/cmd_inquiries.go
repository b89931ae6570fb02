package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/codecraft/backend/internal/model"
	"github.com/spf13/cobra"
)

func newInquiriesCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inquiries",
		Aliases: []string{"inq"},
		Short:   "Manage contact inquiries",
	}
	cmd.AddCommand(
		newInquiriesListCmd(current),
		newInquiriesDeleteCmd(current),
		newInquiriesReadCmd(current),
		newInquiriesSubmitCmd(current),
	)
	return cmd
}

func newInquiriesListCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List remote and locally stored inquiries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			if err := requireAdmin(a); err != nil {
				return err
			}
			items, err := a.inquiries.List(cmd.Context())
			if err != nil {
				if len(items) == 0 {
					return fmt.Errorf("list inquiries: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: remote store unavailable, showing local entries only: %v\n", err)
			}
			printInquiries(cmd.OutOrStdout(), items)
			return nil
		},
	}
}

func printInquiries(w io.Writer, items []*model.Inquiry) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no inquiries")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tCREATED\tNAME\tEMAIL\tMESSAGE")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.Status, it.CreatedAt.Local().Format("2006-01-02 15:04"), it.Name, it.Email, truncate(it.Message, 40))
	}
	_ = tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func newInquiriesDeleteCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete inquiries from whichever store holds them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			if err := requireAdmin(a); err != nil {
				return err
			}
			for _, id := range args {
				if err := a.inquiries.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete %s: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			}
			return nil
		},
	}
}

func newInquiriesReadCmd(current func() *app) *cobra.Command {
	var unread bool
	cmd := &cobra.Command{
		Use:   "read <id>",
		Short: "Mark an inquiry as read (or unread with --unread)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			if err := requireAdmin(a); err != nil {
				return err
			}
			status := model.InquiryRead
			if unread {
				status = model.InquiryUnread
			}
			if err := a.inquiries.SetStatus(cmd.Context(), args[0], status); err != nil {
				return fmt.Errorf("set status: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s marked %s\n", args[0], status)
			return nil
		},
	}
	cmd.Flags().BoolVar(&unread, "unread", false, "mark as unread instead")
	return cmd
}

func newInquiriesSubmitCmd(current func() *app) *cobra.Command {
	var in model.InquiryInput
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit an inquiry as a visitor would",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Normalize()
			stored := current().inquiries.Submit(cmd.Context(), in)
			if stored == nil {
				return fmt.Errorf("inquiry could not be stored")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "submitted %s\n", stored.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "sender name")
	cmd.Flags().StringVar(&in.Email, "email", "", "sender email")
	cmd.Flags().StringVar(&in.Message, "message", "", "message body")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}
