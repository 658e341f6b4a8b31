package cli

import (
	"context"
	"fmt"
	"strings"

	"rpas/internal/models"
)

func (a *App) List(ctx context.Context) error {
	if a.user == nil {
		fmt.Fprintln(a.out, "Log in first")
		return nil
	}

	var (
		subs []models.Submission
		err  error
	)
	if a.user.Role == models.RoleReviewer {
		subs, err = a.submissions.ForReviewer(ctx, a.user.ID)
	} else {
		subs, err = a.submissions.ForSubmitter(ctx, a.user.ID)
	}
	if err != nil {
		fmt.Fprintf(a.out, "Listing failed: %v\n", err)
		return err
	}

	if len(subs) == 0 {
		fmt.Fprintln(a.out, "No submissions")
		return nil
	}
	for _, s := range subs {
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\n",
			s.ID, s.Status, s.CreatedAt.Local().Format("2006-01-02 15:04"), firstLine(s.Description))
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
