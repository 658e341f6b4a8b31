package cli

import (
	"context"
	"errors"
	"fmt"

	"rpas/internal/common"
	"rpas/internal/models"
)

func (a *App) Show(ctx context.Context, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		s, err := GetSimpleText(a.reader, "Submission id", a.out)
		if err != nil {
			return err
		}
		id = s
	}

	sub, err := a.submissions.ByID(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Lookup failed: %v\n", err)
		return err
	}
	if sub == nil {
		fmt.Fprintf(a.out, "No submission %q\n", id)
		return nil
	}

	fmt.Fprintf(a.out, "Submission %s (%s)\n", sub.ID, sub.Status)
	fmt.Fprintf(a.out, "Submitter: %s  Reviewer: %s  Program: %s\n", sub.SubmitterID, sub.ReviewerID, sub.Program)
	fmt.Fprintf(a.out, "Created: %s\n", sub.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(a.out, "Description:\n%s\n", sub.Description)
	for _, f := range sub.Files {
		if info, err := a.files.Stat(f.Locator); err == nil && info.Exists {
			fmt.Fprintf(a.out, "File: %s (%d bytes) %s\n", f.Name, info.Size, f.Locator)
		} else {
			fmt.Fprintf(a.out, "File: %s %s\n", f.Name, f.Locator)
		}
	}
	if sub.ReviewDecision != "" && sub.ReviewedAt != nil {
		fmt.Fprintf(a.out, "Decision: %s at %s\n%s\n",
			sub.ReviewDecision, sub.ReviewedAt.Local().Format("2006-01-02 15:04"), sub.ReviewComments)
	}
	return nil
}

// Review records a decision on a submission. Reviewing again overwrites the
// previous decision.
func (a *App) Review(ctx context.Context, args []string) error {
	if a.user == nil || a.user.Role != models.RoleReviewer {
		fmt.Fprintln(a.out, "Log in as a reviewer first")
		return nil
	}

	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		s, err := GetSimpleText(a.reader, "Submission id", a.out)
		if err != nil {
			return err
		}
		id = s
	}

	verdict, err := GetSimpleText(a.reader, "Decision (approve/changes)", a.out)
	if err != nil {
		return err
	}
	var decision models.Decision
	switch verdict {
	case "approve", "approved":
		decision = models.DecisionApproved
	case "changes", "changes_requested":
		decision = models.DecisionChangesRequested
	default:
		fmt.Fprintf(a.out, "Unknown decision %q\n", verdict)
		return nil
	}

	comments, err := GetMultiline(a.reader, "Comments", a.out)
	if err != nil {
		return err
	}

	sub, err := a.submissions.RecordReview(ctx, id, a.user.ID, decision, comments)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrSubmissionNotFound):
			fmt.Fprintf(a.out, "No submission %q\n", id)
		case errors.Is(err, common.ErrNotAuthorized):
			fmt.Fprintln(a.out, "This submission is assigned to another reviewer")
		default:
			fmt.Fprintf(a.out, "Review failed: %v\n", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Recorded %s on %s\n", sub.ReviewDecision, sub.ID)
	return nil
}
