package cli

import (
	"context"
	"errors"
	"fmt"

	"rpas/internal/common"
	"rpas/internal/models"
)

func (a *App) Reviewers(ctx context.Context, args []string) error {
	var program string
	if len(args) > 0 {
		program = args[0]
	} else {
		p, err := GetSimpleText(a.reader, "Program", a.out)
		if err != nil {
			return err
		}
		program = p
	}

	reviewers, err := a.identity.ReviewersByProgram(ctx, models.Program(program))
	if err != nil {
		fmt.Fprintf(a.out, "Listing reviewers failed: %v\n", err)
		return err
	}

	if len(reviewers) == 0 {
		fmt.Fprintf(a.out, "No reviewers for program %q\n", program)
		return nil
	}
	for _, r := range reviewers {
		fmt.Fprintf(a.out, "%s\t%s\n", r.ID, r.Name)
	}
	return nil
}

// Enroll assigns the logged-in submitter to a program and a reviewer in that
// program.
func (a *App) Enroll(ctx context.Context, args []string) error {
	if a.user == nil || a.user.Role != models.RoleSubmitter {
		fmt.Fprintln(a.out, "Log in as a submitter first")
		return nil
	}

	var program, reviewerID string
	if len(args) >= 2 {
		program, reviewerID = args[0], args[1]
	} else {
		p, err := GetSimpleText(a.reader, "Program", a.out)
		if err != nil {
			return err
		}
		r, err := GetSimpleText(a.reader, "Reviewer id", a.out)
		if err != nil {
			return err
		}
		program, reviewerID = p, r
	}

	updated, err := a.identity.AssignProgramAndReviewer(ctx, a.user.ID, models.Program(program), reviewerID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrReviewerNotFound):
			fmt.Fprintf(a.out, "No reviewer %q\n", reviewerID)
		case errors.Is(err, common.ErrProgramMismatch):
			fmt.Fprintf(a.out, "Reviewer %s does not review program %q\n", reviewerID, program)
		default:
			fmt.Fprintf(a.out, "Enrollment failed: %v\n", err)
		}
		return err
	}

	a.user = updated
	fmt.Fprintf(a.out, "Enrolled in %s with reviewer %s\n", updated.Program, updated.AssignedReviewerID)
	return nil
}
