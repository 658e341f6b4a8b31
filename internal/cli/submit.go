package cli

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"

	"rpas/internal/models"
	"rpas/internal/submissions"
)

// collectParams gathers description and attachments for a new submission or
// draft. Each attachment is materialized immediately, so the returned params
// carry stable locators.
func (a *App) collectParams(ctx context.Context) (submissions.Params, bool, error) {
	p := submissions.Params{
		SubmitterID: a.user.ID,
		ReviewerID:  a.user.AssignedReviewerID,
		Program:     a.user.Program,
	}

	if p.ReviewerID == "" || p.Program == "" {
		fmt.Fprintln(a.out, "Enroll in a program first (see 'enroll')")
		return p, false, nil
	}

	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return p, false, err
	}
	p.Description = description

	for {
		path, err := GetSimpleText(a.reader, "File to attach (empty to finish)", a.out)
		if err != nil {
			return p, false, err
		}
		if path == "" {
			break
		}

		locator, err := a.files.Materialize(ctx, path, filepath.Base(path))
		if err != nil {
			fmt.Fprintf(a.out, "Attach failed: %v\n", err)
			continue
		}

		ref := models.FileRef{
			Name:     filepath.Base(path),
			MimeType: mime.TypeByExtension(filepath.Ext(path)),
			Locator:  locator,
		}
		if info, err := a.files.Stat(locator); err == nil && info.Exists {
			size := info.Size
			ref.Size = &size
		}

		p.Files = append(p.Files, ref)
		fmt.Fprintf(a.out, "Attached %s\n", ref.Name)
	}

	return p, true, nil
}

func (a *App) Submit(ctx context.Context) error {
	if a.user == nil || a.user.Role != models.RoleSubmitter {
		fmt.Fprintln(a.out, "Log in as a submitter first")
		return nil
	}

	p, ok, err := a.collectParams(ctx)
	if err != nil || !ok {
		return err
	}

	sub, err := a.submissions.Create(ctx, p)
	if err != nil {
		fmt.Fprintf(a.out, "Submit failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Submitted %s\n", sub.ID)
	return nil
}

// Draft saves (or updates) a draft. An empty id at the prompt creates a new
// draft; drafts stay drafts, a final submission is always a new record.
func (a *App) Draft(ctx context.Context) error {
	if a.user == nil || a.user.Role != models.RoleSubmitter {
		fmt.Fprintln(a.out, "Log in as a submitter first")
		return nil
	}

	existingID, err := GetSimpleText(a.reader, "Draft id to update (empty for new)", a.out)
	if err != nil {
		return err
	}

	p, ok, err := a.collectParams(ctx)
	if err != nil || !ok {
		return err
	}

	sub, err := a.submissions.SaveDraft(ctx, p, existingID)
	if err != nil {
		fmt.Fprintf(a.out, "Saving draft failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Draft saved as %s\n", sub.ID)
	return nil
}
