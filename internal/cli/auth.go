package cli

import (
	"context"
	"errors"
	"fmt"

	"rpas/internal/common"
)

func (a *App) Login(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter user id", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.identity.Login(ctx, id, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			fmt.Fprintln(a.out, "Invalid id or password")
			return nil
		}
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return err
	}

	a.user = user
	fmt.Fprintf(a.out, "Welcome, %s\n", user.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.identity.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %v\n", err)
		return err
	}
	a.user = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if a.user == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s: %s (%s)\n", a.user.ID, a.user.Name, a.user.Role)
	if a.user.Program != "" {
		fmt.Fprintf(a.out, "Program: %s\n", a.user.Program)
	}
	if a.user.AssignedReviewerID != "" {
		fmt.Fprintf(a.out, "Reviewer: %s\n", a.user.AssignedReviewerID)
	}
	return nil
}
