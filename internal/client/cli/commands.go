package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/api"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/services"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/filex"
	"github.com/dmitrijs2005/taskkeeper/internal/netx"
)

// report prints err in user terms and returns it unchanged.
func (a *App) report(err error) error {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintln(a.out, "Error:", apiErr.Error())
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Error: server unavailable, try again later")
	case errors.Is(err, services.ErrNotAuthenticated):
		fmt.Fprintln(a.out, "Please login first")
	default:
		fmt.Fprintln(a.out, "Error:", err.Error())
	}
	return err
}

func (a *App) Register(ctx context.Context) error {
	fullName, err := GetSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return a.report(err)
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return a.report(err)
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	if _, err := a.authService.Register(ctx, fullName, email, password); err != nil {
		return a.report(err)
	}
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return a.report(err)
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	if _, err := a.authService.Login(ctx, email, password); err != nil {
		return a.report(err)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return a.report(err)
	}
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	u, err := a.authService.Profile(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Name:         %s\nEmail:        %s\nID:           %s\nMember since: %s\n",
		u.FullName, u.Email, u.ID, u.CreatedAt.Format("2006-01-02"))
	return nil
}

func (a *App) EditProfile(ctx context.Context) error {
	fullName, err := GetSimpleText(a.reader, "New full name (empty to keep)", a.out)
	if err != nil {
		return a.report(err)
	}
	email, err := GetSimpleText(a.reader, "New email (empty to keep)", a.out)
	if err != nil {
		return a.report(err)
	}

	if fullName == "" && email == "" {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	if _, err := a.authService.UpdateProfile(ctx, optional(fullName), optional(email)); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Profile updated")
	return nil
}

func (a *App) List(ctx context.Context, query string) error {
	tasks, err := a.taskService.List(ctx, query)
	if err != nil {
		return a.report(err)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks")
		return nil
	}
	for _, t := range tasks {
		fmt.Fprintln(a.out, t)
		if t.Description != "" {
			fmt.Fprintln(a.out, "    "+t.Description)
		}
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return a.report(err)
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return a.report(err)
	}

	task, err := a.taskService.Add(ctx, title, description)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Added", task)
	return nil
}

func (a *App) SetCompleted(ctx context.Context, id string, completed bool) error {
	task, err := a.taskService.SetCompleted(ctx, id, completed)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, task)
	return nil
}

func (a *App) Edit(ctx context.Context, id string) error {
	title, err := GetSimpleText(a.reader, "New title (empty to keep)", a.out)
	if err != nil {
		return a.report(err)
	}
	description, err := GetSimpleText(a.reader, "New description (empty to keep)", a.out)
	if err != nil {
		return a.report(err)
	}

	patch := models.TaskPatch{Title: optional(title), Description: optional(description)}
	if patch.Title == nil && patch.Description == nil {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	task, err := a.taskService.Edit(ctx, id, patch)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Updated", task)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.taskService.Delete(ctx, id); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Task deleted")
	return nil
}

func (a *App) Export(ctx context.Context) error {
	exp, err := a.taskService.Export(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Exported %d task(s)\nDownload (valid 15 minutes): %s\n", exp.Count, exp.URL)

	if a.config.ExportDir == "" || a.download == nil {
		return nil
	}

	// a failed local copy still leaves the link usable
	data, err := netx.DownloadPresignedURL(ctx, a.download, exp.URL)
	if err != nil {
		fmt.Fprintln(a.out, "Could not download export:", err.Error())
		return nil
	}
	path, err := filex.SaveInDir(a.config.ExportDir, exp.Key, data)
	if err != nil {
		fmt.Fprintln(a.out, "Could not save export:", err.Error())
		return nil
	}
	fmt.Fprintln(a.out, "Saved to", path)
	return nil
}
