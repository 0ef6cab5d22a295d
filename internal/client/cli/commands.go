package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/employeeboard/internal/client/forms"
	"github.com/dmitrijs2005/employeeboard/internal/client/models"
	"github.com/dmitrijs2005/employeeboard/internal/client/view"
)

const confirmPrompt = "Are you sure?"

// render prints pending notifications, dismissing them, and then the
// current view.
func (a *App) render() {
	for _, n := range a.view.Notifications() {
		renderNotification(a.out, n)
		a.view.Dismiss(n.ID)
	}

	v := a.view.View()
	switch {
	case v.Detail == nil:
		renderEmployees(a.out, v.List)
	case v.Detail.Post == nil:
		renderEmployee(a.out, v.Detail)
	default:
		renderPost(a.out, v.Detail.Post)
	}
}

// report prints errors that never turn into notifications: form
// validation and navigation mistakes. Remote failures are already queued
// as notifications by the reconciler.
func (a *App) report(err error) {
	var ve *forms.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &ve):
		errorStyle.Fprintln(a.out, "Please fix the following:")
		for _, f := range ve.Fields {
			fmt.Fprintf(a.out, "  %s: %s\n", f.Field, f.Message)
		}
	case errors.Is(err, view.ErrNoEmployee):
		fmt.Fprintln(a.out, "Open an employee first (open <id>).")
	case errors.Is(err, view.ErrNoPost):
		fmt.Fprintln(a.out, "Open a post first (view-post <id>).")
	case errors.Is(err, view.ErrSubmissionPending):
		fmt.Fprintln(a.out, "A comment for this post is still being submitted.")
	}
}

func (a *App) List(ctx context.Context) error {
	a.view.CloseEmployee()
	err := a.view.LoadEmployees(ctx)
	a.render()
	return err
}

func (a *App) AddEmployee(ctx context.Context) error {
	in, err := a.employeeForm()
	if err != nil {
		errorStyle.Fprintln(a.out, "Error: "+err.Error())
		return err
	}

	_, err = a.view.CreateEmployee(ctx, in)
	a.report(err)
	a.render()
	return err
}

// employeeForm asks for every field before returning, so that a bad answer
// does not leave the remaining prompts to be read as commands.
func (a *App) employeeForm() (models.EmployeeInput, error) {
	prompts := []string{"First name", "Last name", "Age", "Phone number", "Email", "Job location"}
	answers := make([]string, len(prompts))
	for i, p := range prompts {
		s, err := GetSimpleText(a.reader, p, a.out)
		if err != nil {
			return models.EmployeeInput{}, err
		}
		answers[i] = s
	}

	in := models.EmployeeInput{
		FirstName:   answers[0],
		LastName:    answers[1],
		PhoneNumber: answers[3],
		Email:       answers[4],
		JobLocation: answers[5],
	}
	if answers[2] != "" {
		age, err := strconv.Atoi(answers[2])
		if err != nil {
			return in, fmt.Errorf("age %q is not a number", answers[2])
		}
		in.Age = age
	}
	return in, nil
}

func (a *App) DeleteEmployee(ctx context.Context, id int) error {
	if !Confirm(a.reader, confirmPrompt, a.out) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	err := a.view.DeleteEmployee(ctx, id)
	a.render()
	return err
}

func (a *App) Open(ctx context.Context, id int) error {
	err := a.view.OpenEmployee(ctx, id)
	a.render()
	return err
}

func (a *App) AddPost(ctx context.Context) error {
	if v := a.view.View(); v.Detail == nil || !v.Detail.Loaded {
		a.report(view.ErrNoEmployee)
		return view.ErrNoEmployee
	}

	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	_, err = a.view.CreatePost(ctx, title, content)
	a.report(err)
	a.render()
	return err
}

func (a *App) DeletePost(ctx context.Context, id int) error {
	if v := a.view.View(); v.Detail == nil || !v.Detail.Loaded {
		a.report(view.ErrNoEmployee)
		return view.ErrNoEmployee
	}
	if !Confirm(a.reader, confirmPrompt, a.out) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	err := a.view.DeletePost(ctx, id)
	a.report(err)
	a.render()
	return err
}

func (a *App) ViewPost(ctx context.Context, id int) error {
	err := a.view.SelectPost(id)
	switch {
	case errors.Is(err, view.ErrNotFound):
		fmt.Fprintf(a.out, "Post %d not found.\n", id)
		return err
	case err != nil:
		a.report(err)
		return err
	}
	a.render()
	return nil
}

func (a *App) AddComment(ctx context.Context) error {
	v := a.view.View()
	switch {
	case v.Detail == nil || v.Detail.Post == nil:
		a.report(view.ErrNoPost)
		return view.ErrNoPost
	case v.Detail.Post.Pending:
		a.report(view.ErrSubmissionPending)
		return view.ErrSubmissionPending
	}

	content, err := GetMultiline(a.reader, "Comment", a.out)
	if err != nil {
		return err
	}

	_, err = a.view.CreateComment(ctx, content)
	a.report(err)
	a.render()
	return err
}

func (a *App) DeleteComment(ctx context.Context, id int) error {
	if v := a.view.View(); v.Detail == nil || v.Detail.Post == nil {
		a.report(view.ErrNoPost)
		return view.ErrNoPost
	}
	if !Confirm(a.reader, confirmPrompt, a.out) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	err := a.view.DeleteComment(ctx, id)
	a.report(err)
	a.render()
	return err
}

// Back leaves the post view for the employee view, or the employee view
// for the list.
func (a *App) Back(ctx context.Context) error {
	v := a.view.View()
	switch {
	case v.Detail == nil:
	case v.Detail.Post != nil:
		a.view.ClosePost()
	default:
		return a.List(ctx)
	}
	a.render()
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	err := a.view.Refresh(ctx)
	a.render()
	return err
}
