package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/employeeboard/internal/client/client"
	"github.com/dmitrijs2005/employeeboard/internal/client/models"
	"github.com/dmitrijs2005/employeeboard/internal/client/view"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	successStyle = color.New(color.FgGreen, color.Bold)
	errorStyle   = color.New(color.FgRed, color.Bold)
	headingStyle = color.New(color.FgCyan, color.Bold)
	mutedStyle   = color.New(color.Faint)
)

const (
	noEmployees = "No employees found."
	noPosts     = "No posts found."
	noComments  = "No comments found"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}

func renderAlert(w io.Writer, err error) {
	errorStyle.Fprintln(w, "Error: "+client.UserMessage(err))
}

func renderEmployees(w io.Writer, l view.EmployeeList) {
	headingStyle.Fprintln(w, "Employees")
	if l.Err != nil {
		renderAlert(w, l.Err)
		if !l.Loaded {
			return
		}
	}
	if len(l.Items) == 0 {
		fmt.Fprintln(w, noEmployees)
		return
	}

	t := newTable(w, "ID", "Name", "Age", "Phone", "Email", "Location", "Posts", "Created")
	for _, e := range l.Items {
		t.Append([]string{
			strconv.Itoa(e.ID), e.FullName(), strconv.Itoa(e.Age), e.PhoneNumber,
			e.Email, e.JobLocation, strconv.Itoa(len(e.Posts)), e.CreatedAt.String(),
		})
	}
	t.Render()
}

func renderEmployee(w io.Writer, d *view.EmployeeDetail) {
	if d.Err != nil {
		renderAlert(w, d.Err)
		if !d.Loaded {
			return
		}
	}
	e := d.Employee
	headingStyle.Fprintf(w, "Employee #%d: %s\n", e.ID, e.FullName())
	fmt.Fprintf(w, "Age: %d\nPhone: %s\nEmail: %s\nLocation: %s\n", e.Age, e.PhoneNumber, e.Email, e.JobLocation)
	mutedStyle.Fprintf(w, "Created: %s\n", e.CreatedAt)

	headingStyle.Fprintln(w, "Posts")
	if len(e.Posts) == 0 {
		fmt.Fprintln(w, noPosts)
		return
	}
	t := newTable(w, "ID", "Title", "Comments", "Created")
	for _, p := range e.Posts {
		t.Append([]string{strconv.Itoa(p.ID), p.Title, strconv.Itoa(len(p.Comments)), p.CreatedAt.String()})
	}
	t.Render()
}

func renderPost(w io.Writer, pd *view.PostDetail) {
	p := pd.Post
	headingStyle.Fprintf(w, "Post #%d: %s\n", p.ID, p.Title)
	fmt.Fprintln(w, p.Content)
	mutedStyle.Fprintf(w, "Created: %s\n", p.CreatedAt)

	headingStyle.Fprintln(w, "Comments")
	if pd.Pending {
		mutedStyle.Fprintln(w, "Submitting comment...")
	}
	renderComments(w, pd.Comments)
}

func renderComments(w io.Writer, comments []models.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(w, noComments)
		return
	}
	t := newTable(w, "ID", "Comment", "Created")
	for _, c := range comments {
		t.Append([]string{strconv.Itoa(c.ID), c.Content, c.CreatedAt.String()})
	}
	t.Render()
}

func renderNotification(w io.Writer, n view.Notification) {
	style := successStyle
	if n.Kind == view.KindError {
		style = errorStyle
	}
	if n.Message == "" {
		style.Fprintln(w, n.Title)
		return
	}
	style.Fprintf(w, "%s: %s\n", n.Title, n.Message)
}
