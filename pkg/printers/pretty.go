// Package printers renders profiles, users and responses for the CLI.
package printers

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/navigation/pkg/network"
	"tableflip.dev/navigation/pkg/profile"
)

// PrettyPrint writes coloured, table-aligned output.
type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Width caps wide columns. Zero leaves them unwrapped.
	Width uint
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s\n", count, noun)
}

// State prints one view state as it arrives.
func (pp *PrettyPrint) State(state profile.ViewState) {
	switch s := state.(type) {
	case profile.Loading:
		_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.out(), "Загрузка профиля…")
	case profile.Loaded:
		pp.User(s.User)
		_, _ = color.New(color.FgHiYellow, color.Faint).Fprintln(pp.out(), s.DebugInfo)
		pp.NewLine()
		pp.Posts(s.Posts)
	case profile.Error:
		_, _ = color.New(color.FgRed, color.Bold).Fprintln(pp.out(), s.Message)
	}
}

// User prints the header section of a profile.
func (pp *PrettyPrint) User(u profile.User) {
	bold := color.New(color.Bold)
	pp.Title(u.FullName)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Логин"), u.Login)
	tbl.AddRow(bold.Sprint("Статус"), u.Status)
	tbl.AddRow(bold.Sprint("Аватар"), string(u.Avatar))
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Posts prints the posts section with a photos row first.
func (pp *PrettyPrint) Posts(posts []profile.Post) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	_, _ = faint.Fprintf(pp.out(), "Photos (%d)  →\n\n", len(profile.PhotoNames()))
	pp.TitleWithCount("Posts", len(posts), "posts")
	if len(posts) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(pp.out(), " none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.Width > 0 {
		tbl.MaxColWidth = pp.Width
		tbl.Wrap = true
	}
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Author"), bold.Sprint("Likes"), bold.Sprint("Views"), bold.Sprint("Description"))
	for i, p := range posts {
		tbl.AddRow(i, p.Author, p.Likes, p.Views, p.Description)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Users prints the user directory.
func (pp *PrettyPrint) Users(all []profile.User) {
	pp.TitleWithCount("Users", len(all), "records")
	if len(all) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(pp.out(), " none\n\n")
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Login"), bold.Sprint("Name"), bold.Sprint("Status"), bold.Sprint("Avatar"))
	for _, u := range all {
		tbl.AddRow(u.Login, u.FullName, u.Status, string(u.Avatar))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Response prints a fetched resource: status, sorted headers and the body
// preview.
func (pp *PrettyPrint) Response(res network.Resource, r *network.Response) {
	pp.Title(res.Title())
	_, _ = color.New(color.Faint).Fprintln(pp.out(), res.Description())
	pp.NewLine()

	status := color.New(color.FgGreen, color.Bold)
	if r.StatusCode >= http.StatusBadRequest {
		status = color.New(color.FgRed, color.Bold)
	}
	_, _ = status.Fprintln(pp.out(), r.Status)

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.Width > 0 {
		tbl.MaxColWidth = pp.Width
		tbl.Wrap = true
	}
	keys := make([]string, 0, len(r.Header))
	for k := range r.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tbl.AddRow(bold.Sprint(k), strings.Join(r.Header[k], ", "))
	}
	tbl.AddRow(bold.Sprint("Size"), fmt.Sprintf("%d bytes", r.Size))
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	if !r.UTF8 {
		_, _ = color.New(color.FgYellow).Fprintln(pp.out(), "Ответ не в UTF-8")
		return
	}
	_, _ = fmt.Fprintln(pp.out(), r.Preview)
	if r.Truncated {
		_, _ = color.New(color.Faint).Fprintf(pp.out(), "… (%d из %d символов)\n", network.PreviewChars, r.TotalChars)
	}
}
