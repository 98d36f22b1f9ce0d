package commands

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/forms"
	"github.com/Thaquidheen/hoch-frontend-sub002/pages"
)

// maxRows is the page size of list commands, which print everything loaded.
const maxRows = 10000

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	mutedColor   = color.New(color.Faint)
)

var levelMarks = map[pages.Level]struct {
	mark  string
	color *color.Color
}{
	pages.LevelSuccess: {"✓", successColor},
	pages.LevelError:   {"✗", errorColor},
	pages.LevelWarning: {"!", warningColor},
	pages.LevelInfo:    {"i", infoColor},
}

func printNotification(w io.Writer, n pages.Notification) {
	m, ok := levelMarks[n.Level]
	if !ok {
		fmt.Fprintln(w, n.Message)
		return
	}
	m.color.Fprint(w, m.mark)
	fmt.Fprintln(w, " "+n.Message)
}

// printError shows a failure no page reported, with the backend's field
// errors when there are any.
func printError(w io.Writer, err error) {
	errorColor.Fprint(w, "Error:")
	fmt.Fprintln(w, " "+err.Error())
	if apiErr, ok := api.AsError(err); ok {
		printFieldErrors(w, apiErr.FieldMap())
	}
}

// printFormErrors lists the field errors of a rejected form, sorted by
// field so output is stable.
func printFormErrors(w io.Writer, errs forms.Errors) {
	fields := make(map[string]string, len(errs))
	for k, v := range errs {
		if k != forms.SubmitKey {
			fields[k] = v
		}
	}
	printFieldErrors(w, fields)
}

func printFieldErrors(w io.Writer, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, fields[k])
	}
}

// submitted reports a page Submit: invalid drafts print their field
// errors. The page has already raised the toast.
func submitted(app *App, errs forms.Errors, err error) error {
	if errors.Is(err, forms.ErrInvalid) || api.IsValidation(err) {
		printFormErrors(app.errOut, errs)
	}
	return err
}

// table writes aligned columns under an upper-case header row. Cells are
// left uncolored since escape codes would throw off the alignment.
type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, headers ...string) *table {
	t := &table{tw: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
	for i, h := range headers {
		headers[i] = strings.ToUpper(h)
	}
	fmt.Fprintln(t.tw, strings.Join(headers, "\t"))
	return t
}

func (t *table) row(cells ...any) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(t.tw, strings.Join(parts, "\t"))
}

func (t *table) flush() error {
	return t.tw.Flush()
}

// footer prints a muted summary line under a table.
func footer(w io.Writer, format string, args ...any) {
	mutedColor.Fprintf(w, format+"\n", args...)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func size(n int) string {
	return humanize.IBytes(uint64(n))
}
