package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Thaquidheen/hoch-frontend-sub002/forms"
)

// fieldFlag exposes one form field as a flag named after it.
type fieldFlag struct {
	field   string
	usage   string
	boolean bool
}

func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

func addFieldFlags(cmd *cobra.Command, flags []fieldFlag) {
	for _, f := range flags {
		if f.boolean {
			cmd.Flags().Bool(flagName(f.field), false, f.usage)
		} else {
			cmd.Flags().String(flagName(f.field), "", f.usage)
		}
	}
}

// applyFieldFlags copies the flags given on the command line into a form.
// Flags left out keep the draft's value.
func applyFieldFlags(cmd *cobra.Command, flags []fieldFlag, set func(field, value string) error) error {
	for _, f := range flags {
		fl := cmd.Flags().Lookup(flagName(f.field))
		if fl == nil || !fl.Changed {
			continue
		}
		if err := set(f.field, fl.Value.String()); err != nil {
			return err
		}
	}
	return nil
}

// editor is the part of a page the create and update commands drive.
type editor[T any] interface {
	Load(ctx context.Context) error
	OpenCreate() error
	OpenEdit(id int) error
	Submit(ctx context.Context) (T, error)
	FormErrors() forms.Errors
}

func runCreate[T any](ctx context.Context, app *App, p editor[T], fill func() error) (T, error) {
	var zero T
	if err := p.Load(ctx); err != nil {
		return zero, err
	}
	if err := p.OpenCreate(); err != nil {
		return zero, err
	}
	if err := fill(); err != nil {
		return zero, err
	}
	saved, err := p.Submit(ctx)
	return saved, submitted(app, p.FormErrors(), err)
}

func runUpdate[T any](ctx context.Context, app *App, p editor[T], id int, fill func() error) (T, error) {
	var zero T
	if err := p.Load(ctx); err != nil {
		return zero, err
	}
	if err := p.OpenEdit(id); err != nil {
		return zero, err
	}
	if err := fill(); err != nil {
		return zero, err
	}
	saved, err := p.Submit(ctx)
	return saved, submitted(app, p.FormErrors(), err)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// parseIDs reads "3,5,8" style lists.
func parseIDs(list []string) ([]int, error) {
	ids := make([]int, 0, len(list))
	for _, s := range list {
		id, err := parseID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
