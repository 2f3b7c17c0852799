package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophcloud/internal/filex"
	"github.com/dmitrijs2005/gophcloud/internal/gallery"
	"github.com/dmitrijs2005/gophcloud/internal/intake"
)

// Upload reads path, checks its type at the intake boundary and hands it to
// the file store.
func (a *App) Upload(ctx context.Context, path string) error {
	file, err := intake.OpenFile(path)
	if err != nil {
		if errors.Is(err, intake.ErrUnsupportedType) {
			a.notifier.Error("Only image and video files are supported")
		} else {
			fmt.Fprintf(a.out, "Cannot read %s: %v\n", path, err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Uploading %s (%s, %s)...\n", file.Name, file.Type, gallery.FormatSize(file.Size()))

	entry, err := a.files.Upload(ctx, file)
	if err != nil {
		return err
	}

	a.logger.Debug(ctx, "upload finished", "id", entry.ID)
	fmt.Fprintf(a.out, "ID: %s\n", entry.ID)
	return nil
}

// List prints the gallery for the given filter, newest first.
func (a *App) List(_ context.Context, filter string) error {
	f, err := gallery.ParseFilter(filter)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	cards := gallery.Cards(a.files.List(), f)
	if len(cards) == 0 {
		fmt.Fprintln(a.out, "No files found")
		fmt.Fprintln(a.out, gallery.EmptyHint(f))
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tKIND\tSIZE\tDATE")
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Kind, c.Size, c.Date)
	}
	return tw.Flush()
}

func (a *App) Delete(ctx context.Context, id string) error {
	return a.files.Delete(ctx, id)
}

// Download saves the content of entry id to dest (a file or directory; the
// current directory when empty).
func (a *App) Download(ctx context.Context, id, dest string) error {
	var name string
	for _, e := range a.files.List() {
		if e.ID == id {
			name = e.Name
			break
		}
	}

	rc, err := a.files.Open(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Download failed: %v\n", err)
		return err
	}
	defer rc.Close()

	target := filex.ResolveTarget(dest, name)
	n, err := filex.Save(target, rc)
	if err != nil {
		fmt.Fprintf(a.out, "Download failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Saved %s (%s)\n", target, gallery.FormatSize(n))
	return nil
}
