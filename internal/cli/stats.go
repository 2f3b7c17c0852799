package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophcloud/internal/metrics"
)

// Stats prints the number of stored entries, uploads in flight and the
// operation counters.
func (a *App) Stats(_ context.Context) error {
	fmt.Fprintf(a.out, "Files: %d\n", len(a.files.List()))
	fmt.Fprintf(a.out, "Uploads in flight: %d\n", a.files.InFlight())

	lines, err := metrics.Snapshot(a.gatherer)
	if err != nil {
		fmt.Fprintf(a.out, "Cannot read counters: %v\n", err)
		return err
	}
	for _, l := range lines {
		fmt.Fprintln(a.out, l)
	}
	return nil
}
