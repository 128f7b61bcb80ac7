package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"metra_client/internal/metra"
)

const searchDebounce = 400 * time.Millisecond

// runLiveSearch reads filter input line by line and issues a debounced
// client listing per quiet period. A result is only printed if its
// request was not superseded while in flight.
func runLiveSearch(ctx context.Context, opts *Options, client *metra.Session) error {
	fmt.Fprintln(os.Stdout, "Live client search. Type a filter, empty line repeats, '.' quits.")

	debouncer := metra.NewDebouncer(searchDebounce, func(queryCtx context.Context, query string) {
		result, err := client.Clients.List(queryCtx, 1, query, nil)
		if queryCtx.Err() != nil {
			return // superseded while in flight
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, friendlyError(err))
			return
		}
		fmt.Fprintf(os.Stdout, "-- %q --\n", query)
		writeClientPage(result)
	})
	defer debouncer.Stop()

	reader := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, "search> ")
		if !reader.Scan() {
			return reader.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		line := reader.Text()
		if line == "." {
			return nil
		}
		debouncer.Trigger(line)
	}
}
