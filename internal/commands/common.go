package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskflow/internal/datekey"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/store"
)

// fail prints err in the form the user should see and maps it to an exit
// code. Capacity, validation and not-found conditions are user errors;
// everything else is a backend failure.
func fail(errOut io.Writer, err error) int {
	var partial *store.PartialPromotionError
	var capErr *store.CapacityError
	switch {
	case errors.As(err, &partial):
		fmt.Fprintf(errOut, "error: %v\n", partial)
		fmt.Fprintln(errOut, "the task was created; remove the note manually once the connection recovers")
		return exitcode.BackendError
	case errors.As(err, &capErr):
		fmt.Fprintf(errOut, "error: %v\n", capErr)
		return exitcode.UserError
	case errors.Is(err, store.ErrValidation):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintln(errOut, "error: not logged in (run: taskflow login)")
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

// parseDay resolves a --date flag value, defaulting to today. Besides the
// absolute YYYY-MM-DD form it accepts today, yesterday, tomorrow and
// +N/-N day offsets.
func parseDay(value string) (datekey.Key, error) {
	switch value {
	case "", "today":
		return datekey.Today(), nil
	case "yesterday":
		return datekey.Today().AddDays(-1), nil
	case "tomorrow":
		return datekey.Today().AddDays(1), nil
	}
	if strings.HasPrefix(value, "+") || strings.HasPrefix(value, "-") {
		n, err := strconv.Atoi(value)
		if err != nil {
			return "", fmt.Errorf("invalid date offset %q (want +N or -N)", value)
		}
		return datekey.Today().AddDays(n), nil
	}
	return datekey.Parse(value)
}

// parseBucket resolves a --bucket flag value, defaulting to work.
func parseBucket(value string) (service.Bucket, error) {
	switch value {
	case "", string(service.BucketWork):
		return service.BucketWork, nil
	case string(service.BucketPersonal):
		return service.BucketPersonal, nil
	default:
		return "", fmt.Errorf("unknown bucket %q (want work or personal)", value)
	}
}

// dayView returns the tasks of a day in display order: work section first,
// then personal, insertion order within each. The numbers shown by list
// and accepted by done/rm index into this ordering.
func dayView(st *store.Stores, day datekey.Key) []service.Task {
	tasks := st.Tasks.OnDay(day)
	var view []service.Task
	for _, bucket := range []service.Bucket{service.BucketWork, service.BucketPersonal} {
		for _, t := range tasks {
			if t.Bucket == bucket {
				view = append(view, t)
			}
		}
	}
	return view
}

// taskByNumber resolves a 1-based day-view number to a task.
func taskByNumber(st *store.Stores, day datekey.Key, num int) (service.Task, error) {
	view := dayView(st, day)
	if num < 1 || num > len(view) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return view[num-1], nil
}
