package actions

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/tailscale-portfolio/zoom-batch/internal/zoom"
)

var listingHeader = []string{"id", "first_name", "last_name", "email", "type", "status"}

// ListUsers walks every page of the account's users and writes one line
// per user to the listing output, after a single header line.
func (h *Handler) ListUsers(ctx context.Context) Outcome {
	w := csv.NewWriter(h.listing)
	total := 0

	for pageNumber := 1; ; pageNumber++ {
		res, err := h.directory.ListUsers(ctx, pageNumber, h.pageSize)
		if err != nil {
			return h.reporter.Fail(callFailure(RemoteRead, ReasonListBroken,
				fmt.Sprintf("unknown error while getting the list of Zoom users: %v", err), err))
		}
		if res.StatusCode != http.StatusOK {
			return h.reporter.Fail(&Failure{
				Kind:   RemoteRead,
				Reason: ReasonListFailed,
				Detail: fmt.Sprintf("did not get list of Zoom users: page %d returned %d", pageNumber, res.StatusCode),
			})
		}
		page, err := zoom.DecodePage(res.Body)
		if err != nil {
			return h.reporter.Fail(&Failure{
				Kind:   RemoteRead,
				Reason: ReasonListBroken,
				Detail: fmt.Sprintf("unknown error while getting the list of Zoom users: %v", err),
				Err:    err,
			})
		}

		if pageNumber == 1 {
			_ = w.Write(listingHeader)
		}
		for _, u := range page.Users {
			_ = w.Write([]string{u.ID, u.FirstName, u.LastName, u.Email, strconv.Itoa(int(u.Type)), u.Status})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return h.reporter.Fail(&Failure{
				Kind:   RemoteRead,
				Reason: ReasonListBroken,
				Detail: fmt.Sprintf("unknown error while writing the list of Zoom users: %v", err),
				Err:    err,
			})
		}
		total += len(page.Users)

		// A server that never advances page_number must not loop forever.
		if page.Last() || pageNumber >= page.PageCount {
			break
		}
	}

	return h.reporter.Succeed(ReasonListed, fmt.Sprintf("got the list of Zoom users (%d users)", total))
}
