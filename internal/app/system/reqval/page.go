package reqval

import (
	"net/url"
	"strconv"
)

// Paging is a validated ?page=&limit= pair.
type Paging struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}

// Page reads page and limit from q. Missing values default to page 1 and
// defaultLimit; limit may not exceed maxLimit. Problems are reported per
// parameter in the same shape as Struct.
func Page(q url.Values, defaultLimit, maxLimit int64) (Paging, map[string]string) {
	p := Paging{Page: 1, Limit: defaultLimit}
	details := map[string]string{}

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			details["page"] = "Must be a positive whole number"
		} else {
			p.Page = n
		}
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 || n > maxLimit {
			details["limit"] = "Must be between 1 and " + strconv.FormatInt(maxLimit, 10)
		} else {
			p.Limit = n
		}
	}
	if len(details) > 0 {
		return p, details
	}
	return p, nil
}
