// Package pagination implements keyset pagination over records ordered by
// creation time, newest first.
//
// A page of size take is fetched as take+1 records. The extra record only
// signals that another page exists and is never returned to the caller.
package pagination

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor is the position of the last record of the previous page.
// ID breaks ties between records created at the same instant.
type Cursor struct {
	CreatedAt time.Time
	ID        int64
}

// Directive tells a store what to fetch: records strictly after After
// (or from the top when After is nil), at most Limit of them.
type Directive struct {
	After *Cursor
	Limit int
}

func Fetch(after *Cursor, take int) Directive {
	return Directive{
		After: after,
		Limit: take + 1,
	}
}

// Trim cuts a lookahead fetch back to take records and reports whether
// the lookahead record was present.
func Trim[T any](records []T, take int) ([]T, bool) {
	if len(records) > take {
		return records[:take], true
	}

	return records, false
}

func Encode(c Cursor) string {
	raw := strconv.FormatInt(c.CreatedAt.UnixNano(), 10) + ":" + strconv.FormatInt(c.ID, 10)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode parses a cursor produced by Encode. The empty string is the first page.
func Decode(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	nanosString, idString, found := strings.Cut(string(raw), ":")
	if !found {
		return nil, ErrInvalidCursor
	}

	nanos, err := strconv.ParseInt(nanosString, 10, 64)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	id, err := strconv.ParseInt(idString, 10, 64)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	return &Cursor{
		CreatedAt: time.Unix(0, nanos).UTC(),
		ID:        id,
	}, nil
}
