package rental

import (
	"context"
	"time"

	rentalrepo "bikerental/repository/rental"
	"bikerental/util/dates"
)

type Cleaner interface {
	// MarkOverdue flags Active rentals older than the configured limit.
	MarkOverdue(ctx context.Context) (int64, error)
}

type cleaner struct {
	r         rentalrepo.Repo
	afterDays int
	now       func() time.Time
}

func NewCleaner(r rentalrepo.Repo, afterDays int) Cleaner {
	return &cleaner{r: r, afterDays: afterDays, now: time.Now}
}

func (c *cleaner) MarkOverdue(ctx context.Context) (int64, error) {
	cutoff := dates.Day(c.now()).AddDate(0, 0, -c.afterDays)
	return c.r.MarkOverdue(ctx, cutoff)
}
