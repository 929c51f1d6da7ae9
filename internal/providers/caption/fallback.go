package caption

import (
	"context"
	"fmt"
)

// Fallback tries the primary suggester and switches to the backup when
// it fails. OnFallback, when set, observes each switchover.
type Fallback struct {
	Primary    Suggester
	Backup     Suggester
	OnFallback func(reason string, err error)
}

func (f *Fallback) Suggest(ctx context.Context, req Request) (*Response, error) {
	if f.Primary == nil {
		if f.Backup == nil {
			return nil, fmt.Errorf("caption: no suggester configured")
		}
		f.notify("primary_missing", nil)
		return f.Backup.Suggest(ctx, req)
	}

	res, err := f.Primary.Suggest(ctx, req)
	if err == nil {
		return res, nil
	}
	if f.Backup == nil || ctx.Err() != nil {
		return nil, err
	}
	f.notify("primary_failed", err)
	return f.Backup.Suggest(ctx, req)
}

func (f *Fallback) notify(reason string, err error) {
	if f.OnFallback != nil {
		f.OnFallback(reason, err)
	}
}

var _ Suggester = (*Fallback)(nil)
