package image

import (
	"context"
	"fmt"
)

// Fallback tries the primary generator and switches to the backup when
// it fails. OnFallback, when set, observes each switchover.
type Fallback struct {
	Primary    Generator
	Backup     Generator
	OnFallback func(reason string, err error)
}

func (f *Fallback) Generate(ctx context.Context, req Request) (*Result, error) {
	if f.Primary == nil {
		if f.Backup == nil {
			return nil, fmt.Errorf("image: no generator configured")
		}
		f.notify("primary_missing", nil)
		return f.Backup.Generate(ctx, req)
	}

	res, err := f.Primary.Generate(ctx, req)
	if err == nil {
		return res, nil
	}
	// A canceled request is the caller's signal to stop, not a reason
	// to try the backup.
	if f.Backup == nil || ctx.Err() != nil {
		return nil, err
	}
	f.notify("primary_failed", err)
	return f.Backup.Generate(ctx, req)
}

func (f *Fallback) notify(reason string, err error) {
	if f.OnFallback != nil {
		f.OnFallback(reason, err)
	}
}

var _ Generator = (*Fallback)(nil)
