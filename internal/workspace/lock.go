package workspace

import (
	"context"
	"errors"
	"fmt"

	"loadmaster/internal/logging"
	"loadmaster/internal/session"
)

// ErrBusy reports that another loadmaster process holds the workspace lock.
var ErrBusy = errors.New("workspace is locked by another loadmaster process")

// Update loads the session under an exclusive lock, runs fn and saves the
// result. Nothing is saved when fn returns an error.
func (w *Workspace) Update(ctx context.Context, fn func(*session.Session) error, opts ...session.Option) error {
	ctx = ensureContext(ctx)
	if err := w.acquire(ctx, false); err != nil {
		return err
	}
	defer w.release()

	state, _, err := w.Load(ctx)
	if err != nil {
		return err
	}
	sess := session.Restore(state, opts...)
	if err := fn(sess); err != nil {
		return err
	}
	if err := w.Save(ctx, sess.State()); err != nil {
		return fmt.Errorf("save workspace: %w", err)
	}
	return nil
}

// View loads the session under a shared lock and runs fn. Changes made by fn
// are discarded.
func (w *Workspace) View(ctx context.Context, fn func(*session.Session) error, opts ...session.Option) error {
	ctx = ensureContext(ctx)
	if err := w.acquire(ctx, true); err != nil {
		return err
	}
	defer w.release()

	state, _, err := w.Load(ctx)
	if err != nil {
		return err
	}
	return fn(session.Restore(state, opts...))
}

func (w *Workspace) acquire(ctx context.Context, shared bool) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultLockWait)
		defer cancel()
	}
	var (
		ok  bool
		err error
	)
	if shared {
		ok, err = w.lock.TryRLockContext(ctx, lockRetryDelay)
	} else {
		ok, err = w.lock.TryLockContext(ctx, lockRetryDelay)
	}
	if errors.Is(err, context.DeadlineExceeded) || (err == nil && !ok) {
		return fmt.Errorf("%w (%s)", ErrBusy, w.lockPath)
	}
	if err != nil {
		return fmt.Errorf("acquire workspace lock: %w", err)
	}
	return nil
}

func (w *Workspace) release() {
	if err := w.lock.Unlock(); err != nil {
		w.logger.Warn("failed to release workspace lock", logging.Error(err))
	}
}
