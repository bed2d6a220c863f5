package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/peopleops/hrms-backend-go/internal/domain/auth"
	"github.com/peopleops/hrms-backend-go/internal/domain/user"
	"github.com/peopleops/hrms-backend-go/internal/pkg/sse"
)

// Session is the cached identity of a signed-in user. It is set on
// sign-in or restore, replaced on refresh, and cleared on sign-out.
type Session struct {
	UserID    string
	Email     string
	Role      user.Role
	ExpiresAt int64
}

// ProfileFetcher loads the denormalized profile view for a user.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, userID string) (user.Profile, error)
}

// ProfileFetcherFunc adapts a function to the ProfileFetcher interface.
type ProfileFetcherFunc func(ctx context.Context, userID string) (user.Profile, error)

func (f ProfileFetcherFunc) FetchProfile(ctx context.Context, userID string) (user.Profile, error) {
	return f(ctx, userID)
}

// Snapshot is the reconciler state at one point in time.
type Snapshot struct {
	Session *Session
	Profile *user.Profile
	Loading bool
	Err     error
}

// Reconciler owns the session and profile state for one connected
// client. Session changes are applied synchronously; the profile
// fetch they trigger runs in a goroutine keyed to an epoch counter,
// and a fetch that completes after a newer session change has been
// applied is discarded. The last session change always wins, no
// matter how slowly its predecessors' fetches resolve.
type Reconciler struct {
	fetcher ProfileFetcher
	hub     *sse.Hub
	logger  *slog.Logger

	mu       sync.Mutex
	epoch    uint64
	session  *Session
	profile  *user.Profile
	loading  bool
	err      error
	disposed bool

	ctx         context.Context
	cancel      context.CancelFunc
	unsubscribe func()
	updates     chan Snapshot
}

// NewReconciler creates a reconciler. The hub may be nil when the
// caller drives OnSessionChange directly.
func NewReconciler(fetcher ProfileFetcher, hub *sse.Hub, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Reconciler{
		fetcher: fetcher,
		hub:     hub,
		logger:  logger,
		updates: make(chan Snapshot, 16),
	}
	r.ctx, r.cancel = context.WithCancel(context.Background())
	return r
}

// Init restores the initial session, launches its profile fetch and,
// when a hub is configured, subscribes to the user's auth events.
func (r *Reconciler) Init(ctx context.Context, initial *Session) {
	if r.cancel != nil {
		r.cancel()
	}
	r.ctx, r.cancel = context.WithCancel(ctx)

	if initial == nil {
		return
	}

	r.OnSessionChange(sse.EventSignedIn, initial)

	if r.hub != nil {
		ch, cleanup := r.hub.Subscribe(initial.UserID)
		r.unsubscribe = cleanup
		go r.consume(ch)
	}
}

// Dispose stops event consumption and invalidates in-flight fetches.
func (r *Reconciler) Dispose() {
	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		return
	}
	r.disposed = true
	r.epoch++
	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	close(r.updates)
	r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}
	if unsubscribe != nil {
		unsubscribe()
	}
}

// Updates streams a snapshot after every settled state change.
// Delivery is best-effort; a slow consumer misses intermediate states
// but always observes the latest via Snapshot.
func (r *Reconciler) Updates() <-chan Snapshot {
	return r.updates
}

// OnSessionChange applies a session change. The identity swap is
// synchronous; the profile fetch it triggers is not, and never blocks
// the caller.
func (r *Reconciler) OnSessionChange(event string, sess *Session) {
	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		return
	}

	r.epoch++
	epoch := r.epoch

	if sess == nil {
		r.session = nil
		r.profile = nil
		r.loading = false
		r.err = nil
		r.emitLocked()
		r.mu.Unlock()
		return
	}

	r.session = sess
	r.loading = true
	r.err = nil
	r.emitLocked()
	userID := sess.UserID
	r.mu.Unlock()

	r.logger.Debug("session changed, fetching profile",
		slog.String("event", event),
		slog.String("user_id", userID))

	go r.fetch(epoch, userID)
}

// Refetch reloads the profile for the current session, e.g. after a
// profile update event.
func (r *Reconciler) Refetch() {
	r.mu.Lock()
	if r.disposed || r.session == nil {
		r.mu.Unlock()
		return
	}
	r.epoch++
	epoch := r.epoch
	r.loading = true
	userID := r.session.UserID
	r.mu.Unlock()

	go r.fetch(epoch, userID)
}

// Snapshot returns the current state.
func (r *Reconciler) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		Session: r.session,
		Profile: r.profile,
		Loading: r.loading,
		Err:     r.err,
	}
}

func (r *Reconciler) consume(ch chan sse.Event) {
	for {
		select {
		case <-r.ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			r.apply(ev)
		}
	}
}

func (r *Reconciler) apply(ev sse.Event) {
	switch ev.Event {
	case sse.EventSignedOut:
		r.OnSessionChange(ev.Event, nil)
	case sse.EventSignedIn, sse.EventTokenRefreshed:
		if sess, ok := ev.Data.(*Session); ok {
			r.OnSessionChange(ev.Event, sess)
		} else {
			r.Refetch()
		}
	case sse.EventProfileUpdated:
		r.Refetch()
	}
}

func (r *Reconciler) fetch(epoch uint64, userID string) {
	profile, err := r.fetcher.FetchProfile(r.ctx, userID)

	r.mu.Lock()
	defer r.mu.Unlock()

	// A newer session change superseded this fetch.
	if epoch != r.epoch || r.disposed {
		return
	}

	r.loading = false
	switch {
	case err == nil:
		r.profile = &profile
		r.err = nil
	case errors.Is(err, user.ErrUserNotFound):
		// No profile row yet is a normal empty state.
		r.profile = nil
		r.err = nil
	default:
		r.profile = nil
		r.err = classifyFetchError(err)
		r.logger.Warn("profile fetch failed",
			slog.String("user_id", userID),
			slog.Any("error", r.err))
	}
	r.emitLocked()
}

func (r *Reconciler) emitLocked() {
	select {
	case r.updates <- Snapshot{Session: r.session, Profile: r.profile, Loading: r.loading, Err: r.err}:
	default:
	}
}

// classifyFetchError separates "the backing service is unreachable"
// from every other failure so the client can show the paused-project
// message instead of a generic retry prompt.
func classifyFetchError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return auth.ErrBackendUnreachable
	}
	return fmt.Errorf("%w: %v", auth.ErrProfileLoadFailed, err)
}
