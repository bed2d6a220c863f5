package session

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hrms-backend-go/internal/domain/auth"
	"github.com/peopleops/hrms-backend-go/internal/domain/user"
	"github.com/peopleops/hrms-backend-go/internal/pkg/sse"
)

// gatedFetcher blocks each FetchProfile call until the test releases
// that user's gate, so fetch completion order can be forced.
type gatedFetcher struct {
	mu       sync.Mutex
	gates    map[string]chan struct{}
	profiles map[string]user.Profile
	errs     map[string]error
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{
		gates:    make(map[string]chan struct{}),
		profiles: make(map[string]user.Profile),
		errs:     make(map[string]error),
	}
}

func (f *gatedFetcher) gate(userID string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gates[userID] == nil {
		f.gates[userID] = make(chan struct{})
	}
	return f.gates[userID]
}

func (f *gatedFetcher) release(userID string) {
	close(f.gate(userID))
}

func (f *gatedFetcher) FetchProfile(ctx context.Context, userID string) (user.Profile, error) {
	select {
	case <-f.gate(userID):
	case <-ctx.Done():
		return user.Profile{}, ctx.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[userID]; err != nil {
		return user.Profile{}, err
	}
	return f.profiles[userID], nil
}

func settled(r *Reconciler) func() bool {
	return func() bool { return !r.Snapshot().Loading }
}

func TestStaleFetchDiscarded(t *testing.T) {
	fetcher := newGatedFetcher()
	fetcher.profiles["user-a"] = user.Profile{ID: "user-a", FullName: "Alice", Role: user.RoleAdmin}
	fetcher.profiles["user-b"] = user.Profile{ID: "user-b", FullName: "Bob", Role: user.RoleEmployee}

	r := NewReconciler(fetcher, nil, nil)
	r.Init(context.Background(), nil)
	defer r.Dispose()

	r.OnSessionChange(sse.EventSignedIn, &Session{UserID: "user-a"})
	r.OnSessionChange(sse.EventSignedIn, &Session{UserID: "user-b"})

	// B's fetch resolves first, then A's slow fetch straggles in.
	fetcher.release("user-b")
	require.Eventually(t, settled(r), time.Second, time.Millisecond)
	fetcher.release("user-a")

	// A's completion must not overwrite B's profile.
	assert.Never(t, func() bool {
		snap := r.Snapshot()
		return snap.Profile != nil && snap.Profile.ID == "user-a"
	}, 100*time.Millisecond, 5*time.Millisecond)

	snap := r.Snapshot()
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "user-b", snap.Profile.ID)
	assert.Equal(t, "Bob", snap.Profile.FullName)
	require.NotNil(t, snap.Session)
	assert.Equal(t, "user-b", snap.Session.UserID)
}

func TestSignOutClearsState(t *testing.T) {
	fetcher := newGatedFetcher()
	fetcher.profiles["user-a"] = user.Profile{ID: "user-a", FullName: "Alice"}

	r := NewReconciler(fetcher, nil, nil)
	r.Init(context.Background(), nil)
	defer r.Dispose()

	r.OnSessionChange(sse.EventSignedIn, &Session{UserID: "user-a"})
	fetcher.release("user-a")
	require.Eventually(t, settled(r), time.Second, time.Millisecond)

	r.OnSessionChange(sse.EventSignedOut, nil)

	snap := r.Snapshot()
	assert.Nil(t, snap.Session)
	assert.Nil(t, snap.Profile)
	assert.False(t, snap.Loading)
	assert.NoError(t, snap.Err)
}

func TestSignOutDuringFetchWins(t *testing.T) {
	fetcher := newGatedFetcher()
	fetcher.profiles["user-a"] = user.Profile{ID: "user-a"}

	r := NewReconciler(fetcher, nil, nil)
	r.Init(context.Background(), nil)
	defer r.Dispose()

	r.OnSessionChange(sse.EventSignedIn, &Session{UserID: "user-a"})
	r.OnSessionChange(sse.EventSignedOut, nil)
	fetcher.release("user-a")

	assert.Never(t, func() bool {
		return r.Snapshot().Profile != nil
	}, 100*time.Millisecond, 5*time.Millisecond)
}

func TestMissingProfileIsNormalEmptyState(t *testing.T) {
	fetcher := newGatedFetcher()
	fetcher.errs["user-a"] = user.ErrUserNotFound

	r := NewReconciler(fetcher, nil, nil)
	r.Init(context.Background(), nil)
	defer r.Dispose()

	r.OnSessionChange(sse.EventSignedIn, &Session{UserID: "user-a"})
	fetcher.release("user-a")
	require.Eventually(t, settled(r), time.Second, time.Millisecond)

	snap := r.Snapshot()
	assert.Nil(t, snap.Profile)
	assert.NoError(t, snap.Err)
	require.NotNil(t, snap.Session)
}

func TestConnectionFailureSurfacesUnreachable(t *testing.T) {
	fetcher := newGatedFetcher()
	fetcher.errs["user-a"] = &net.OpError{Op: "dial", Err: errors.New("connection refused")}

	r := NewReconciler(fetcher, nil, nil)
	r.Init(context.Background(), nil)
	defer r.Dispose()

	r.OnSessionChange(sse.EventSignedIn, &Session{UserID: "user-a"})
	fetcher.release("user-a")
	require.Eventually(t, settled(r), time.Second, time.Millisecond)

	snap := r.Snapshot()
	assert.Nil(t, snap.Profile)
	assert.ErrorIs(t, snap.Err, auth.ErrBackendUnreachable)
}

func TestGenericFailureWrapped(t *testing.T) {
	fetcher := newGatedFetcher()
	fetcher.errs["user-a"] = errors.New("syntax error at or near")

	r := NewReconciler(fetcher, nil, nil)
	r.Init(context.Background(), nil)
	defer r.Dispose()

	r.OnSessionChange(sse.EventSignedIn, &Session{UserID: "user-a"})
	fetcher.release("user-a")
	require.Eventually(t, settled(r), time.Second, time.Millisecond)

	assert.ErrorIs(t, r.Snapshot().Err, auth.ErrProfileLoadFailed)
}

func TestHubEventsDriveReconciler(t *testing.T) {
	fetcher := newGatedFetcher()
	fetcher.profiles["user-a"] = user.Profile{ID: "user-a", FullName: "Alice"}
	fetcher.release("user-a")

	hub := sse.NewHub()
	r := NewReconciler(fetcher, hub, nil)
	r.Init(context.Background(), &Session{UserID: "user-a"})
	defer r.Dispose()

	require.Eventually(t, func() bool {
		snap := r.Snapshot()
		return !snap.Loading && snap.Profile != nil
	}, time.Second, time.Millisecond)

	hub.Publish("user-a", sse.Event{UserID: "user-a", Event: sse.EventSignedOut})

	require.Eventually(t, func() bool {
		snap := r.Snapshot()
		return snap.Session == nil && snap.Profile == nil
	}, time.Second, time.Millisecond)
}

func TestDisposeInvalidatesInFlightFetch(t *testing.T) {
	fetcher := newGatedFetcher()
	fetcher.profiles["user-a"] = user.Profile{ID: "user-a"}

	r := NewReconciler(fetcher, nil, nil)
	r.Init(context.Background(), nil)

	r.OnSessionChange(sse.EventSignedIn, &Session{UserID: "user-a"})
	r.Dispose()
	fetcher.release("user-a")

	assert.Never(t, func() bool {
		return r.Snapshot().Profile != nil
	}, 100*time.Millisecond, 5*time.Millisecond)

	// Idempotent.
	r.Dispose()
}
