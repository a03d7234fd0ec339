package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderacademy/backoffice/internal/domain"
)

// fakeChallengeStore mirrors the conditional-update semantics of the MySQL
// repository: IncrementAttempts and MarkUsed mutate under one lock, and
// MarkUsed on an already-used row reports no rows affected.
type fakeChallengeStore struct {
	mu         sync.Mutex
	challenges map[uuid.UUID]*domain.OTPChallenge
}

func newFakeChallengeStore() *fakeChallengeStore {
	return &fakeChallengeStore{challenges: make(map[uuid.UUID]*domain.OTPChallenge)}
}

func (f *fakeChallengeStore) Create(_ context.Context, challenge *domain.OTPChallenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	clone := *challenge
	f.challenges[challenge.ID] = &clone
	return nil
}

func (f *fakeChallengeStore) GetActiveByEmail(_ context.Context, email string, now time.Time) (*domain.OTPChallenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var latest *domain.OTPChallenge
	for _, c := range f.challenges {
		if c.Email != email || c.IsUsed || !c.ExpiresAt.After(now) {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}

	clone := *latest
	return &clone, nil
}

func (f *fakeChallengeStore) DeleteUnusedByEmail(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, c := range f.challenges {
		if c.Email == email && !c.IsUsed {
			delete(f.challenges, id)
		}
	}
	return nil
}

func (f *fakeChallengeStore) IncrementAttempts(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.challenges[id]
	if !ok || c.IsUsed {
		return domain.ErrNoRowsAffected
	}
	if c.Attempts+1 >= domain.OTPMaxAttempts {
		c.IsUsed = true
	}
	if c.Attempts < domain.OTPMaxAttempts {
		c.Attempts++
	}
	return nil
}

func (f *fakeChallengeStore) MarkUsed(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.challenges[id]
	if !ok || c.IsUsed {
		return domain.ErrNoRowsAffected
	}
	c.IsUsed = true
	return nil
}

func (f *fakeChallengeStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for id, c := range f.challenges {
		if !c.ExpiresAt.After(now) {
			delete(f.challenges, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeChallengeStore) activeCount(email string, now time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, c := range f.challenges {
		if c.Email == email && c.Active(now) {
			count++
		}
	}
	return count
}

type sequenceGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *sequenceGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++
	return strconv.Itoa(100000 + g.next - 1), nil
}

func newTestOTPService(store *fakeChallengeStore) *otpService {
	svc := newOTPService(store, &sequenceGenerator{}, 10*time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	return svc
}

func TestOTPIssueAndVerify(t *testing.T) {
	store := newFakeChallengeStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "Admin@Example.com ")
	require.NoError(t, err)
	require.Len(t, code, 6)

	// Case and whitespace in the email must not matter.
	require.NoError(t, svc.Verify(ctx, " ADMIN@example.COM", code))
}

func TestOTPVerifyUnknownEmail(t *testing.T) {
	svc := newTestOTPService(newFakeChallengeStore())

	err := svc.Verify(context.Background(), "nobody@example.com", "123456")
	assert.ErrorIs(t, err, ErrOTPNotFoundOrExpired)
}

func TestOTPNoReplay(t *testing.T) {
	store := newFakeChallengeStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "admin@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Verify(ctx, "admin@example.com", code))

	// The consumed code must not work a second time.
	err = svc.Verify(ctx, "admin@example.com", code)
	assert.ErrorIs(t, err, ErrOTPNotFoundOrExpired)
}

func TestOTPIssueSupersedesPreviousCode(t *testing.T) {
	store := newFakeChallengeStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	first, err := svc.Issue(ctx, "admin@example.com")
	require.NoError(t, err)

	second, err := svc.Issue(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	assert.Equal(t, 1, store.activeCount("admin@example.com", svc.now()))

	err = svc.Verify(ctx, "admin@example.com", first)
	assert.ErrorIs(t, err, ErrOTPInvalidCode)

	require.NoError(t, svc.Verify(ctx, "admin@example.com", second))
}

func TestOTPAttemptCap(t *testing.T) {
	store := newFakeChallengeStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "admin@example.com")
	require.NoError(t, err)

	// Wrong guesses up to the cap each read as a plain mismatch.
	for i := 0; i < domain.OTPMaxAttempts; i++ {
		err := svc.Verify(ctx, "admin@example.com", "000000")
		assert.ErrorIs(t, err, ErrOTPInvalidCode, "attempt %d", i+1)
	}

	// The exhausted challenge rejects everything, including the right code.
	err = svc.Verify(ctx, "admin@example.com", code)
	assert.ErrorIs(t, err, ErrOTPNotFoundOrExpired)
}

func TestOTPThirdWrongGuessFinalizes(t *testing.T) {
	store := newFakeChallengeStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	_, err := svc.Issue(ctx, "admin@example.com")
	require.NoError(t, err)

	for i := 0; i < domain.OTPMaxAttempts; i++ {
		_ = svc.Verify(ctx, "admin@example.com", "000000")
	}

	assert.Equal(t, 0, store.activeCount("admin@example.com", svc.now()))
}

func TestOTPExpiry(t *testing.T) {
	store := newFakeChallengeStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "admin@example.com")
	require.NoError(t, err)

	issued := svc.now()
	svc.now = func() time.Time { return issued.Add(10*time.Minute + time.Second) }

	err = svc.Verify(ctx, "admin@example.com", code)
	assert.ErrorIs(t, err, ErrOTPNotFoundOrExpired)
}

func TestOTPVerifyTrimsSubmittedCode(t *testing.T) {
	store := newFakeChallengeStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "admin@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Verify(ctx, "admin@example.com", " "+code+" "))
}

func TestOTPConcurrentVerify(t *testing.T) {
	store := newFakeChallengeStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "admin@example.com")
	require.NoError(t, err)

	const goroutines = 16

	var wg sync.WaitGroup
	successes := make(chan struct{}, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if svc.Verify(ctx, "admin@example.com", code) == nil {
				successes <- struct{}{}
			}
		}()
	}

	wg.Wait()
	close(successes)

	// Exactly one concurrent submission of the right code may win.
	count := 0
	for range successes {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestOTPConcurrentWrongCodeNearCap(t *testing.T) {
	store := newFakeChallengeStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	_, err := svc.Issue(ctx, "admin@example.com")
	require.NoError(t, err)

	// Burn attempts up to one short of the cap.
	for i := 0; i < domain.OTPMaxAttempts-1; i++ {
		err := svc.Verify(ctx, "admin@example.com", "000000")
		require.ErrorIs(t, err, ErrOTPInvalidCode)
	}

	const goroutines = 16

	var wg sync.WaitGroup
	verdicts := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			verdicts <- svc.Verify(ctx, "admin@example.com", "000000")
		}()
	}

	wg.Wait()
	close(verdicts)

	// Every caller gets a verdict no matter who lands the final increment.
	for err := range verdicts {
		assert.True(t,
			errors.Is(err, ErrOTPInvalidCode) ||
				errors.Is(err, ErrOTPNotFoundOrExpired) ||
				errors.Is(err, ErrOTPTooManyAttempts),
			"unexpected error: %v", err)
	}

	assert.Equal(t, 0, store.activeCount("admin@example.com", svc.now()))

	// The record may only end finalized, never capped while still active.
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, c := range store.challenges {
		if c.Attempts >= domain.OTPMaxAttempts {
			assert.True(t, c.IsUsed)
		}
	}
}

// staleReadStore replays a fixed snapshot from GetActiveByEmail while the
// conditional writes go against the live store, reproducing a verify whose
// challenge another request consumes between the read and the increment.
type staleReadStore struct {
	*fakeChallengeStore
	snapshot *domain.OTPChallenge
}

func (s *staleReadStore) GetActiveByEmail(context.Context, string, time.Time) (*domain.OTPChallenge, error) {
	clone := *s.snapshot
	return &clone, nil
}

func TestOTPVerifyChallengeConsumedAfterRead(t *testing.T) {
	store := newFakeChallengeStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	_, err := svc.Issue(ctx, "admin@example.com")
	require.NoError(t, err)

	snapshot, err := store.GetActiveByEmail(ctx, "admin@example.com", svc.now())
	require.NoError(t, err)

	// Another request wins the race and consumes the challenge.
	require.NoError(t, store.MarkUsed(ctx, snapshot.ID))

	svc.challenges = &staleReadStore{fakeChallengeStore: store, snapshot: snapshot}

	// The losing request still gets a verdict, not a storage error.
	err = svc.Verify(ctx, "admin@example.com", "000000")
	assert.ErrorIs(t, err, ErrOTPNotFoundOrExpired)
}

func TestOTPDeleteExpiredSweep(t *testing.T) {
	store := newFakeChallengeStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	_, err := svc.Issue(ctx, "old@example.com")
	require.NoError(t, err)

	deleted, err := store.DeleteExpired(ctx, svc.now().Add(11*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
