package auth

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/newsroom/internal/apperr"
	"github.com/DjordjeVuckovic/newsroom/internal/backend"
	"github.com/DjordjeVuckovic/newsroom/internal/domain"
	"github.com/DjordjeVuckovic/newsroom/internal/quota"
	"github.com/DjordjeVuckovic/newsroom/internal/storage"
	"github.com/DjordjeVuckovic/newsroom/internal/storage/in_mem"
	testutil "github.com/DjordjeVuckovic/newsroom/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	fb      *testutil.FakeBackend
	store   *in_mem.InMemStorer
	tracker *quota.Tracker
	session *Session
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	fb := testutil.NewFakeBackendWithCleanup(t)
	store := in_mem.NewInMemStorer()
	tracker := quota.NewTracker(store)

	client, err := backend.NewClient(fb.URL())
	require.NoError(t, err)

	return fixture{fb: fb, store: store, tracker: tracker, session: NewSession(client, store, tracker)}
}

func TestSession_LoginClearsGuestQuota(t *testing.T) {
	f := newFixture(t)
	f.fb.AddUser("ana", "ana@example.com", "pw")
	require.NoError(t, f.store.Set(storage.KeyGuestAnalysisCount, "2"))

	var changes []*domain.User
	f.session.OnAuthChange(func(u *domain.User) { changes = append(changes, u) })

	user, err := f.session.Login(context.Background(), "ana@example.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, "ana", user.Username)
	assert.True(t, f.session.IsAuthenticated())
	assert.Equal(t, 0, f.tracker.Current())
	assert.NotEmpty(t, f.session.Token())
	require.Len(t, changes, 1)
	assert.Equal(t, "ana", changes[0].Username)
}

func TestSession_LogoutKeepsQuotaCleared(t *testing.T) {
	f := newFixture(t)
	f.fb.AddUser("ana", "ana@example.com", "pw")
	require.NoError(t, f.store.Set(storage.KeyGuestAnalysisCount, "2"))

	_, err := f.session.Login(context.Background(), "ana@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, f.session.Logout())

	assert.False(t, f.session.IsAuthenticated())
	assert.Empty(t, f.session.Token())
	assert.Equal(t, 0, f.tracker.Current())
}

func TestSession_LoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.fb.AddUser("ana", "ana@example.com", "pw")

	_, err := f.session.Login(context.Background(), "ana@example.com", "nope")
	assert.True(t, apperr.IsKind(err, apperr.KindAuth))
	assert.False(t, f.session.IsAuthenticated())
}

func TestSession_LoginValidatesInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.session.Login(context.Background(), " ", "pw")
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Zero(t, f.fb.TotalCalls())
}

func TestSession_RestoreWithValidToken(t *testing.T) {
	f := newFixture(t)
	token := f.fb.AddUser("bo", "bo@example.com", "pw")
	require.NoError(t, f.store.Set(storage.KeyToken, token))

	f.session.Restore(context.Background())

	require.NotNil(t, f.session.CurrentUser())
	assert.Equal(t, "bo", f.session.CurrentUser().Username)
}

func TestSession_RestoreWithStaleTokenLogsOut(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Set(storage.KeyToken, "expired"))

	f.session.Restore(context.Background())

	assert.False(t, f.session.IsAuthenticated())
	_, ok := f.store.Get(storage.KeyToken)
	assert.False(t, ok)
}

func TestSession_RestoreWithoutToken(t *testing.T) {
	f := newFixture(t)

	f.session.Restore(context.Background())

	assert.Zero(t, f.fb.TotalCalls())
}

func TestSession_RegisterLogsIn(t *testing.T) {
	f := newFixture(t)

	user, err := f.session.Register(context.Background(), "cy", "cy@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "cy", user.Username)
	assert.True(t, f.session.IsAuthenticated())
}

func TestSession_PasswordReset(t *testing.T) {
	f := newFixture(t)
	f.fb.AddUser("ana", "ana@example.com", "pw")
	ctx := context.Background()

	resp, err := f.session.ForgotPassword(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NoError(t, f.session.ResetPassword(ctx, resp.ResetToken, "new"))

	_, err = f.session.Login(ctx, "ana@example.com", "new")
	assert.NoError(t, err)

	err = f.session.ResetPassword(ctx, "", "x")
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestSession_UnsubscribeReleasesSlot(t *testing.T) {
	f := newFixture(t)

	var calls int
	keep := f.session.OnAuthChange(func(*domain.User) { calls++ })
	defer keep()
	for i := 0; i < 100; i++ {
		unsubscribe := f.session.OnAuthChange(func(*domain.User) { t.Error("removed subscriber called") })
		unsubscribe()
	}

	require.NoError(t, f.session.Logout())

	assert.Equal(t, 1, calls)
	f.session.mu.RLock()
	defer f.session.mu.RUnlock()
	assert.Len(t, f.session.subscribers, 1)
}
