package collection

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/newsroom/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	mu        sync.Mutex
	listCalls int
	listFn    func(call int) ([]domain.Article, error)
	deleted   []domain.ArticleID
	deleteErr error
}

func (r *stubRepo) List(_ context.Context) ([]domain.Article, error) {
	r.mu.Lock()
	r.listCalls++
	call := r.listCalls
	r.mu.Unlock()

	if r.listFn == nil {
		return nil, nil
	}
	return r.listFn(call)
}

func (r *stubRepo) GetByID(_ context.Context, _ domain.ArticleID) (*domain.Article, error) {
	return nil, errors.New("not used")
}

func (r *stubRepo) Delete(_ context.Context, id domain.ArticleID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, id)
	return nil
}

var t0 = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func at(hours int) time.Time {
	return t0.Add(time.Duration(hours) * time.Hour)
}

func ids(articles []domain.Article) []domain.ArticleID {
	out := make([]domain.ArticleID, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.ID)
	}
	return out
}

func TestStore_LoadSortsNewestFirst(t *testing.T) {
	repo := &stubRepo{listFn: func(int) ([]domain.Article, error) {
		return []domain.Article{
			{ID: "1", CreatedAt: at(1)},
			{ID: "3", CreatedAt: at(3)},
			{ID: "2", CreatedAt: at(2)},
		}, nil
	}}
	s := NewStore(repo)

	list, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.ArticleID{"3", "2", "1"}, ids(list))
}

func TestStore_LoadFailure(t *testing.T) {
	repo := &stubRepo{listFn: func(int) ([]domain.Article, error) {
		return nil, errors.New("boom")
	}}
	s := NewStore(repo)

	_, err := s.Load(context.Background())
	assert.Error(t, err)
	assert.Empty(t, s.Articles())
}

func TestStore_PinnedBeforeUnpinned(t *testing.T) {
	repo := &stubRepo{listFn: func(int) ([]domain.Article, error) {
		return []domain.Article{
			{ID: "t1", CreatedAt: at(1)},
			{ID: "t2", CreatedAt: at(2)},
			{ID: "t3", CreatedAt: at(3)},
		}, nil
	}}
	s := NewStore(repo)
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	require.True(t, s.TogglePin("t1"))
	require.True(t, s.TogglePin("t2"))

	assert.Equal(t, []domain.ArticleID{"t2", "t1", "t3"}, ids(s.Articles()))

	require.True(t, s.TogglePin("t2"))
	assert.Equal(t, []domain.ArticleID{"t1", "t3", "t2"}, ids(s.Articles()))

	assert.False(t, s.TogglePin("missing"))
}

func TestStore_ReloadDropsPins(t *testing.T) {
	repo := &stubRepo{listFn: func(int) ([]domain.Article, error) {
		return []domain.Article{{ID: "1", CreatedAt: at(1)}, {ID: "2", CreatedAt: at(2)}}, nil
	}}
	s := NewStore(repo)
	_, _ = s.Load(context.Background())
	s.TogglePin("1")

	list, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.ArticleID{"2", "1"}, ids(list))
	assert.False(t, list[1].Pinned)
}

func TestStore_CreateDraft(t *testing.T) {
	s := NewStore(&stubRepo{}, WithClock(func() time.Time { return t0 }))

	first := s.CreateDraft()
	second := s.CreateDraft()

	assert.True(t, first.IsDraft())
	assert.True(t, second.IsDraft())
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, domain.DraftTitle, first.Title)
	assert.Empty(t, first.Content)
	assert.False(t, first.Pinned)
	assert.Equal(t, []domain.ArticleID{second.ID, first.ID}, ids(s.Articles()))
}

func TestStore_DraftsSurviveLoad(t *testing.T) {
	repo := &stubRepo{listFn: func(int) ([]domain.Article, error) {
		return []domain.Article{{ID: "1", CreatedAt: at(-5)}}, nil
	}}
	s := NewStore(repo, WithClock(func() time.Time { return t0 }))
	draft := s.CreateDraft()

	list, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.ArticleID{draft.ID, "1"}, ids(list))
}

func TestStore_RemoveDraftIsLocal(t *testing.T) {
	repo := &stubRepo{}
	s := NewStore(repo)
	draft := s.CreateDraft()

	require.NoError(t, s.Remove(context.Background(), draft.ID))

	assert.Empty(t, s.Articles())
	assert.Empty(t, repo.deleted)
	assert.Zero(t, repo.listCalls)
}

func TestStore_RemovePersistedDeletesAndReloads(t *testing.T) {
	repo := &stubRepo{}
	repo.listFn = func(call int) ([]domain.Article, error) {
		if call == 1 {
			return []domain.Article{{ID: "1", CreatedAt: at(1)}, {ID: "2", CreatedAt: at(2)}}, nil
		}
		return []domain.Article{{ID: "2", CreatedAt: at(2)}}, nil
	}
	s := NewStore(repo)
	_, _ = s.Load(context.Background())

	require.NoError(t, s.Remove(context.Background(), "1"))

	assert.Equal(t, []domain.ArticleID{"1"}, repo.deleted)
	assert.Equal(t, 2, repo.listCalls)
	assert.Equal(t, []domain.ArticleID{"2"}, ids(s.Articles()))
}

func TestStore_RemoveFailureKeepsEntry(t *testing.T) {
	repo := &stubRepo{deleteErr: errors.New("502")}
	repo.listFn = func(int) ([]domain.Article, error) {
		return []domain.Article{{ID: "1", CreatedAt: at(1)}}, nil
	}
	s := NewStore(repo)
	_, _ = s.Load(context.Background())

	err := s.Remove(context.Background(), "1")
	assert.Error(t, err)
	assert.Equal(t, []domain.ArticleID{"1"}, ids(s.Articles()))
}

func TestStore_DeleteDoesNotReload(t *testing.T) {
	repo := &stubRepo{}
	repo.listFn = func(int) ([]domain.Article, error) {
		return []domain.Article{{ID: "1", CreatedAt: at(1)}, {ID: "2", CreatedAt: at(2)}}, nil
	}
	s := NewStore(repo)
	_, _ = s.Load(context.Background())

	require.NoError(t, s.Delete(context.Background(), "1"))

	assert.Equal(t, []domain.ArticleID{"1"}, repo.deleted)
	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, []domain.ArticleID{"2"}, ids(s.Articles()))
}

func TestStore_Filter(t *testing.T) {
	repo := &stubRepo{listFn: func(int) ([]domain.Article, error) {
		return []domain.Article{
			{ID: "1", Title: "Budget Vote", CreatedAt: at(3)},
			{ID: "2", Title: "Weather", CreatedAt: at(2)},
			{ID: "3", Title: "city budget hearing", CreatedAt: at(1)},
		}, nil
	}}
	s := NewStore(repo)
	_, _ = s.Load(context.Background())

	assert.Equal(t, []domain.ArticleID{"1", "3"}, ids(s.Filter("BUDGET")))
	assert.Equal(t, []domain.ArticleID{"1", "2", "3"}, ids(s.Filter("")))
	assert.Empty(t, s.Filter("sports"))
}

func TestStore_StaleLoadIsDropped(t *testing.T) {
	slow := make(chan struct{})
	started := make(chan struct{})
	repo := &stubRepo{}
	repo.listFn = func(call int) ([]domain.Article, error) {
		if call == 1 {
			close(started)
			<-slow
			return []domain.Article{{ID: "old", CreatedAt: at(1)}}, nil
		}
		return []domain.Article{{ID: "fresh", CreatedAt: at(2)}}, nil
	}
	s := NewStore(repo)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Load(context.Background())
	}()
	<-started

	_, err := s.Load(context.Background())
	require.NoError(t, err)

	close(slow)
	<-done

	assert.Equal(t, []domain.ArticleID{"fresh"}, ids(s.Articles()))
}

func TestStore_UpsertKeepsPin(t *testing.T) {
	s := NewStore(&stubRepo{})
	s.Upsert(domain.Article{ID: "1", Title: "a", CreatedAt: at(1)})
	s.TogglePin("1")

	s.Upsert(domain.Article{ID: "1", Title: "b", CreatedAt: at(1)})

	a, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "b", a.Title)
	assert.True(t, a.Pinned)
}
