// Package collection holds the ordered list of known articles: the persisted
// ones from the backend plus local drafts.
//
// Pin state is local only. It is not sent to the backend, so a reload drops
// the pins of persisted articles.
package collection

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/newsroom/internal/backend"
	"github.com/DjordjeVuckovic/newsroom/internal/domain"
)

type StoreOption func(s *Store)

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

type Store struct {
	repo backend.ArticleRepository
	now  func() time.Time

	mu        sync.Mutex
	articles  []domain.Article
	loadSeq   uint64
	lastDraft int64
}

func NewStore(repo backend.ArticleRepository, opts ...StoreOption) *Store {
	s := &Store{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Articles returns a copy of the current list in display order.
func (s *Store) Articles() []domain.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.articles)
}

func (s *Store) Get(id domain.ArticleID) (domain.Article, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.articles[i], true
	}
	return domain.Article{}, false
}

// Load replaces the persisted part of the list with the backend's. Drafts
// stay. When a newer Load started before this one finished, its result wins
// and this response is dropped.
func (s *Store) Load(ctx context.Context) ([]domain.Article, error) {
	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.mu.Unlock()

	fetched, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.loadSeq {
		slog.Debug("Dropping superseded article list", "seq", seq, "latest", s.loadSeq)
		return clone(s.articles), nil
	}

	next := make([]domain.Article, 0, len(fetched)+len(s.articles))
	for _, a := range s.articles {
		if a.IsDraft() {
			next = append(next, a)
		}
	}
	next = append(next, fetched...)
	sortArticles(next)

	s.articles = next
	return clone(next), nil
}

// CreateDraft prepends an empty draft with a fresh local id.
func (s *Store) CreateDraft() domain.Article {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	draft := domain.Article{
		ID:        s.nextDraftID(now),
		Title:     domain.DraftTitle,
		CreatedAt: now.UTC(),
	}

	s.articles = append([]domain.Article{draft}, s.articles...)
	return draft
}

// Delete removes a draft locally, or a persisted article on the backend and
// then from memory. The list is not reloaded.
func (s *Store) Delete(ctx context.Context, id domain.ArticleID) error {
	if !id.IsDraft() {
		if err := s.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete article %s: %w", id, err)
		}
	}
	s.Discard(id)
	return nil
}

// Remove is Delete followed by a reload for persisted articles.
func (s *Store) Remove(ctx context.Context, id domain.ArticleID) error {
	if err := s.Delete(ctx, id); err != nil {
		return err
	}
	if id.IsDraft() {
		return nil
	}

	if _, err := s.Load(ctx); err != nil {
		return fmt.Errorf("reload after delete: %w", err)
	}
	return nil
}

// Discard drops an entry from memory without contacting the backend.
func (s *Store) Discard(id domain.ArticleID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.articles = append(s.articles[:i:i], s.articles[i+1:]...)
	return true
}

// Upsert puts a persisted article into the list, replacing an entry with the
// same id.
func (s *Store) Upsert(a domain.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(a.ID); i >= 0 {
		a.Pinned = s.articles[i].Pinned
		s.articles[i] = a
	} else {
		s.articles = append(s.articles, a)
	}
	sortArticles(s.articles)
}

func (s *Store) TogglePin(id domain.ArticleID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.articles[i].Pinned = !s.articles[i].Pinned
	sortArticles(s.articles)
	return true
}

// Filter matches query case-insensitively against titles. An empty query
// returns the whole list.
func (s *Store) Filter(query string) []domain.Article {
	s.mu.Lock()
	defer s.mu.Unlock()

	if query == "" {
		return clone(s.articles)
	}

	q := strings.ToLower(query)
	var out []domain.Article
	for _, a := range s.articles {
		if strings.Contains(strings.ToLower(a.Title), q) {
			out = append(out, a)
		}
	}
	return out
}

// nextDraftID must be called with mu held. Ids are millisecond timestamps,
// bumped when two drafts land in the same millisecond.
func (s *Store) nextDraftID(now time.Time) domain.ArticleID {
	ms := now.UnixMilli()
	if ms <= s.lastDraft {
		ms = s.lastDraft + 1
	}
	s.lastDraft = ms
	return domain.ArticleID(domain.DraftPrefix + strconv.FormatInt(ms, 10))
}

func (s *Store) indexOf(id domain.ArticleID) int {
	for i, a := range s.articles {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// sortArticles orders pinned before unpinned, then newest first.
func sortArticles(articles []domain.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func clone(in []domain.Article) []domain.Article {
	if in == nil {
		return nil
	}
	out := make([]domain.Article, len(in))
	copy(out, in)
	return out
}
