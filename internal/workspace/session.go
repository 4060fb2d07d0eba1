// Package workspace owns the editing session: the current input, the selected
// article, its analysis and rewrite, and the rules that keep them consistent
// with the backend.
package workspace

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/DjordjeVuckovic/newsroom/internal/backend"
	"github.com/DjordjeVuckovic/newsroom/internal/collection"
	"github.com/DjordjeVuckovic/newsroom/internal/domain"
	"github.com/DjordjeVuckovic/newsroom/internal/quota"
	"github.com/DjordjeVuckovic/newsroom/internal/validation"
)

// Identity reports the logged in user, nil when anonymous.
type Identity interface {
	CurrentUser() *domain.User
}

type authNotifier interface {
	OnAuthChange(fn func(user *domain.User)) (unsubscribe func())
}

type Config struct {
	GuestLimit   int
	Policy       validation.Policy
	ShareBaseURL string
}

func DefaultConfig() Config {
	return Config{
		GuestLimit: quota.DefaultGuestLimit,
		Policy:     validation.DefaultPolicy(),
	}
}

type Deps struct {
	Analyzer backend.Analyzer
	Rewriter backend.Rewriter
	Articles backend.ArticleRepository
	// Editor is optional; without it SaveContent is unavailable.
	Editor     backend.ArticleEditor
	Collection *collection.Store
	Quota      *quota.Tracker
	Identity   Identity
}

type Session struct {
	analyzer   backend.Analyzer
	rewriter   backend.Rewriter
	repo       backend.ArticleRepository
	editor     backend.ArticleEditor
	collection *collection.Store
	quota      *quota.Tracker
	identity   Identity
	cfg        Config

	mu            sync.Mutex
	state         State
	inputText     string
	inputLink     string
	selected      domain.ArticleID
	analysis      *domain.AnalysisResult
	rewrite       *domain.RewriteResult
	validationErr string
	notice        string
	query         string
	selectSeq     uint64

	subMu       sync.Mutex
	subscribers map[int]func(Event)
	nextSub     int
	detach      []func()
}

func New(deps Deps, cfg Config) (*Session, error) {
	switch {
	case deps.Analyzer == nil:
		return nil, errors.New("workspace: analyzer is required")
	case deps.Rewriter == nil:
		return nil, errors.New("workspace: rewriter is required")
	case deps.Articles == nil:
		return nil, errors.New("workspace: article repository is required")
	case deps.Collection == nil:
		return nil, errors.New("workspace: collection store is required")
	case deps.Quota == nil:
		return nil, errors.New("workspace: quota tracker is required")
	case deps.Identity == nil:
		return nil, errors.New("workspace: identity is required")
	}
	if cfg.GuestLimit <= 0 {
		cfg.GuestLimit = quota.DefaultGuestLimit
	}
	if cfg.Policy == (validation.Policy{}) {
		cfg.Policy = validation.DefaultPolicy()
	}
	cfg.ShareBaseURL = strings.TrimRight(cfg.ShareBaseURL, "/")

	s := &Session{
		analyzer:    deps.Analyzer,
		rewriter:    deps.Rewriter,
		repo:        deps.Articles,
		editor:      deps.Editor,
		collection:  deps.Collection,
		quota:       deps.Quota,
		identity:    deps.Identity,
		cfg:         cfg,
		subscribers: make(map[int]func(Event)),
	}

	s.detach = append(s.detach, s.quota.Subscribe(func(count int) {
		s.publish(Event{Kind: EventQuotaChanged, Count: count})
	}))
	if n, ok := deps.Identity.(authNotifier); ok {
		s.detach = append(s.detach, n.OnAuthChange(func(user *domain.User) {
			s.publish(Event{Kind: EventAuthChanged, User: user})
		}))
	}

	return s, nil
}

// Close detaches the session from the quota tracker and auth notifications.
func (s *Session) Close() {
	for _, fn := range s.detach {
		fn()
	}
	s.detach = nil
}

// Subscribe registers fn for every session event. fn runs on the goroutine
// that caused the event and must not block.
func (s *Session) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Session) publish(ev Event) {
	s.subMu.Lock()
	subs := make([]func(Event), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

func (s *Session) changed() {
	s.publish(Event{Kind: EventChanged})
}

func (s *Session) SetText(text string) {
	s.mu.Lock()
	s.inputText = text
	s.mu.Unlock()
	s.changed()
}

func (s *Session) SetLink(link string) {
	s.mu.Lock()
	s.inputLink = link
	s.mu.Unlock()
	s.changed()
}

func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	s.query = query
	s.mu.Unlock()
	s.changed()
}

// RequestPasswordHelp asks whoever renders the session to open the
// forgot-password flow.
func (s *Session) RequestPasswordHelp() {
	s.publish(Event{Kind: EventOpenForgotPassword})
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) GuestLimit() int {
	return s.cfg.GuestLimit
}

// Snapshot is everything a renderer needs, consistent at one instant.
type Snapshot struct {
	State           State                  `json:"state"`
	InputText       string                 `json:"inputText"`
	InputLink       string                 `json:"inputLink"`
	WordCount       int                    `json:"wordCount"`
	CharCount       int                    `json:"charCount"`
	SelectedID      domain.ArticleID       `json:"selectedArticleId,omitempty"`
	Analysis        *domain.AnalysisResult `json:"analysis,omitempty"`
	BiasBand        string                 `json:"biasBand,omitempty"`
	Rewrite         *domain.RewriteResult  `json:"rewrite,omitempty"`
	ValidationError string                 `json:"validationError,omitempty"`
	Notice          string                 `json:"notice,omitempty"`
	Query           string                 `json:"query,omitempty"`
	Articles        []domain.Article       `json:"articles"`
	Authenticated   bool                   `json:"authenticated"`
	Username        string                 `json:"username,omitempty"`
	GuestCount      int                    `json:"guestCount"`
	GuestLimit      int                    `json:"guestLimit"`
}

// HasAnalysis reports whether an analysis for the current selection is shown.
func (s Snapshot) HasAnalysis() bool {
	return s.Analysis != nil
}

// Snapshot hides an analysis or rewrite that does not belong to the current
// selection.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		State:           s.state,
		InputText:       s.inputText,
		InputLink:       s.inputLink,
		SelectedID:      s.selected,
		ValidationError: s.validationErr,
		Notice:          s.notice,
		Query:           s.query,
	}
	if s.analysis.BelongsTo(s.selected) {
		a := *s.analysis
		snap.Analysis = &a
		snap.BiasBand = a.Band().String()
	}
	if s.rewrite != nil && s.rewrite.ArticleID == s.selected && !s.selected.IsZero() {
		r := *s.rewrite
		snap.Rewrite = &r
	}
	query := s.query
	s.mu.Unlock()

	trimmed := strings.TrimSpace(snap.InputText)
	if trimmed != "" {
		snap.WordCount = validation.WordCount(trimmed)
	}
	snap.CharCount = utf8.RuneCountInString(snap.InputText)
	snap.Articles = s.collection.Filter(query)
	if snap.Articles == nil {
		snap.Articles = []domain.Article{}
	}

	if user := s.identity.CurrentUser(); user != nil {
		snap.Authenticated = true
		snap.Username = user.Username
	}
	snap.GuestCount = s.quota.Current()
	snap.GuestLimit = s.cfg.GuestLimit

	return snap
}
