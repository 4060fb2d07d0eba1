package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/newsroom/internal/apperr"
	"github.com/DjordjeVuckovic/newsroom/internal/domain"
)

// LoadArticles refreshes the recent article list.
func (s *Session) LoadArticles(ctx context.Context) Outcome {
	if _, err := s.collection.Load(ctx); err != nil {
		slog.Error("Failed to load articles", "error", err)
		s.mu.Lock()
		s.notice = MsgRequestFailed
		s.mu.Unlock()
		s.changed()
		return OutcomeFailed
	}

	s.changed()
	return OutcomeOK
}

// Articles returns the list filtered by the current query.
func (s *Session) Articles() []domain.Article {
	s.mu.Lock()
	query := s.query
	s.mu.Unlock()
	return s.collection.Filter(query)
}

// NewDraft starts an empty unsaved article and selects it.
func (s *Session) NewDraft() domain.Article {
	draft := s.collection.CreateDraft()

	s.mu.Lock()
	s.selectSeq++
	s.selected = draft.ID
	s.inputText = ""
	s.analysis = nil
	s.rewrite = nil
	s.mu.Unlock()

	s.changed()
	return draft
}

// RemoveArticle deletes an article. When it was selected, selection, analysis
// and rewrite are cleared together as soon as the delete succeeds, before the
// list is reloaded.
func (s *Session) RemoveArticle(ctx context.Context, id domain.ArticleID) Outcome {
	if err := s.collection.Delete(ctx, id); err != nil {
		slog.Error("Failed to remove article", "id", id, "error", err)
		s.mu.Lock()
		s.notice = MsgRequestFailed
		s.mu.Unlock()
		s.changed()
		return OutcomeFailed
	}

	s.mu.Lock()
	if s.selected == id {
		s.selectSeq++
		s.selected = ""
		s.analysis = nil
		s.rewrite = nil
		s.inputText = ""
	}
	s.mu.Unlock()
	s.changed()

	if id.IsDraft() {
		return OutcomeOK
	}
	if _, err := s.collection.Load(ctx); err != nil {
		slog.Error("Failed to reload articles after delete", "id", id, "error", err)
		return OutcomeOK
	}
	s.changed()
	return OutcomeOK
}

func (s *Session) TogglePin(id domain.ArticleID) Outcome {
	if !s.collection.TogglePin(id) {
		return OutcomeIgnored
	}
	s.changed()
	return OutcomeOK
}

// SaveContent writes the current text back to the selected persisted article.
func (s *Session) SaveContent(ctx context.Context) Outcome {
	if s.editor == nil {
		return OutcomeIgnored
	}

	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return OutcomeIgnored
	}
	id, text := s.selected, s.inputText
	s.notice = ""
	switch {
	case id.IsZero() || id.IsDraft():
		s.notice = MsgAnalyzeFirst
	case strings.TrimSpace(text) == "":
		s.notice = MsgEmptyContent
	}
	if s.notice != "" {
		s.mu.Unlock()
		s.changed()
		return OutcomeInvalid
	}
	s.mu.Unlock()

	article, err := s.editor.UpdateContent(ctx, id, text)
	if err != nil {
		slog.Error("Failed to save article", "id", id, "error", err)
		s.mu.Lock()
		s.notice = MsgRequestFailed
		s.mu.Unlock()
		s.changed()
		return OutcomeFailed
	}

	s.collection.Upsert(*article)
	s.mu.Lock()
	if s.selected == id {
		s.notice = MsgSaved
	}
	s.mu.Unlock()
	s.changed()
	return OutcomeOK
}

// ShareLink is the public report URL of a persisted article.
func (s *Session) ShareLink(id domain.ArticleID) (string, error) {
	if id.IsZero() {
		return "", apperr.NewValidation("no article selected")
	}
	if id.IsDraft() {
		return "", fmt.Errorf("share %s: %w", id, apperr.ErrDraft)
	}
	if s.cfg.ShareBaseURL == "" {
		return "", apperr.NewValidation("share base url is not configured")
	}
	return s.cfg.ShareBaseURL + "/analysis/" + id.String(), nil
}
