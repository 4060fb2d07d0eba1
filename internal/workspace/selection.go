package workspace

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DjordjeVuckovic/newsroom/internal/apperr"
	"github.com/DjordjeVuckovic/newsroom/internal/domain"
)

// SelectArticle makes id the selection. Persisted articles are fetched and
// replace the input, analysis and rewrite in one step; a missing rewrite
// clears the previous one. If another selection starts before the fetch
// returns, this one is dropped.
func (s *Session) SelectArticle(ctx context.Context, id domain.ArticleID) Outcome {
	return s.selectArticle(ctx, id, false)
}

// RestoreSelection is SelectArticle for deep links. Draft ids are never looked
// up and unknown ids are skipped quietly.
func (s *Session) RestoreSelection(ctx context.Context, id domain.ArticleID) Outcome {
	if id.IsZero() || id.IsDraft() {
		return OutcomeIgnored
	}
	return s.selectArticle(ctx, id, true)
}

func (s *Session) selectArticle(ctx context.Context, id domain.ArticleID, quiet bool) Outcome {
	if id.IsZero() {
		return OutcomeIgnored
	}

	if id.IsDraft() {
		return s.selectDraft(id)
	}

	s.mu.Lock()
	s.selectSeq++
	seq := s.selectSeq
	s.mu.Unlock()

	article, err := s.repo.GetByID(ctx, id)

	s.mu.Lock()
	if seq != s.selectSeq {
		s.mu.Unlock()
		slog.Debug("Dropping superseded selection", "id", id)
		return OutcomeStale
	}

	if err != nil {
		notFound := errors.Is(err, apperr.ErrNotFound)
		if quiet && notFound {
			s.mu.Unlock()
			slog.Warn("Article not found, skipping", "id", id)
			return OutcomeIgnored
		}

		if notFound {
			s.notice = MsgArticleNotFound
		} else {
			s.notice = MsgRequestFailed
		}
		s.mu.Unlock()
		slog.Error("Failed to load article", "id", id, "error", err)
		s.changed()
		return OutcomeFailed
	}

	s.selected = article.ID
	s.inputText = article.Content
	s.inputLink = ""
	s.analysis = article.Analysis
	s.rewrite = article.Rewrite()
	s.notice = ""
	s.validationErr = ""
	s.mu.Unlock()

	s.changed()
	return OutcomeOK
}

func (s *Session) selectDraft(id domain.ArticleID) Outcome {
	draft, ok := s.collection.Get(id)
	if !ok {
		return OutcomeIgnored
	}

	s.mu.Lock()
	s.selectSeq++
	s.selected = draft.ID
	s.inputText = draft.Content
	s.inputLink = ""
	s.analysis = nil
	s.rewrite = nil
	s.notice = ""
	s.mu.Unlock()

	s.changed()
	return OutcomeOK
}
