package workspace

import (
	"context"
	"log/slog"
	"strings"
)

// SubmitRewrite asks for a neutral rewrite of the current text for the
// selected, already analysed article.
func (s *Session) SubmitRewrite(ctx context.Context) Outcome {
	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return OutcomeIgnored
	}

	s.notice = ""
	if strings.TrimSpace(s.inputText) == "" {
		s.notice = MsgPasteFirst
		s.mu.Unlock()
		s.changed()
		return OutcomeInvalid
	}
	if s.selected.IsZero() || s.selected.IsDraft() {
		s.notice = MsgAnalyzeFirst
		s.mu.Unlock()
		s.changed()
		return OutcomeInvalid
	}

	s.state = Rewriting
	id, text := s.selected, s.inputText
	s.mu.Unlock()
	s.changed()

	defer func() {
		s.mu.Lock()
		s.state = Idle
		s.mu.Unlock()
		s.changed()
	}()

	res, err := s.rewriter.Rewrite(ctx, id, text)
	if err != nil {
		slog.Error("Rewrite failed", "id", id, "error", err)
		s.mu.Lock()
		s.notice = MsgRewriteFailed
		s.mu.Unlock()
		return OutcomeFailed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected != id {
		slog.Debug("Dropping rewrite for a deselected article", "id", id, "selected", s.selected)
		return OutcomeStale
	}
	s.rewrite = res
	return OutcomeOK
}
