package workspace

import (
	"context"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/newsroom/internal/backend"
	"github.com/DjordjeVuckovic/newsroom/internal/domain"
)

// SubmitAnalysis runs the guards (not busy, some input, a real article when
// only text is given, guest quota) and then asks the backend to analyse.
func (s *Session) SubmitAnalysis(ctx context.Context) Outcome {
	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return OutcomeIgnored
	}

	s.validationErr = ""
	text, link := s.inputText, strings.TrimSpace(s.inputLink)
	hasText := strings.TrimSpace(text) != ""

	if !hasText && link == "" {
		s.validationErr = MsgMissingInput
		s.mu.Unlock()
		s.changed()
		return OutcomeInvalid
	}

	if hasText && link == "" && !s.cfg.Policy.IsSubmittable(text) {
		s.validationErr = MsgNotAnArticle
		s.mu.Unlock()
		s.changed()
		return OutcomeInvalid
	}

	anonymous := s.identity.CurrentUser() == nil
	if anonymous && s.quota.IsExhausted(s.cfg.GuestLimit) {
		s.mu.Unlock()
		slog.Info("Guest quota used up, asking for login", "limit", s.cfg.GuestLimit)
		s.publish(Event{Kind: EventAuthRequired})
		return OutcomeAuthRequired
	}

	s.state = Analyzing
	draft := s.selected
	s.mu.Unlock()
	s.changed()

	in := backend.AnalyzeInput{Text: text, Link: link}
	if link != "" {
		in.Text = ""
	}

	article, ok := s.analyze(ctx, in, anonymous, draft)
	if !ok {
		return OutcomeFailed
	}

	s.collection.Upsert(*article)
	if _, err := s.collection.Load(ctx); err != nil {
		slog.Warn("Article list refresh after analysis failed", "error", err)
	}

	s.changed()
	s.publish(Event{Kind: EventNavigate, ArticleID: article.ID})
	return OutcomeOK
}

// analyze owns the Analyzing state and always leaves the session Idle.
func (s *Session) analyze(ctx context.Context, in backend.AnalyzeInput, anonymous bool, draft domain.ArticleID) (*domain.Article, bool) {
	defer func() {
		s.mu.Lock()
		s.state = Idle
		s.mu.Unlock()
		s.changed()
	}()

	article, err := s.analyzer.Analyze(ctx, in)
	if err != nil {
		slog.Error("Analysis failed", "error", err, "link", in.Link != "")
		s.mu.Lock()
		s.validationErr = MsgAnalyzeFailed
		s.mu.Unlock()
		return nil, false
	}

	s.mu.Lock()
	s.inputText = article.Content
	s.analysis = article.Analysis
	s.rewrite = nil
	s.selected = article.ID
	// in-flight selection fetches are now stale
	s.selectSeq++
	s.mu.Unlock()

	if draft.IsDraft() {
		s.collection.Discard(draft)
	}

	if anonymous {
		if _, err := s.quota.Increment(); err != nil {
			slog.Error("Failed to count guest analysis", "error", err)
		}
	}

	slog.Info("Article analysed", "id", article.ID, "bias_score", scoreOf(article.Analysis))
	return article, true
}

func scoreOf(r *domain.AnalysisResult) int {
	if r == nil {
		return -1
	}
	return r.BiasScore
}
