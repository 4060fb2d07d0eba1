package dto

import (
	"github.com/DjordjeVuckovic/newsroom/internal/domain"
)

// Article is the backend's article row. Analysis fields are absent on rows
// that were never analysed.
type Article struct {
	ID            domain.ArticleID `json:"id"`
	Title         string           `json:"title"`
	Content       string           `json:"content"`
	BiasScore     *int             `json:"bias_score,omitempty"`
	BiasLabel     string           `json:"bias_label,omitempty"`
	Summary       string           `json:"summary,omitempty"`
	Explanation   string           `json:"explanation,omitempty"`
	Perspectives  []string         `json:"perspectives,omitempty"`
	DeepAnalysis  map[string]any   `json:"deep_analysis,omitempty"`
	RewrittenText *string          `json:"rewritten_text,omitempty"`
	Pinned        bool             `json:"pinned,omitempty"`
	CreatedAt     Timestamp        `json:"created_at"`
	UpdatedAt     *Timestamp       `json:"updated_at,omitempty"`
}

func (a Article) ToDomain() domain.Article {
	out := domain.Article{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedAt: a.CreatedAt.Time,
		Pinned:    a.Pinned,
		Analysis:  a.ToAnalysis(),
	}
	if a.RewrittenText != nil {
		out.RewrittenText = *a.RewrittenText
	}
	return out
}

// ToAnalysis returns nil when the row carries no bias score.
func (a Article) ToAnalysis() *domain.AnalysisResult {
	if a.BiasScore == nil {
		return nil
	}

	return &domain.AnalysisResult{
		ArticleID:    a.ID,
		Title:        a.Title,
		Content:      a.Content,
		BiasScore:    *a.BiasScore,
		BiasLabel:    a.BiasLabel,
		Explanation:  a.Explanation,
		Summary:      a.Summary,
		Perspectives: a.Perspectives,
		DeepAnalysis: a.DeepAnalysis,
	}
}

func ArticlesToDomain(in []Article) []domain.Article {
	out := make([]domain.Article, 0, len(in))
	for _, a := range in {
		out = append(out, a.ToDomain())
	}
	return out
}

type AnalyzeRequest struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

type RewriteRequest struct {
	ArticleID int64  `json:"article_id"`
	Text      string `json:"text"`
}

type RewriteResponse struct {
	RewrittenText string `json:"rewritten_text"`
}

type UpdateArticleRequest struct {
	Text string `json:"text"`
}
