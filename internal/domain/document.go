package domain

// AnalysisResult is the server's bias report for one article. ArticleID always
// matches the analysed Article.
type AnalysisResult struct {
	ArticleID    ArticleID      `json:"id"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	BiasScore    int            `json:"biasScore"`
	BiasLabel    string         `json:"biasLabel,omitempty"` // server supplied, informational only
	Explanation  string         `json:"explanation"`
	Summary      string         `json:"summary"`
	Perspectives []string       `json:"perspectives"`
	DeepAnalysis map[string]any `json:"deepAnalysis,omitempty"`
}

func (r AnalysisResult) Band() BiasBand {
	return BandOf(r.BiasScore)
}

// BelongsTo reports whether the result describes the given selection.
func (r *AnalysisResult) BelongsTo(id ArticleID) bool {
	return r != nil && !id.IsZero() && r.ArticleID.String() == id.String()
}
