package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DraftPrefix marks ids generated locally for articles the server has never seen.
const DraftPrefix = "new-"

const DraftTitle = "New Page"

// ArticleID is either a server assigned integer (kept in decimal form) or a
// local draft id starting with DraftPrefix.
type ArticleID string

func PersistedID(id int64) ArticleID {
	return ArticleID(strconv.FormatInt(id, 10))
}

func (id ArticleID) String() string {
	return string(id)
}

func (id ArticleID) IsZero() bool {
	return id == ""
}

func (id ArticleID) IsDraft() bool {
	return strings.HasPrefix(string(id), DraftPrefix)
}

// Int returns the server id. Drafts and malformed ids fail.
func (id ArticleID) Int() (int64, error) {
	if id.IsDraft() {
		return 0, fmt.Errorf("article %q is a local draft", string(id))
	}
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid article id %q: %w", string(id), err)
	}
	return n, nil
}

func (id ArticleID) MarshalJSON() ([]byte, error) {
	if n, err := id.Int(); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts both the numeric ids of the backend and string ids.
func (id *ArticleID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ArticleID(n.String())
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("article id must be a number or a string: %w", err)
	}
	*id = ArticleID(s)
	return nil
}

type Article struct {
	ID            ArticleID       `json:"id"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	RewrittenText string          `json:"rewrittenText,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	Pinned        bool            `json:"pinned"`
	Analysis      *AnalysisResult `json:"analysis,omitempty"`
}

func (a Article) IsDraft() bool {
	return a.ID.IsDraft()
}

// Rewrite returns the rewrite attached to the article, if any.
func (a Article) Rewrite() *RewriteResult {
	if a.RewrittenText == "" {
		return nil
	}
	return &RewriteResult{ArticleID: a.ID, RewrittenText: a.RewrittenText}
}

type RewriteResult struct {
	ArticleID     ArticleID `json:"articleId"`
	RewrittenText string    `json:"rewrittenText"`
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}
