package workspace

import (
	"fmt"

	"github.com/DjordjeVuckovic/newsroom/internal/domain"
)

// User facing messages.
const (
	MsgMissingInput    = "Please paste a news article or provide a valid article link."
	MsgNotAnArticle    = "Please paste a real news article (at least a few paragraphs, not random words)."
	MsgAnalyzeFailed   = "Something went wrong. Please try again."
	MsgPasteFirst      = "Paste article text first"
	MsgAnalyzeFirst    = "Analyze article first"
	MsgRewriteFailed   = "Rewrite failed"
	MsgArticleNotFound = "Article not found"
	MsgRequestFailed   = "Could not reach the server. Please try again."
	MsgEmptyContent    = "There is no text to save"
	MsgSaved           = "Saved"
)

type State int

const (
	Idle State = iota
	Analyzing
	Rewriting
)

func (s State) String() string {
	switch s {
	case Analyzing:
		return "analyzing"
	case Rewriting:
		return "rewriting"
	default:
		return "idle"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "analyzing":
		*s = Analyzing
	case "rewriting":
		*s = Rewriting
	default:
		return fmt.Errorf("unknown workspace state %q", text)
	}
	return nil
}

// Outcome is how a workspace action ended. Failures are never returned as
// errors; the message to show is in the Snapshot.
type Outcome int

const (
	OutcomeOK Outcome = iota
	// OutcomeIgnored means the action was dropped, e.g. while busy.
	OutcomeIgnored
	OutcomeInvalid
	// OutcomeAuthRequired means the guest quota is used up and the user has
	// to log in.
	OutcomeAuthRequired
	OutcomeFailed
	// OutcomeStale means a newer request for the same slot won.
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeAuthRequired:
		return "auth_required"
	case OutcomeFailed:
		return "failed"
	case OutcomeStale:
		return "stale"
	default:
		return "unknown"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

type EventKind string

const (
	EventChanged            EventKind = "changed"
	EventAuthRequired       EventKind = "auth_required"
	EventNavigate           EventKind = "navigate"
	EventQuotaChanged       EventKind = "quota_changed"
	EventAuthChanged        EventKind = "auth_changed"
	EventOpenForgotPassword EventKind = "open_forgot_password"
)

type Event struct {
	Kind      EventKind        `json:"kind"`
	ArticleID domain.ArticleID `json:"articleId,omitempty"`
	Count     int              `json:"count,omitempty"`
	User      *domain.User     `json:"user,omitempty"`
}
