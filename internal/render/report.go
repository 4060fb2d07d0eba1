// Package render turns workspace snapshots into terminal output.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/DjordjeVuckovic/newsroom/internal/domain"
	"github.com/DjordjeVuckovic/newsroom/internal/workspace"
)

const maxTitle = 60

// GuestBadge shows the free analyses used. It renders nothing for logged in users.
func GuestBadge(snap workspace.Snapshot) string {
	if snap.Authenticated {
		return ""
	}
	text := fmt.Sprintf("Free uses: %d/%d", snap.GuestCount, snap.GuestLimit)
	if snap.GuestCount >= snap.GuestLimit {
		return exhaustedBadgeStyle.Render(text)
	}
	return badgeStyle.Render(text)
}

func Header(snap workspace.Snapshot) string {
	who := "guest"
	if snap.Authenticated {
		who = snap.Username
	}
	parts := []string{HeaderStyle.Render("NewsRoom AI"), DimStyle.Render(who)}
	if badge := GuestBadge(snap); badge != "" {
		parts = append(parts, badge)
	}
	return strings.Join(parts, "  ")
}

// Analysis renders the bias report of the selected article.
func Analysis(w io.Writer, r *domain.AnalysisResult) {
	if r == nil {
		fmt.Fprintln(w, DimStyle.Render("No analysis yet."))
		return
	}

	if r.Title != "" {
		fmt.Fprintln(w, HeaderStyle.Render(r.Title))
	}
	band := r.Band().String()
	fmt.Fprintf(w, "Bias score: %s %s\n",
		ScoreStyle(r.BiasScore).Render(fmt.Sprintf("%d/100", r.BiasScore)),
		ScoreStyle(r.BiasScore).Render(band))
	if r.BiasLabel != "" && r.BiasLabel != band {
		fmt.Fprintln(w, DimStyle.Render("Label: "+r.BiasLabel))
	}

	section(w, "Summary", r.Summary)
	section(w, "Explanation", r.Explanation)

	if len(r.Perspectives) > 0 {
		fmt.Fprintln(w, SectionStyle.Render("Perspectives"))
		for _, p := range r.Perspectives {
			fmt.Fprintln(w, "  • "+p)
		}
	}

	if len(r.DeepAnalysis) > 0 {
		fmt.Fprintln(w, SectionStyle.Render("Deep analysis"))
		keys := make([]string, 0, len(r.DeepAnalysis))
		for k := range r.DeepAnalysis {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %v\n", k, r.DeepAnalysis[k])
		}
	}
}

func Rewrite(w io.Writer, r *domain.RewriteResult) {
	if r == nil {
		return
	}
	fmt.Fprintln(w, SectionStyle.Render("Neutral rewrite"))
	fmt.Fprintln(w, BoxStyle.Render(r.RewrittenText))
}

// Articles renders the recent list, pinned entries first as given.
func Articles(w io.Writer, articles []domain.Article, selected domain.ArticleID) {
	if len(articles) == 0 {
		fmt.Fprintln(w, DimStyle.Render("No articles yet."))
		return
	}

	for _, a := range articles {
		marker := UnselectedStyle.String()
		if a.ID == selected {
			marker = SelectedStyle.String()
		}
		pin := " "
		if a.Pinned {
			pin = PinStyle.String()
		}

		score := DimStyle.Render("  -")
		if a.Analysis != nil {
			score = ScoreStyle(a.Analysis.BiasScore).Render(fmt.Sprintf("%3d", a.Analysis.BiasScore))
		}

		date := ""
		if !a.CreatedAt.IsZero() {
			date = a.CreatedAt.Local().Format("2006-01-02 15:04")
		}

		fmt.Fprintf(w, "%s %s %-8s %s %s  %s\n", marker, pin, a.ID, score, truncate(a.Title, maxTitle), DimStyle.Render(date))
	}
}

// Snapshot renders the whole workspace.
func Snapshot(w io.Writer, snap workspace.Snapshot) {
	fmt.Fprintln(w, Header(snap))

	if snap.ValidationError != "" {
		fmt.Fprintln(w, ErrorStyle.Render(snap.ValidationError))
	}
	if snap.Notice != "" {
		fmt.Fprintln(w, DimStyle.Render(snap.Notice))
	}
	if snap.State != workspace.Idle {
		fmt.Fprintln(w, DimStyle.Render(snap.State.String()+"..."))
	}

	fmt.Fprintln(w, SectionStyle.Render("Recent articles"))
	Articles(w, snap.Articles, snap.SelectedID)

	if snap.InputText != "" {
		fmt.Fprintln(w, SectionStyle.Render("Article"))
		fmt.Fprintln(w, DimStyle.Render(fmt.Sprintf("%d words, %d characters", snap.WordCount, snap.CharCount)))
	}

	if snap.HasAnalysis() {
		fmt.Fprintln(w)
		Analysis(w, snap.Analysis)
	}
	Rewrite(w, snap.Rewrite)
}

func section(w io.Writer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	fmt.Fprintln(w, SectionStyle.Render(title))
	fmt.Fprintln(w, body)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
