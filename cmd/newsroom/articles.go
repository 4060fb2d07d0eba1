package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/newsroom/internal/domain"
	"github.com/DjordjeVuckovic/newsroom/internal/render"
	"github.com/DjordjeVuckovic/newsroom/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	analyzeLink    string
	analyzeFile    string
	analyzeRewrite bool
	articlesQuery  string
	saveFile       string
	downloadOutput string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Score an article for bias",
	Long: `Analyze pasted text, a file (--file, "-" for stdin) or a link (--link).
A link takes precedence over text.`,
	Args: cobra.ArbitraryArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd.InOrStdin(), analyzeFile, args)
		if err != nil {
			return err
		}

		ws := a.workspace
		ws.SetText(text)
		ws.SetLink(analyzeLink)

		if err := check(ws.SubmitAnalysis(ctx), ws.Snapshot()); err != nil {
			return err
		}
		if analyzeRewrite {
			if err := check(ws.SubmitRewrite(ctx), ws.Snapshot()); err != nil {
				return err
			}
		}

		printReport(cmd.OutOrStdout(), ws.Snapshot())
		return nil
	}),
}

var rewriteCmd = &cobra.Command{
	Use:   "rewrite <article-id>",
	Short: "Rewrite an analysed article neutrally",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		ws := a.workspace
		if err := check(ws.SelectArticle(ctx, domain.ArticleID(args[0])), ws.Snapshot()); err != nil {
			return err
		}
		if err := check(ws.SubmitRewrite(ctx), ws.Snapshot()); err != nil {
			return err
		}

		render.Rewrite(cmd.OutOrStdout(), ws.Snapshot().Rewrite)
		return nil
	}),
}

var articlesCmd = &cobra.Command{
	Use:     "articles",
	Aliases: []string{"ls"},
	Short:   "List recent articles",
	Args:    cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		ws := a.workspace
		if err := check(ws.LoadArticles(ctx), ws.Snapshot()); err != nil {
			return err
		}
		ws.SetQuery(articlesQuery)

		render.Articles(cmd.OutOrStdout(), ws.Articles(), "")
		return nil
	}),
}

var showCmd = &cobra.Command{
	Use:   "show <article-id>",
	Short: "Show the analysis and rewrite of an article",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		ws := a.workspace
		if err := check(ws.SelectArticle(ctx, domain.ArticleID(args[0])), ws.Snapshot()); err != nil {
			return err
		}

		printReport(cmd.OutOrStdout(), ws.Snapshot())
		return nil
	}),
}

var deleteCmd = &cobra.Command{
	Use:     "delete <article-id>",
	Aliases: []string{"rm"},
	Short:   "Delete an article",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		ws := a.workspace
		if err := check(ws.RemoveArticle(ctx, domain.ArticleID(args[0])), ws.Snapshot()); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted article %s\n", args[0])
		return nil
	}),
}

var saveCmd = &cobra.Command{
	Use:   "save <article-id> [text]",
	Short: "Replace the stored text of an article",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd.InOrStdin(), saveFile, args[1:])
		if err != nil {
			return err
		}

		ws := a.workspace
		if err := check(ws.SelectArticle(ctx, domain.ArticleID(args[0])), ws.Snapshot()); err != nil {
			return err
		}
		ws.SetText(text)
		if err := check(ws.SaveContent(ctx), ws.Snapshot()); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), workspace.MsgSaved)
		return nil
	}),
}

var downloadCmd = &cobra.Command{
	Use:   "download <article-id>",
	Short: "Download the PDF report of an article",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		id := domain.ArticleID(args[0])
		out := downloadOutput
		if out == "" {
			out = fmt.Sprintf("article_%s.pdf", id)
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		n, err := a.client.DownloadPDF(ctx, id, f)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(out)
			return fmt.Errorf("download article %s: %w", id, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", out, n)
		return nil
	}),
}

var shareCmd = &cobra.Command{
	Use:   "share <article-id>",
	Short: "Print the share link of an article",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		link, err := a.workspace.ShareLink(domain.ArticleID(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), link)
		return nil
	}),
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeLink, "link", "", "Article URL to fetch and analyse")
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", `Read the article from a file ("-" for stdin)`)
	analyzeCmd.Flags().BoolVar(&analyzeRewrite, "rewrite", false, "Also produce a neutral rewrite")
	articlesCmd.Flags().StringVarP(&articlesQuery, "query", "q", "", "Filter by title")
	saveCmd.Flags().StringVarP(&saveFile, "file", "f", "", `Read the new text from a file ("-" for stdin)`)
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Output file")
}

func readInput(stdin io.Reader, file string, args []string) (string, error) {
	switch {
	case file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(data), nil
	default:
		return strings.Join(args, " "), nil
	}
}

var errLoginRequired = errors.New("free analyses used up, log in with `newsroom login` to continue")

// check turns a non-OK outcome into the error shown to the user.
func check(outcome workspace.Outcome, snap workspace.Snapshot) error {
	switch outcome {
	case workspace.OutcomeOK:
		return nil
	case workspace.OutcomeAuthRequired:
		return errLoginRequired
	}

	msg := snap.ValidationError
	if msg == "" {
		msg = snap.Notice
	}
	if msg == "" {
		msg = outcome.String()
	}
	return errors.New(msg)
}

func printReport(w io.Writer, snap workspace.Snapshot) {
	fmt.Fprintln(w, render.Header(snap))
	if snap.SelectedID != "" {
		fmt.Fprintln(w, render.DimStyle.Render("Article "+snap.SelectedID.String()))
	}
	render.Analysis(w, snap.Analysis)
	render.Rewrite(w, snap.Rewrite)
}
