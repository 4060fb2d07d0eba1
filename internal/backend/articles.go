package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/DjordjeVuckovic/newsroom/internal/apperr"
	"github.com/DjordjeVuckovic/newsroom/internal/domain"
	"github.com/DjordjeVuckovic/newsroom/internal/dto"
)

func (c *Client) Analyze(ctx context.Context, in AnalyzeInput) (*domain.Article, error) {
	var resp dto.Article
	_, err := c.do(ctx, call{
		kind:   apperr.KindAnalyze,
		method: http.MethodPost,
		path:   "/analyze",
		body:   dto.AnalyzeRequest{Text: in.Text, Link: in.Link},
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}

	if resp.ID.IsZero() || resp.BiasScore == nil {
		return nil, &apperr.RemoteError{Kind: apperr.KindAnalyze, Op: "POST /analyze", Err: errors.New("response without id or bias score")}
	}

	article := resp.ToDomain()
	return &article, nil
}

func (c *Client) Rewrite(ctx context.Context, id domain.ArticleID, text string) (*domain.RewriteResult, error) {
	if id.IsDraft() {
		return nil, fmt.Errorf("rewrite: %w", apperr.ErrDraft)
	}
	serverID, err := id.Int()
	if err != nil {
		return nil, fmt.Errorf("rewrite: %w", err)
	}

	var resp dto.RewriteResponse
	_, err = c.do(ctx, call{
		kind:   apperr.KindRewrite,
		method: http.MethodPost,
		path:   "/rewrite",
		body:   dto.RewriteRequest{ArticleID: serverID, Text: text},
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}

	return &domain.RewriteResult{ArticleID: id, RewrittenText: resp.RewrittenText}, nil
}

func (c *Client) List(ctx context.Context) ([]domain.Article, error) {
	var resp []dto.Article
	_, err := c.do(ctx, call{
		kind:   apperr.KindFetch,
		method: http.MethodGet,
		path:   "/articles",
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}

	return dto.ArticlesToDomain(resp), nil
}

func (c *Client) GetByID(ctx context.Context, id domain.ArticleID) (*domain.Article, error) {
	if id.IsDraft() {
		return nil, fmt.Errorf("get article: %w", apperr.ErrDraft)
	}

	var resp dto.Article
	_, err := c.do(ctx, call{
		kind:   apperr.KindFetch,
		method: http.MethodGet,
		path:   "/articles/" + id.String(),
		out:    &resp,
	})
	if err != nil {
		var re *apperr.RemoteError
		if errors.As(err, &re) && re.Status == http.StatusNotFound {
			re.Kind = apperr.KindNotFound
		}
		return nil, err
	}

	article := resp.ToDomain()
	return &article, nil
}

func (c *Client) Delete(ctx context.Context, id domain.ArticleID) error {
	if id.IsDraft() {
		return fmt.Errorf("delete article: %w", apperr.ErrDraft)
	}

	_, err := c.do(ctx, call{
		kind:   apperr.KindFetch,
		method: http.MethodDelete,
		path:   "/articles/" + id.String(),
	})
	return err
}

func (c *Client) UpdateContent(ctx context.Context, id domain.ArticleID, text string) (*domain.Article, error) {
	if id.IsDraft() {
		return nil, fmt.Errorf("update article: %w", apperr.ErrDraft)
	}

	var resp dto.Article
	_, err := c.do(ctx, call{
		kind:   apperr.KindFetch,
		method: http.MethodPut,
		path:   "/articles/" + id.String(),
		body:   dto.UpdateArticleRequest{Text: text},
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}

	article := resp.ToDomain()
	return &article, nil
}

// DownloadPDF streams the server rendered PDF of an article into w.
func (c *Client) DownloadPDF(ctx context.Context, id domain.ArticleID, w io.Writer) (int64, error) {
	if id.IsDraft() {
		return 0, fmt.Errorf("download article: %w", apperr.ErrDraft)
	}

	return c.do(ctx, call{
		kind:   apperr.KindFetch,
		method: http.MethodGet,
		path:   "/articles/" + id.String() + "/download_pdf",
		stream: w,
	})
}
