package router

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/DjordjeVuckovic/newsroom/internal/apperr"
	"github.com/DjordjeVuckovic/newsroom/internal/backend"
	"github.com/DjordjeVuckovic/newsroom/internal/domain"
	"github.com/DjordjeVuckovic/newsroom/internal/workspace"
	"github.com/DjordjeVuckovic/newsroom/pkg/pagination"
	"github.com/labstack/echo/v4"
)

type WorkspaceRouter struct {
	e      *echo.Echo
	ws     *workspace.Session
	editor backend.ArticleEditor
}

type WorkspaceRouterOption func(*WorkspaceRouter)

// WithEditor enables PDF downloads.
func WithEditor(editor backend.ArticleEditor) WorkspaceRouterOption {
	return func(r *WorkspaceRouter) {
		r.editor = editor
	}
}

func NewWorkspaceRouter(e *echo.Echo, ws *workspace.Session, opts ...WorkspaceRouterOption) *WorkspaceRouter {
	r := &WorkspaceRouter{
		e:  e,
		ws: ws,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type inputRequest struct {
	Text *string `json:"text"`
	Link *string `json:"link"`
}

type shareResponse struct {
	URL string `json:"url"`
}

func (r *WorkspaceRouter) Bind() {
	g := r.e.Group("/workspace")
	g.GET("", r.snapshotHandler)
	g.PUT("/input", r.inputHandler)
	g.POST("/analyze", r.analyzeHandler)
	g.POST("/rewrite", r.rewriteHandler)
	g.PUT("/content", r.saveHandler)

	g.GET("/articles", r.listHandler)
	g.POST("/articles", r.draftHandler)
	g.POST("/articles/reload", r.reloadHandler)
	g.POST("/articles/:id/select", r.selectHandler)
	g.POST("/articles/:id/pin", r.pinHandler)
	g.DELETE("/articles/:id", r.deleteHandler)
	g.GET("/articles/:id/share", r.shareHandler)
	g.GET("/articles/:id/pdf", r.pdfHandler)

	r.e.GET("/analysis/:id", r.deepLinkHandler)
}

func (r *WorkspaceRouter) snapshotHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, r.ws.Snapshot())
}

func (r *WorkspaceRouter) inputHandler(c echo.Context) error {
	var req inputRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid input body", err)
	}
	if req.Text != nil {
		r.ws.SetText(*req.Text)
	}
	if req.Link != nil {
		r.ws.SetLink(*req.Link)
	}
	return c.JSON(http.StatusOK, r.ws.Snapshot())
}

func (r *WorkspaceRouter) analyzeHandler(c echo.Context) error {
	return r.respond(c, r.ws.SubmitAnalysis(c.Request().Context()))
}

func (r *WorkspaceRouter) rewriteHandler(c echo.Context) error {
	return r.respond(c, r.ws.SubmitRewrite(c.Request().Context()))
}

func (r *WorkspaceRouter) saveHandler(c echo.Context) error {
	var req inputRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid content body", err)
	}
	if req.Text != nil {
		r.ws.SetText(*req.Text)
	}
	return r.respond(c, r.ws.SaveContent(c.Request().Context()))
}

func (r *WorkspaceRouter) listHandler(c echo.Context) error {
	var page pagination.OffsetRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &page); err != nil {
		return apperr.NewValidationWrap("invalid page parameters", err)
	}
	if q, ok := c.QueryParams()["q"]; ok && len(q) > 0 {
		r.ws.SetQuery(q[0])
	}
	return c.JSON(http.StatusOK, pagination.Paginate(r.ws.Articles(), page))
}

func (r *WorkspaceRouter) reloadHandler(c echo.Context) error {
	return r.respond(c, r.ws.LoadArticles(c.Request().Context()))
}

func (r *WorkspaceRouter) draftHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, r.ws.NewDraft())
}

func (r *WorkspaceRouter) selectHandler(c echo.Context) error {
	id := domain.ArticleID(c.Param("id"))
	return r.respond(c, r.ws.SelectArticle(c.Request().Context(), id))
}

func (r *WorkspaceRouter) deepLinkHandler(c echo.Context) error {
	id := domain.ArticleID(c.Param("id"))
	r.ws.RestoreSelection(c.Request().Context(), id)
	return c.JSON(http.StatusOK, r.ws.Snapshot())
}

func (r *WorkspaceRouter) pinHandler(c echo.Context) error {
	id := domain.ArticleID(c.Param("id"))
	if r.ws.TogglePin(id) != workspace.OutcomeOK {
		return fmt.Errorf("pin %s: %w", id, apperr.ErrNotFound)
	}
	return c.JSON(http.StatusOK, r.ws.Articles())
}

func (r *WorkspaceRouter) deleteHandler(c echo.Context) error {
	id := domain.ArticleID(c.Param("id"))
	return r.respond(c, r.ws.RemoveArticle(c.Request().Context(), id))
}

func (r *WorkspaceRouter) shareHandler(c echo.Context) error {
	link, err := r.ws.ShareLink(domain.ArticleID(c.Param("id")))
	if err != nil {
		if errors.Is(err, apperr.ErrDraft) {
			return apperr.NewValidationWrap("save the article before sharing", err)
		}
		return err
	}
	return c.JSON(http.StatusOK, shareResponse{URL: link})
}

func (r *WorkspaceRouter) pdfHandler(c echo.Context) error {
	if r.editor == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "pdf export is not available")
	}

	id := domain.ArticleID(c.Param("id"))
	if id.IsDraft() {
		return apperr.NewValidation("save the article before downloading")
	}

	var buf bytes.Buffer
	if _, err := r.editor.DownloadPDF(c.Request().Context(), id, &buf); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=article_%s.pdf", id))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

// respond maps an Outcome to the HTTP result. Successful actions return the
// fresh snapshot.
func (r *WorkspaceRouter) respond(c echo.Context, outcome workspace.Outcome) error {
	snap := r.ws.Snapshot()

	switch outcome {
	case workspace.OutcomeOK:
		return c.JSON(http.StatusOK, snap)
	case workspace.OutcomeInvalid:
		msg := snap.ValidationError
		if msg == "" {
			msg = snap.Notice
		}
		return apperr.NewValidation(msg)
	case workspace.OutcomeAuthRequired:
		return apperr.ErrQuotaExceeded
	case workspace.OutcomeIgnored:
		return echo.NewHTTPError(http.StatusConflict, "workspace is busy")
	case workspace.OutcomeStale:
		return echo.NewHTTPError(http.StatusConflict, "superseded by a newer request")
	default:
		msg := snap.ValidationError
		if msg == "" {
			msg = snap.Notice
		}
		if msg == workspace.MsgArticleNotFound {
			return echo.NewHTTPError(http.StatusNotFound, msg)
		}
		return echo.NewHTTPError(http.StatusBadGateway, msg)
	}
}
