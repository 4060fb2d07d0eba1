// Package backend is the JSON-over-HTTP client of the analysis, article and
// auth services.
package backend

import (
	"context"
	"io"

	"github.com/DjordjeVuckovic/newsroom/internal/domain"
	"github.com/DjordjeVuckovic/newsroom/internal/dto"
)

// AnalyzeInput is what gets analysed. When Link is set the server fetches the
// article itself and Text is ignored.
type AnalyzeInput struct {
	Text string
	Link string
}

type Analyzer interface {
	// Analyze returns the persisted article with its analysis embedded.
	Analyze(ctx context.Context, in AnalyzeInput) (*domain.Article, error)
}

type Rewriter interface {
	Rewrite(ctx context.Context, id domain.ArticleID, text string) (*domain.RewriteResult, error)
}

type ArticleRepository interface {
	List(ctx context.Context) ([]domain.Article, error)
	GetByID(ctx context.Context, id domain.ArticleID) (*domain.Article, error)
	Delete(ctx context.Context, id domain.ArticleID) error
}

type ArticleEditor interface {
	UpdateContent(ctx context.Context, id domain.ArticleID, text string) (*domain.Article, error)
	DownloadPDF(ctx context.Context, id domain.ArticleID, w io.Writer) (int64, error)
}

type AuthAPI interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) error
	Me(ctx context.Context, token string) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) (*dto.ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
}
