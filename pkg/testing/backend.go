package testing

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/newsroom/internal/domain"
	"github.com/DjordjeVuckovic/newsroom/internal/dto"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Route keys as recorded by FakeBackend.Calls.
const (
	RouteAnalyze        = "POST /analyze"
	RouteRewrite        = "POST /rewrite"
	RouteList           = "GET /articles"
	RouteGet            = "GET /articles/:id"
	RouteUpdate         = "PUT /articles/:id"
	RouteDelete         = "DELETE /articles/:id"
	RouteDownload       = "GET /articles/:id/download_pdf"
	RouteRegister       = "POST /auth/register"
	RouteLogin          = "POST /auth/login"
	RouteMe             = "GET /auth/me"
	RouteForgotPassword = "POST /auth/forgot-password"
	RouteResetPassword  = "POST /auth/reset-password"
)

const defaultBiasScore = 72

// Hold parks the next request of a route until Release is called.
type Hold struct {
	Arrived chan struct{}
	release chan struct{}
	once    sync.Once
}

func (h *Hold) Release() {
	h.once.Do(func() { close(h.release) })
}

type fakeUser struct {
	dto.User
	password string
}

// FakeBackend is an in-memory implementation of the analysis backend HTTP
// contract, served by echo on an httptest server.
type FakeBackend struct {
	Server *httptest.Server
	Echo   *echo.Echo

	mu        sync.Mutex
	articles  map[int64]dto.Article
	nextID    int64
	users     map[string]fakeUser
	tokens    map[string]string
	calls     map[string]int
	failures  map[string][]int
	holds     map[string][]*Hold
	allHolds  []*Hold
	biasScore int
	now       func() time.Time
}

func NewFakeBackend() *FakeBackend {
	fb := &FakeBackend{
		articles:  make(map[int64]dto.Article),
		users:     make(map[string]fakeUser),
		tokens:    make(map[string]string),
		calls:     make(map[string]int),
		failures:  make(map[string][]int),
		holds:     make(map[string][]*Hold),
		biasScore: defaultBiasScore,
		now:       time.Now,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(fb.record)

	e.POST("/analyze", fb.analyze)
	e.POST("/rewrite", fb.rewrite)
	e.GET("/articles", fb.list)
	e.GET("/articles/:id", fb.get)
	e.PUT("/articles/:id", fb.update)
	e.DELETE("/articles/:id", fb.delete)
	e.GET("/articles/:id/download_pdf", fb.download)
	e.POST("/auth/register", fb.register)
	e.POST("/auth/login", fb.login)
	e.GET("/auth/me", fb.me)
	e.POST("/auth/forgot-password", fb.forgotPassword)
	e.POST("/auth/reset-password", fb.resetPassword)

	fb.Echo = e
	fb.Server = httptest.NewServer(e)
	return fb
}

func NewFakeBackendWithCleanup(tb testing.TB) *FakeBackend {
	tb.Helper()

	fb := NewFakeBackend()
	tb.Cleanup(func() {
		fb.releaseAll()
		fb.Server.Close()
	})
	return fb
}

func (fb *FakeBackend) URL() string {
	return fb.Server.URL
}

func (fb *FakeBackend) SetBiasScore(score int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.biasScore = score
}

// FailNext makes the next request of route answer with status.
func (fb *FakeBackend) FailNext(route string, status int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.failures[route] = append(fb.failures[route], status)
}

func (fb *FakeBackend) HoldNext(route string) *Hold {
	h := &Hold{Arrived: make(chan struct{}), release: make(chan struct{})}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.holds[route] = append(fb.holds[route], h)
	fb.allHolds = append(fb.allHolds, h)
	return h
}

func (fb *FakeBackend) Calls(route string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.calls[route]
}

func (fb *FakeBackend) TotalCalls() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	total := 0
	for _, n := range fb.calls {
		total += n
	}
	return total
}

// Seed stores articles as if they had been analysed earlier and returns their ids.
func (fb *FakeBackend) Seed(articles ...dto.Article) []domain.ArticleID {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	ids := make([]domain.ArticleID, 0, len(articles))
	for _, a := range articles {
		id := fb.allocID(a.ID)
		a.ID = domain.PersistedID(id)
		if a.CreatedAt.IsZero() {
			a.CreatedAt = dto.Timestamp{Time: fb.now().UTC()}
		}
		if a.BiasScore == nil {
			score := fb.biasScore
			a.BiasScore = &score
		}
		fb.articles[id] = a
		ids = append(ids, a.ID)
	}
	return ids
}

func (fb *FakeBackend) Article(id domain.ArticleID) (dto.Article, bool) {
	n, err := id.Int()
	if err != nil {
		return dto.Article{}, false
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	a, ok := fb.articles[n]
	return a, ok
}

// AddUser registers a user directly and returns a valid token for it.
func (fb *FakeBackend) AddUser(username, email, password string) string {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	fb.users[email] = fakeUser{
		User:     dto.User{ID: int64(len(fb.users) + 1), Username: username, Email: email, Role: "user"},
		password: password,
	}
	token := "token-" + uuid.NewString()
	fb.tokens[token] = email
	return token
}

// allocID must be called with mu held.
func (fb *FakeBackend) allocID(requested domain.ArticleID) int64 {
	if n, err := requested.Int(); err == nil && n > 0 {
		if n > fb.nextID {
			fb.nextID = n
		}
		return n
	}
	fb.nextID++
	return fb.nextID
}

func (fb *FakeBackend) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		route := c.Request().Method + " " + c.Path()

		fb.mu.Lock()
		fb.calls[route]++
		var status int
		if queue := fb.failures[route]; len(queue) > 0 {
			status = queue[0]
			fb.failures[route] = queue[1:]
		}
		var hold *Hold
		if queue := fb.holds[route]; len(queue) > 0 {
			hold = queue[0]
			fb.holds[route] = queue[1:]
		}
		fb.mu.Unlock()

		if hold != nil {
			close(hold.Arrived)
			select {
			case <-hold.release:
			case <-c.Request().Context().Done():
				return c.Request().Context().Err()
			}
		}

		if status != 0 {
			return c.JSON(status, map[string]string{"detail": "injected failure"})
		}
		return next(c)
	}
}

func (fb *FakeBackend) releaseAll() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, h := range fb.allHolds {
		h.Release()
	}
}

func detail(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"detail": msg})
}

func (fb *FakeBackend) analyze(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}

	text, title := req.Text, ""
	if req.Link != "" {
		title = "Article from " + req.Link
		text = "Fetched article body from " + req.Link
	} else {
		firstLine := strings.Split(strings.TrimSpace(text), "\n")[0]
		words := strings.Fields(firstLine)
		if len(words) > 8 {
			words = words[:8]
		}
		title = strings.Join(words, " ")
	}
	if strings.TrimSpace(text) == "" {
		return detail(c, http.StatusBadRequest, "No article content found")
	}

	fb.mu.Lock()
	score := fb.biasScore
	id := fb.allocID("")
	article := dto.Article{
		ID:           domain.PersistedID(id),
		Title:        title,
		Content:      text,
		BiasScore:    &score,
		BiasLabel:    domain.BandOf(score).String(),
		Summary:      "Summary of " + title,
		Explanation:  "Loaded wording in the opening paragraph.",
		Perspectives: []string{"Supporters", "Critics"},
		CreatedAt:    dto.Timestamp{Time: fb.now().UTC()},
	}
	fb.articles[id] = article
	fb.mu.Unlock()

	return c.JSON(http.StatusOK, article)
}

func (fb *FakeBackend) rewrite(c echo.Context) error {
	var req dto.RewriteRequest
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}
	if strings.TrimSpace(req.Text) == "" {
		return detail(c, http.StatusBadRequest, "No article text provided")
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()

	article, ok := fb.articles[req.ArticleID]
	if !ok {
		return detail(c, http.StatusNotFound, "Article not found")
	}
	rewritten := "Neutral: " + req.Text
	article.RewrittenText = &rewritten
	fb.articles[req.ArticleID] = article

	return c.JSON(http.StatusOK, dto.RewriteResponse{RewrittenText: rewritten})
}

func (fb *FakeBackend) list(c echo.Context) error {
	fb.mu.Lock()
	out := make([]dto.Article, 0, len(fb.articles))
	for _, a := range fb.articles {
		out = append(out, a)
	}
	fb.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	return c.JSON(http.StatusOK, out)
}

func (fb *FakeBackend) lookup(c echo.Context) (int64, dto.Article, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, dto.Article{}, false
	}
	a, ok := fb.articles[id]
	return id, a, ok
}

func (fb *FakeBackend) get(c echo.Context) error {
	fb.mu.Lock()
	_, article, ok := fb.lookup(c)
	fb.mu.Unlock()

	if !ok {
		return detail(c, http.StatusNotFound, "Article not found")
	}
	return c.JSON(http.StatusOK, article)
}

func (fb *FakeBackend) update(c echo.Context) error {
	var req dto.UpdateArticleRequest
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()

	id, article, ok := fb.lookup(c)
	if !ok {
		return detail(c, http.StatusNotFound, "Article not found")
	}
	article.Content = req.Text
	article.UpdatedAt = &dto.Timestamp{Time: fb.now().UTC()}
	fb.articles[id] = article
	return c.JSON(http.StatusOK, article)
}

func (fb *FakeBackend) delete(c echo.Context) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	id, _, ok := fb.lookup(c)
	if !ok {
		return detail(c, http.StatusNotFound, "Article not found")
	}
	delete(fb.articles, id)
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (fb *FakeBackend) download(c echo.Context) error {
	fb.mu.Lock()
	_, article, ok := fb.lookup(c)
	fb.mu.Unlock()

	if !ok {
		return detail(c, http.StatusNotFound, "Article not found")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.pdf", article.Title))
	return c.Blob(http.StatusOK, "application/pdf", []byte("%PDF-1.4\n"+article.Title+"\n"))
}

func (fb *FakeBackend) register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()

	if _, exists := fb.users[req.Email]; exists {
		return detail(c, http.StatusBadRequest, "Email already exists")
	}
	fb.users[req.Email] = fakeUser{
		User:     dto.User{ID: int64(len(fb.users) + 1), Username: req.Username, Email: req.Email, Role: "user"},
		password: req.Password,
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "User registered successfully"})
}

func (fb *FakeBackend) login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()

	user, ok := fb.users[req.Email]
	if !ok || user.password != req.Password {
		return detail(c, http.StatusUnauthorized, "Invalid credentials")
	}
	token := "token-" + uuid.NewString()
	fb.tokens[token] = req.Email
	return c.JSON(http.StatusOK, dto.LoginResponse{AccessToken: token, Email: req.Email})
}

func (fb *FakeBackend) me(c echo.Context) error {
	token := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")

	fb.mu.Lock()
	defer fb.mu.Unlock()

	email, ok := fb.tokens[token]
	if !ok {
		return detail(c, http.StatusUnauthorized, "Invalid token")
	}
	return c.JSON(http.StatusOK, fb.users[email].User)
}

func (fb *FakeBackend) forgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()

	if _, ok := fb.users[req.Email]; !ok {
		return detail(c, http.StatusNotFound, "User not found")
	}
	token := "reset-" + uuid.NewString()
	fb.tokens[token] = req.Email
	return c.JSON(http.StatusOK, dto.ForgotPasswordResponse{Message: "Use this token to reset password", ResetToken: token})
}

func (fb *FakeBackend) resetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()

	email, ok := fb.tokens[req.Token]
	if !ok {
		return detail(c, http.StatusUnauthorized, "Invalid token")
	}
	user := fb.users[email]
	user.password = req.NewPassword
	fb.users[email] = user
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset successful"})
}

// WaitArrived blocks until the held request reaches the backend.
func WaitArrived(tb testing.TB, h *Hold) {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	select {
	case <-h.Arrived:
	case <-ctx.Done():
		tb.Fatal("held request never arrived")
	}
}
