package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/newsroom/internal/dto"
	"github.com/DjordjeVuckovic/newsroom/internal/workspace"
	testutil "github.com/DjordjeVuckovic/newsroom/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, fb *testutil.FakeBackend, args ...string) (string, error) {
	t.Helper()
	clearEnv(t)
	t.Setenv("NEWSROOM_API_URL", fb.URL())
	t.Setenv("NEWSROOM_STATE_STORE", "in_mem")
	t.Setenv("NEWSROOM_SHARE_BASE_URL", "https://newsroom.example")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_Analyze(t *testing.T) {
	fb := testutil.NewFakeBackendWithCleanup(t)
	fb.SetBiasScore(90)

	out, err := runCLI(t, fb, "analyze", testutil.ArticleText)
	require.NoError(t, err)

	assert.Contains(t, out, "90/100")
	assert.Contains(t, out, "Highly Biased")
	assert.Contains(t, out, "Free uses: 1/2")
	assert.Equal(t, 1, fb.Calls(testutil.RouteAnalyze))
}

func TestCLI_AnalyzeRejectsShortText(t *testing.T) {
	fb := testutil.NewFakeBackendWithCleanup(t)

	_, err := runCLI(t, fb, "analyze", "hello", "world")

	require.Error(t, err)
	assert.Equal(t, workspace.MsgNotAnArticle, err.Error())
	assert.Equal(t, 0, fb.TotalCalls())
}

func TestCLI_ArticlesAndShare(t *testing.T) {
	fb := testutil.NewFakeBackendWithCleanup(t)
	ids := fb.Seed(dto.Article{Title: "Budget vote"}, dto.Article{Title: "Weather"})

	out, err := runCLI(t, fb, "articles", "--query", "budget")
	require.NoError(t, err)
	assert.Contains(t, out, "Budget vote")
	assert.NotContains(t, out, "Weather")

	out, err = runCLI(t, fb, "articles", "--query", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Weather")

	out, err = runCLI(t, fb, "share", ids[0].String())
	require.NoError(t, err)
	assert.Equal(t, "https://newsroom.example/analysis/"+ids[0].String()+"\n", out)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, check(workspace.OutcomeOK, workspace.Snapshot{}))
	assert.ErrorIs(t, check(workspace.OutcomeAuthRequired, workspace.Snapshot{}), errLoginRequired)
	assert.EqualError(t, check(workspace.OutcomeFailed, workspace.Snapshot{Notice: workspace.MsgRewriteFailed}), workspace.MsgRewriteFailed)
	assert.EqualError(t, check(workspace.OutcomeIgnored, workspace.Snapshot{}), "ignored")
}

func TestReadInput(t *testing.T) {
	text, err := readInput(strings.NewReader("from stdin"), "-", nil)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", text)

	text, err = readInput(nil, "", []string{"two", "words"})
	require.NoError(t, err)
	assert.Equal(t, "two words", text)

	_, err = readInput(nil, "/does/not/exist", nil)
	assert.Error(t, err)
}
