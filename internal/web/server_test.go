package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/metalagman/agentflow/internal/agent"
	"github.com/metalagman/agentflow/internal/catalog"
	"github.com/metalagman/agentflow/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoModel struct{}

func (echoModel) Generate(_ context.Context, prompt string) (string, error) {
	return "generated for: " + strings.SplitN(strings.TrimSpace(prompt), "\n", 2)[0], nil
}

func newTestServer(t *testing.T) (*Server, *agent.Registry, *catalog.Catalog) {
	t.Helper()
	agents := agent.NewRegistry(
		agent.Agent{Name: "Alice", Role: agent.RoleBusinessAnalyst},
		agent.Agent{Name: "Bob", Role: agent.RoleDeveloper},
	)
	tasks := catalog.New()
	reg := prometheus.NewRegistry()
	exec, err := pipeline.New(agents, tasks, echoModel{}, nil, pipeline.Options{Metrics: pipeline.MustNewMetrics(reg)})
	require.NoError(t, err)
	srv, err := NewServer(agents, tasks, exec, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	require.NoError(t, err)
	return srv, agents, tasks
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRoot_RedirectsToWorkflow(t *testing.T) {
	t.Parallel()

	srv, _, _ := newTestServer(t)
	rec := get(t, srv.Routes(), "/")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/workflow", rec.Header().Get("Location"))
}

func TestAgents_ListAndAdd(t *testing.T) {
	t.Parallel()

	srv, agents, _ := newTestServer(t)
	h := srv.Routes()

	rec := get(t, h, "/agents")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice (Business Analyst)")
	assert.Contains(t, rec.Body.String(), `<option value="QA Tester">`)

	rec = postForm(t, h, "/agents", url.Values{"name": {"Charlie"}, "role": {"QA Tester"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Agent &#39;Charlie&#39; with role &#39;QA Tester&#39; added successfully!")
	assert.Contains(t, rec.Body.String(), "Charlie (QA Tester)")
	assert.Equal(t, 3, agents.Len())
}

func TestAgents_AddRequiresNameAndRole(t *testing.T) {
	t.Parallel()

	srv, agents, _ := newTestServer(t)
	rec := postForm(t, srv.Routes(), "/agents", url.Values{"name": {"  "}, "role": {"Developer"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Agent name and role are required.")
	assert.Equal(t, 2, agents.Len())
}

func TestTasks_ListAndAdd(t *testing.T) {
	t.Parallel()

	srv, _, tasks := newTestServer(t)
	h := srv.Routes()

	rec := get(t, h, "/tasks")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>Script Generation</strong>")

	rec = postForm(t, h, "/tasks", url.Values{"name": {"Accessibility Review"}, "description": {"Check ARIA labels."}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Accessibility Review")
	assert.Equal(t, "Check ARIA labels.", tasks.Instruction("Accessibility Review"))
}

func TestTasks_AddRequiresName(t *testing.T) {
	t.Parallel()

	srv, _, tasks := newTestServer(t)
	rec := postForm(t, srv.Routes(), "/tasks", url.Values{"description": {"orphan"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Task name is required.")
	assert.Len(t, tasks.List(), 4)
}

func TestWorkflow_RunRendersResultsInOrder(t *testing.T) {
	t.Parallel()

	srv, _, _ := newTestServer(t)
	h := srv.Routes()

	rec := postForm(t, h, "/workflow", url.Values{
		"tasks": {"Requirements Gathering\n\nScript Generation\nTest Case Creation\n"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "Workflow Execution Completed!")
	assert.Contains(t, body, "generated for: Generate a list of requirements to test the website")
	assert.Contains(t, body, "generated for: Write a Python Selenium script")
	assert.Contains(t, body, "No suitable agent found for task: Test Case Creation")
	first := strings.Index(body, "<li>Requirements Gathering:")
	second := strings.Index(body, "<li>Script Generation:")
	third := strings.Index(body, "<li>Test Case Creation:")
	require.True(t, first >= 0 && second >= 0 && third >= 0, body)
	assert.True(t, first < second && second < third)

	rec = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `agentflow_pipeline_steps_total{kind="test_case",outcome="no_agent"} 1`)
}

func TestWorkflow_RequiresTasks(t *testing.T) {
	t.Parallel()

	srv, _, _ := newTestServer(t)
	rec := postForm(t, srv.Routes(), "/workflow", url.Values{"tasks": {"\n  \n"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Select at least one task.")
}

func TestParseTaskList(t *testing.T) {
	t.Parallel()

	got := ParseTaskList(" Script Generation \r\n\nScript Generation\nTest Case Creation")
	assert.Equal(t, []string{"Script Generation", "Script Generation", "Test Case Creation"}, got)
}
