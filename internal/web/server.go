// Package web provides the browser UI for managing agents and tasks and
// running workflows.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"

	"github.com/metalagman/agentflow/internal/agent"
	"github.com/metalagman/agentflow/internal/catalog"
	"github.com/metalagman/agentflow/internal/pipeline"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageNames = []string{"agents", "tasks", "workflow"}

// Server provides the web UI handlers and state. All handlers share one
// mutex, so registry edits never overlap a running workflow.
type Server struct {
	mu       sync.Mutex
	agents   *agent.Registry
	catalog  *catalog.Catalog
	executor *pipeline.Executor
	metrics  http.Handler
	pages    map[string]*template.Template
}

// NewServer creates a new web server. metrics may be nil.
func NewServer(agents *agent.Registry, tasks *catalog.Catalog, executor *pipeline.Executor, metrics http.Handler) (*Server, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Server{
		agents:   agents,
		catalog:  tasks,
		executor: executor,
		metrics:  metrics,
		pages:    pages,
	}, nil
}

// Routes returns the router for the web UI.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/workflow", http.StatusSeeOther)
	})
	mux.HandleFunc("GET /agents", s.handleAgents)
	mux.HandleFunc("POST /agents", s.handleAddAgent)
	mux.HandleFunc("GET /tasks", s.handleTasks)
	mux.HandleFunc("POST /tasks", s.handleAddTask)
	mux.HandleFunc("GET /workflow", s.handleWorkflow)
	mux.HandleFunc("POST /workflow", s.handleRunWorkflow)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}
	return mux
}

type pageData struct {
	Page   string
	Flash  string
	Error  string
	Agents []agent.Agent
	Roles  []agent.Role
	Tasks  []catalog.Definition
	Form   map[string]string
	Run    *runView
}

type runView struct {
	RunID string
	Steps []stepView
}

type stepView struct {
	Number int
	Task   string
	Agent  string
	Output string
	Failed bool
}

func (s *Server) baseData(page string) pageData {
	return pageData{
		Page:   page,
		Agents: s.agents.List(),
		Roles:  agent.BuiltinRoles(),
		Tasks:  s.catalog.List(),
		Form:   map[string]string{},
	}
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	var buf strings.Builder
	if err := s.pages[data.Page].ExecuteTemplate(&buf, "layout", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

func (s *Server) handleAgents(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.render(w, http.StatusOK, s.baseData("agents"))
}

func (s *Server) handleAddAgent(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(r.FormValue("name"))
	role := strings.TrimSpace(r.FormValue("role"))
	if name == "" || role == "" {
		data := s.baseData("agents")
		data.Error = "Agent name and role are required."
		data.Form["name"] = name
		s.render(w, http.StatusBadRequest, data)
		return
	}

	a := s.agents.Register(name, agent.Role(role))
	log.Info().Str("agent", a.Name).Str("role", string(a.Role)).Msg("agent added")
	data := s.baseData("agents")
	data.Flash = fmt.Sprintf("Agent '%s' with role '%s' added successfully!", a.Name, a.Role)
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleTasks(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.render(w, http.StatusOK, s.baseData("tasks"))
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(r.FormValue("name"))
	description := strings.TrimSpace(r.FormValue("description"))
	if name == "" {
		data := s.baseData("tasks")
		data.Error = "Task name is required."
		data.Form["description"] = description
		s.render(w, http.StatusBadRequest, data)
		return
	}

	s.catalog.Register(name, description)
	log.Info().Str("task", name).Msg("task added")
	data := s.baseData("tasks")
	data.Flash = fmt.Sprintf("Task '%s' added successfully!", name)
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleWorkflow(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.render(w, http.StatusOK, s.baseData("workflow"))
}

func (s *Server) handleRunWorkflow(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	taskText := r.PostForm.Get("tasks")
	url := strings.TrimSpace(r.PostForm.Get("url"))
	tasks := ParseTaskList(taskText)

	data := s.baseData("workflow")
	data.Form["tasks"] = taskText
	data.Form["url"] = url
	if len(tasks) == 0 {
		data.Error = "Select at least one task."
		s.render(w, http.StatusBadRequest, data)
		return
	}

	res := s.executor.Run(r.Context(), tasks, url)
	view := &runView{RunID: res.RunID, Steps: make([]stepView, 0, len(res.Steps))}
	for i, step := range res.Steps {
		sv := stepView{Number: i + 1, Task: step.Task, Output: step.Output, Failed: step.Err != nil}
		if step.Assigned {
			sv.Agent = step.Agent.String()
		}
		view.Steps = append(view.Steps, sv)
	}
	data.Run = view
	data.Flash = "Workflow Execution Completed!"
	s.render(w, http.StatusOK, data)
}

// ParseTaskList splits newline separated task names, dropping blank lines.
func ParseTaskList(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			out = append(out, name)
		}
	}
	return out
}
