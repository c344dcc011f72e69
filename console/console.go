// Package console serves an HTTP dashboard over a running
// crawlsched.BalancedScheduler: a per-slot queue view, a JSON stats
// endpoint, a CSV dump endpoint, and a REST endpoint for injecting new
// requests.
//
// Grounded on the teacher's console package: Route/Routes from
// controllers.go, Render/BuildRender from rendering.go, and the JSON
// request/response shapes from rest.go, adapted from a Cassandra-backed
// link index to an in-memory BalancedScheduler view.
package console

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/unrolled/render"

	log4go "github.com/ccpaging/log4go"

	"github.com/iParadigms/crawlsched"
)

// Route pairs a URL path with the handler that serves it, mirroring the
// teacher's Route/Routes() pattern so the route table stays declarative.
type Route struct {
	Method     string
	Path       string
	Controller func(s *Server, w http.ResponseWriter, req *http.Request)
}

// Routes lists every endpoint the dashboard serves.
func Routes() []Route {
	return []Route{
		{Method: "GET", Path: "/", Controller: (*Server).home},
		{Method: "GET", Path: "/slot/{slot}", Controller: (*Server).slot},
		{Method: "GET", Path: "/rest/stats", Controller: (*Server).restStats},
		{Method: "GET", Path: "/rest/dump", Controller: (*Server).restDump},
		{Method: "POST", Path: "/rest/add", Controller: (*Server).restAdd},
	}
}

// DomainStats summarizes one domain's queue for the dashboard and the
// /rest/stats endpoint.
type DomainStats struct {
	Slot        string `json:"slot"`
	Length      int    `json:"length"`
	MaxPriority int    `json:"max_priority"`
}

// Server wires a BalancedScheduler to the dashboard's HTTP handlers.
type Server struct {
	Sched    *crawlsched.BalancedScheduler
	Render   *render.Render
	sessions *sessions.CookieStore
}

// NewServer builds a Server backed by sched, using
// crawlsched.Config.Console for its template/public directories.
func NewServer(sched *crawlsched.BalancedScheduler) *Server {
	return &Server{
		Sched: sched,
		Render: render.New(render.Options{
			Directory:     crawlsched.Config.Console.TemplateDirectory,
			Layout:        "layout",
			IndentJSON:    true,
			IsDevelopment: true,
			Funcs: []template.FuncMap{
				{"statusText": http.StatusText},
			},
		}),
		sessions: sessions.NewCookieStore([]byte("crawlsched-dashboard-session")),
	}
}

// Router builds the gorilla/mux router serving Routes() against s.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	for _, route := range Routes() {
		route := route
		r.Methods(route.Method).Path(route.Path).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			route.Controller(s, w, req)
		})
	}
	r.PathPrefix("/public/").Handler(http.StripPrefix("/public/",
		http.FileServer(http.Dir(crawlsched.Config.Console.PublicFolder))))
	return r
}

// ListenAndServe starts the dashboard on crawlsched.Config.Console.Port.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", crawlsched.Config.Console.Port)
	log4go.Info("console: listening on %v", addr)
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) statsFor(slot string) DomainStats {
	q := s.Sched.GetQueue(slot)
	if q == nil {
		return DomainStats{Slot: slot}
	}
	return DomainStats{Slot: slot, Length: q.Len(), MaxPriority: q.MaxPriority()}
}

func (s *Server) allStats() []DomainStats {
	var out []DomainStats
	for _, slot := range s.Sched.GetActiveSlots() {
		out = append(out, s.statsFor(slot))
	}
	return out
}

func (s *Server) home(w http.ResponseWriter, req *http.Request) {
	sess, err := s.GetSession(w, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	domains := s.allStats()
	if pwl := sess.SlotPageWindowLength(); len(domains) > pwl {
		domains = domains[:pwl]
	}
	s.Render.HTML(w, http.StatusOK, "home", map[string]interface{}{
		"Domains": domains,
		"Total":   s.Sched.Len(),
	})
}

// slot renders the live requests for one domain's queue, paginated to the
// requesting session's preferred window length. A ?page_length= query
// parameter matching one of PageWindowLengthChoices updates that
// preference (stored in a cookie session, per the teacher's
// SetPageLengthController) before rendering.
func (s *Server) slot(w http.ResponseWriter, req *http.Request) {
	slot := mux.Vars(req)["slot"]

	sess, err := s.GetSession(w, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if pl := req.URL.Query().Get("page_length"); pl != "" {
		if n, err := strconv.Atoi(pl); err == nil && validPageWindowLength(n) {
			sess.SetSlotPageWindowLength(n)
		}
	}
	pwl := sess.SlotPageWindowLength()

	q := s.Sched.GetQueue(slot)
	if q == nil {
		s.Render.HTML(w, http.StatusNotFound, "slot", map[string]interface{}{
			"Slot":           slot,
			"Requests":       nil,
			"PageLength":     pwl,
			"PageLenChoices": PageWindowLengthChoices,
		})
		return
	}
	requests := q.IterRequests()
	if len(requests) > pwl {
		requests = requests[:pwl]
	}
	s.Render.HTML(w, http.StatusOK, "slot", map[string]interface{}{
		"Slot":           slot,
		"Requests":       requests,
		"PageLength":     pwl,
		"PageLenChoices": PageWindowLengthChoices,
	})
}

func validPageWindowLength(n int) bool {
	for _, p := range PageWindowLengthChoices {
		if p == n {
			return true
		}
	}
	return false
}
