package console

import (
	"encoding/json"
	"net/http"

	log4go "github.com/ccpaging/log4go"

	"github.com/iParadigms/crawlsched"
)

// restErrorResponse mirrors the teacher's tagged-error JSON shape: a
// machine-readable tag plus a human-readable message.
type restErrorResponse struct {
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func buildError(tag, message string) *restErrorResponse {
	return &restErrorResponse{Tag: tag, Message: message}
}

// restAddRequest is the JSON body accepted by POST /rest/add.
type restAddRequest struct {
	Links []struct {
		URL      string  `json:"url"`
		Slot     string  `json:"slot"`
		Priority float64 `json:"priority"` // interpreted as a raw score in [0, 1]
	} `json:"links"`
}

// restAdd decodes a batch of links and pushes one Request per entry into
// the scheduler, using crawlsched.ScoreToPriority to convert the caller's
// score into the internal priority space.
func (s *Server) restAdd(w http.ResponseWriter, req *http.Request) {
	decoder := json.NewDecoder(req.Body)
	var adds restAddRequest
	if err := decoder.Decode(&adds); err != nil {
		log4go.Error("console: restAdd failed to decode: %v", err)
		s.Render.JSON(w, http.StatusBadRequest, buildError("bad-json-decode", err.Error()))
		return
	}

	if len(adds.Links) == 0 {
		s.Render.JSON(w, http.StatusBadRequest, buildError("empty-links", "no links provided to add"))
		return
	}

	var pushed int
	for _, l := range adds.Links {
		if l.URL == "" || l.Slot == "" {
			s.Render.JSON(w, http.StatusBadRequest, buildError("bad-link-element", "every link needs a url and a slot"))
			return
		}
		r := crawlsched.NewRequest(l.URL, l.Slot, l.Priority)
		if err := s.Sched.Push(r); err != nil {
			s.Render.JSON(w, http.StatusBadRequest, buildError("push-failed", err.Error()))
			return
		}
		pushed++
	}

	s.Render.JSON(w, http.StatusOK, map[string]interface{}{"pushed": pushed})
}

// restStats reports a DomainStats row per active slot.
func (s *Server) restStats(w http.ResponseWriter, req *http.Request) {
	s.Render.JSON(w, http.StatusOK, s.allStats())
}

// restDump streams crawlsched's debug CSV dump directly to the client.
func (s *Server) restDump(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	if err := s.Sched.DebugDump(w); err != nil {
		log4go.Error("console: restDump failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
