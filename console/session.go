package console

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// DefaultPageWindowLength is how many requests a /slot page shows when no
// preference cookie is set yet.
const DefaultPageWindowLength = 25

// PageWindowLengthChoices lists the window lengths offered on the /slot
// page's length dropdown, mirroring the teacher's PageWindowLengthChoices.
var PageWindowLengthChoices = []int{10, 25, 50, 100, 250}

// Session wraps a single request's cookie session, giving named accessors
// for the dashboard's paging preference instead of raw map access.
//
// Grounded on the teacher's console.Session (rendering.go): GetSession,
// ListPageWindowLength/SetListPageWindowLength, and LinksPageWindowLength/
// SetLinksPageWindowLength collapse here into a single SlotPageWindowLength
// pair since this dashboard has only one paginated view (/slot/{slot})
// rather than the teacher's separate /list and /links pages.
type Session struct {
	req  *http.Request
	w    http.ResponseWriter
	sess *sessions.Session
}

// GetSession fetches or creates the dashboard's cookie session for req.
func (s *Server) GetSession(w http.ResponseWriter, req *http.Request) (*Session, error) {
	sess, err := s.sessions.Get(req, "crawlsched")
	if err != nil {
		return nil, err
	}
	return &Session{req: req, w: w, sess: sess}, nil
}

func (sess *Session) save() {
	sess.sess.Save(sess.req, sess.w)
}

// SlotPageWindowLength returns the preferred number of rows to show on the
// /slot page, or DefaultPageWindowLength if no preference has been set.
func (sess *Session) SlotPageWindowLength() int {
	val, ok := sess.sess.Values["pwl"]
	if !ok {
		return DefaultPageWindowLength
	}
	pwl, ok := val.(int)
	if !ok {
		return DefaultPageWindowLength
	}
	return pwl
}

// SetSlotPageWindowLength stores plen as the session's paging preference
// and saves the session cookie.
func (sess *Session) SetSlotPageWindowLength(plen int) {
	sess.sess.Values["pwl"] = plen
	sess.save()
}
