package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/datapath/internal/curriculum"
	"github.com/abhisek/datapath/internal/tutor"
)

const sessionKey = "datapath.session"

// maxEventBytes bounds an event request body.
const maxEventBytes = 64 << 10

// sessionCreated is the payload of POST /api/v1/sessions.
type sessionCreated struct {
	Token string     `json:"token"`
	State tutor.View `json:"state"`
}

// createSession starts a session and moves it past the splash page.
func (s *Server) createSession(c *gin.Context) {
	sess := s.sessions.Create()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := s.exec.Dispatch(c.Request.Context(), sess.state, tutor.SplashElapsed{}); err != nil {
		errorResponse(c, http.StatusInternalServerError, "Failed to start session", err, nil)
		return
	}
	token, err := s.tokens.Issue(sess.state.ID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "Failed to issue token", err, nil)
		return
	}

	s.logger.WithField("session", sess.state.ID).Info("api session created")
	successResponse(c, "Session created", sessionCreated{Token: token, State: sess.state.View()})
}

// requireSession resolves the bearer token to a live session.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := s.tokens.Parse(bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			unauthorized(c, err)
			return
		}
		sess, ok := s.sessions.Get(claims.SessionID)
		if !ok {
			errorResponse(c, http.StatusNotFound, "Session not found or expired", nil, nil)
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *session {
	return c.MustGet(sessionKey).(*session)
}

func (s *Server) getSession(c *gin.Context) {
	sess := sessionFrom(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	successResponse(c, "OK", sess.state.View())
}

// postEvent decodes one user event and dispatches it, running any
// generation, chat or save it triggers before replying.
func (s *Server) postEvent(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxEventBytes))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "Failed to read request body", err, nil)
		return
	}
	ev, err := tutor.DecodeEvent(body)
	if err != nil {
		eventsTotal.WithLabelValues("unknown", "bad_request").Inc()
		errorResponse(c, http.StatusBadRequest, "Invalid event", err, nil)
		return
	}
	name := tutor.EventName(ev)

	sess := sessionFrom(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	start := time.Now()
	err = s.exec.Dispatch(c.Request.Context(), sess.state, ev)
	eventDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	log := s.logger.WithFields(logrus.Fields{
		"session": sess.state.ID,
		"event":   name,
		"page":    sess.state.Page.String(),
	})

	if err != nil {
		var invalid *tutor.InvalidEventError
		status, outcome := http.StatusUnprocessableEntity, "invalid"
		if errors.As(err, &invalid) {
			status, outcome = http.StatusConflict, "rejected"
		}
		eventsTotal.WithLabelValues(name, outcome).Inc()
		log.WithError(err).Debug("event rejected")
		errorResponse(c, status, "Event not applied", err, sess.state.View())
		return
	}

	eventsTotal.WithLabelValues(name, "applied").Inc()
	log.Debug("event applied")
	successResponse(c, "OK", sess.state.View())
}

// topicList is the payload of GET /api/v1/topics.
type topicList struct {
	Level  curriculum.Level `json:"level"`
	Blurb  string           `json:"blurb"`
	Topics []string         `json:"topics"`
}

func (s *Server) listTopics(c *gin.Context) {
	levels := curriculum.AllLevels()
	if q := c.Query("level"); q != "" {
		level, err := curriculum.ParseLevel(q)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "Unknown level", err, nil)
			return
		}
		levels = []curriculum.Level{level}
	}

	out := make([]topicList, 0, len(levels))
	for _, l := range levels {
		out = append(out, topicList{Level: l, Blurb: l.Blurb(), Topics: curriculum.Topics(l)})
	}
	successResponse(c, "OK", out)
}
