package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/titanhub-backend/internal/pkg/logger"
)

// Session is the opaque identity blob the dashboard shell keeps for its
// current operator. There is deliberately no credential verification behind
// it; the shell only needs a stable identity to hang preferences on.
type Session struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	GymBranch string `json:"gym_branch"`
	Role      string `json:"role"`
}

// SessionService gives the HTTP boundary an explicit load-or-create /
// clear lifecycle for those blobs. Everything lives in memory; restarting
// the service simply logs everyone out.
type SessionService struct {
	log *logger.Logger

	mu       sync.Mutex
	byToken  map[string]Session
	genID    func() string
	genToken func() string
}

func NewSessionService(log *logger.Logger) *SessionService {
	return &SessionService{
		log:      log.With("service", "SessionService"),
		byToken:  make(map[string]Session),
		genID:    func() string { return "usr_" + uuid.NewString() },
		genToken: uuid.NewString,
	}
}

func (s *SessionService) Create(email string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return Session{}, fmt.Errorf("a valid email is required")
	}
	sess := Session{
		ID:        s.genID(),
		Token:     s.genToken(),
		Email:     email,
		Name:      email[:strings.Index(email, "@")],
		GymBranch: "Main",
		Role:      "Admin",
	}
	s.mu.Lock()
	s.byToken[sess.Token] = sess
	s.mu.Unlock()
	s.log.Info("Session created", "session_id", sess.ID)
	return sess, nil
}

func (s *SessionService) Get(token string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byToken[strings.TrimSpace(token)]
	return sess, ok
}

func (s *SessionService) Clear(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, strings.TrimSpace(token))
}
