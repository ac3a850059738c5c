package privacy

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/opsdeck/backoffice/internal/metrics"
)

type State string

const (
	StateLocked              State = "locked"
	StatePendingVerification State = "pending_verification"
	StateAuthenticated       State = "authenticated"
)

var (
	ErrInvalidCredentials    = errors.New("invalid step-up credentials")
	ErrNoPendingVerification = errors.New("no pending verification for identity")
)

// Credentials is the step-up proof: a 4-character verification code, the
// secondary-channel credential and the default credential. All three are
// required.
type Credentials struct {
	Code     string `json:"code"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

func (c Credentials) valid() bool {
	return utf8.RuneCountInString(c.Code) == 4 && c.OTP != "" && c.Password != ""
}

type session struct {
	state     State
	requested Field
	visible   map[Field]bool
}

// Gate is the per-identity step-up authentication state machine. Sessions
// move Locked -> PendingVerification -> Authenticated and never revert from
// Authenticated within the process lifetime.
type Gate struct {
	mu       sync.Mutex
	sessions map[string]*session

	policy       *Policy
	confirmDelay time.Duration
	logger       *zap.Logger
}

const defaultConfirmDelay = 2 * time.Second

func NewGate(policy *Policy, logger *zap.Logger) *Gate {
	return &Gate{
		sessions:     make(map[string]*session),
		policy:       policy,
		confirmDelay: defaultConfirmDelay,
		logger:       logger,
	}
}

// SetConfirmDelay overrides the post-verification confirmation delay.
func (g *Gate) SetConfirmDelay(d time.Duration) {
	g.mu.Lock()
	g.confirmDelay = d
	g.mu.Unlock()
}

func (g *Gate) session(identity string) *session {
	s, ok := g.sessions[identity]
	if !ok {
		s = &session{state: StateLocked, visible: make(map[Field]bool)}
		g.sessions[identity] = s
	}
	return s
}

// State reports the session state for an identity. Unknown identities are
// Locked.
func (g *Gate) State(identity string) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok := g.sessions[identity]; ok {
		return s.state
	}
	return StateLocked
}

// RequestReveal starts the step-up flow for the field that triggered it. A
// no-op for identities already authenticated.
func (g *Gate) RequestReveal(identity string, field Field) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.session(identity)
	if s.state == StateAuthenticated {
		return
	}
	s.state = StatePendingVerification
	s.requested = field
}

// Submit validates the step-up credentials for a pending identity. Invalid
// credentials leave the session pending so the caller can re-prompt. Valid
// credentials authenticate the identity after the confirmation delay and
// toggle every protected field visible, not just the one that triggered the
// flow.
func (g *Gate) Submit(ctx context.Context, identity string, creds Credentials) error {
	g.mu.Lock()
	s := g.session(identity)
	if s.state != StatePendingVerification {
		g.mu.Unlock()
		return ErrNoPendingVerification
	}
	delay := g.confirmDelay
	g.mu.Unlock()

	if !creds.valid() {
		metrics.StepUpAttemptsTotal.WithLabelValues("rejected").Inc()
		return ErrInvalidCredentials
	}

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	s = g.session(identity)
	// The flow may have been cancelled while the delay ran.
	if s.state != StatePendingVerification {
		return ErrNoPendingVerification
	}
	s.state = StateAuthenticated
	for _, f := range AllFields {
		s.visible[f] = true
	}

	metrics.StepUpAttemptsTotal.WithLabelValues("accepted").Inc()
	g.logger.Info("identity authenticated for protected fields",
		zap.String("identity", identity),
		zap.String("requested_field", string(s.requested)))
	return nil
}

// Cancel abandons a pending verification. Authenticated sessions are not
// affected.
func (g *Gate) Cancel(identity string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.session(identity)
	if s.state == StatePendingVerification {
		s.state = StateLocked
		s.requested = ""
	}
}

// ToggleField flips the per-field visibility for an identity and returns the
// new value. Visibility only takes effect once the identity is
// authenticated.
func (g *Gate) ToggleField(identity string, field Field) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.session(identity)
	s.visible[field] = !s.visible[field]
	if s.visible[field] {
		metrics.FieldRevealsTotal.Inc()
	}
	return s.visible[field]
}

// IsFieldVisible reports whether a field may be rendered unmasked for an
// identity: either the global policy leaves the field unprotected, or the
// identity is authenticated and the field is currently toggled visible.
func (g *Gate) IsFieldVisible(identity string, field Field) bool {
	if !g.policy.Protected(field) {
		return true
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	s, ok := g.sessions[identity]
	if !ok {
		return false
	}
	return s.state == StateAuthenticated && s.visible[field]
}
