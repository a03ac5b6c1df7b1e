package service

// Recorder receives business events for metrics. A nil Recorder on a
// service is allowed and records nothing.
type Recorder interface {
	GuardDecision(outcome string)
	InviteIssued(role string)
	InviteAccepted(outcome string)
	TenantCreated()
}

// Guard decision outcomes.
const (
	OutcomeAllowed   = "allowed"
	OutcomeForbidden = "forbidden"
	OutcomeNotFound  = "not_found"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

// Invite acceptance outcomes.
const (
	AcceptJoined   = "joined"
	AcceptExisting = "existing_member"
	AcceptReplay   = "replay"
	AcceptRejected = "rejected"
	AcceptMismatch = "email_mismatch"
)

type nopRecorder struct{}

func (nopRecorder) GuardDecision(string)  {}
func (nopRecorder) InviteIssued(string)   {}
func (nopRecorder) InviteAccepted(string) {}
func (nopRecorder) TenantCreated()        {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
