package fetch

import "github.com/AlibekovAA/profile-cards/internal/profile/domain"

type Kind int

const (
	KindPending Kind = iota
	KindLoaded
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindPending:
		return "pending"
	case KindLoaded:
		return "loaded"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type FailureReason int

const (
	FailureTransport FailureReason = iota + 1
	FailureDecode
)

func (r FailureReason) String() string {
	switch r {
	case FailureTransport:
		return "transport"
	case FailureDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// State is the lifecycle of the single user list request. It is sealed:
// Pending, Loaded and Failed are the only implementations.
type State interface {
	Kind() Kind
	sealed()
}

type Pending struct{}

type Loaded struct {
	Users []domain.User
}

type Failed struct {
	Message string
	Reason  FailureReason
	Err     error
}

func (Pending) Kind() Kind { return KindPending }
func (Loaded) Kind() Kind  { return KindLoaded }
func (Failed) Kind() Kind  { return KindFailed }

func (Pending) sealed() {}
func (Loaded) sealed()  {}
func (Failed) sealed()  {}
