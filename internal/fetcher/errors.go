package fetcher

import (
	"errors"
	"net/url"
)

var (
	ErrTimeout = errors.New("request timed out")
	ErrNetwork = errors.New("network failure")
)

type Kind int

const (
	KindNetwork Kind = iota
	KindTimeout
)

// FetchError is a transport failure talking to the upstream dictionary.
type FetchError struct {
	Kind Kind
	Err  error
}

func newNetworkError(err error) *FetchError {
	return &FetchError{Kind: KindNetwork, Err: err}
}

func (e *FetchError) Error() string {
	if e.Kind == KindTimeout {
		return ErrTimeout.Error()
	}
	return e.Cause()
}

// Cause is a human readable description of the underlying failure.
func (e *FetchError) Cause() string {
	if e.Err == nil {
		return ErrNetwork.Error()
	}
	// *url.Error repeats method and URL, the inner error is enough
	var ue *url.Error
	if errors.As(e.Err, &ue) && ue.Err != nil {
		return ue.Err.Error()
	}
	return e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrNetwork:
		return e.Kind == KindNetwork
	}
	return false
}
