package netutil

import (
	"errors"
	"net"
	"net/url"
)

// ShouldRetry reports whether a network error is worth retrying. Only
// transient dial and timeout failures from net/http qualify; anything else
// (including API-level rejections) is permanent.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}

	if timedOut(err) || dialFailed(err) {
		return true
	}

	// url.Error wraps the transport error; unwrap once and re-check.
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil && !errors.Is(urlErr.Err, err) {
		return ShouldRetry(urlErr.Err)
	}
	return false
}

func timedOut(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func dialFailed(err error) bool {
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	if opErr.Op == "dial" {
		return true
	}
	nested, ok := opErr.Err.(net.Error)
	return ok && nested.Timeout()
}
