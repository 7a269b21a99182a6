package mempool

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/mempool-api/pkg/httpclient"
)

// ErrorKind classifies where in the request/decode pipeline a call failed.
type ErrorKind uint8

const (
	// KindTransport is a network-level failure from the sender.
	KindTransport ErrorKind = iota + 1
	// KindHTTPResponse is a terminal non-2xx response.
	KindHTTPResponse
	// KindDecode is a consensus binary decoding failure.
	KindDecode
	// KindDecodeHex is a consensus hex decoding failure.
	KindDecodeHex
	// KindHexToArray is a failure converting hex into a fixed-size hash.
	KindHexToArray
	// KindJSON is a JSON deserialization failure.
	KindJSON
	// KindParseInt is a failure parsing a decimal text body.
	KindParseInt
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTPResponse:
		return "http response"
	case KindDecode:
		return "consensus decode"
	case KindDecodeHex:
		return "consensus decode hex"
	case KindHexToArray:
		return "hex to array"
	case KindJSON:
		return "json decode"
	case KindParseInt:
		return "parse int"
	default:
		return "unknown"
	}
}

// Error is the unified error returned by every Client method. Kind tells the
// caller which pipeline stage failed; Err is the underlying cause and is
// reachable through errors.As/Is. For KindHTTPResponse the cause is a
// *httpclient.StatusError carrying the numeric status and body text.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// transportError classifies an error coming out of the sender: structured
// status errors keep their own kind, everything else is a transport failure.
func transportError(err error) *Error {
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		return newError(KindHTTPResponse, err)
	}
	return newError(KindTransport, err)
}
