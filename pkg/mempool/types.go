package mempool

import (
	"context"

	"github.com/goodnatureofminers/mempool-api/pkg/httpclient"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Sender is the transport capability the client is built on: one HTTP
	// exchange against a fully-qualified URL returning the response body.
	// Implementations own status validation and any retry policy; a body is
	// returned iff the exchange ended in a 2xx. *httpclient.Client satisfies
	// this. Implementations must be safe for concurrent use.
	Sender interface {
		Send(ctx context.Context, method httpclient.Method, url string, body []byte) ([]byte, error)
	}
)
