package mock

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/laops/shipsync"
	"github.com/laops/shipsync/internal/clock"
)

var ErrNotImplemented = errors.New("not implemented")

type Client struct {
	SyncShipmentFunc func(ctx context.Context, params *shipsync.SyncShipmentInput) (*shipsync.SyncShipmentOutput, error)
}

func (m Client) SyncShipment(ctx context.Context, params *shipsync.SyncShipmentInput) (*shipsync.SyncShipmentOutput, error) {
	if m.SyncShipmentFunc != nil {
		return m.SyncShipmentFunc(ctx, params)
	}
	return nil, ErrNotImplemented
}

// Signer signs nothing by default so that HTTP-level tests can run against
// local test servers without credentials.
type Signer struct {
	SignHTTPFunc func(ctx context.Context, r *http.Request, payloadHash string, signingTime time.Time) error
}

func (m Signer) SignHTTP(ctx context.Context, r *http.Request, payloadHash string, signingTime time.Time) error {
	if m.SignHTTPFunc != nil {
		return m.SignHTTPFunc(ctx, r, payloadHash, signingTime)
	}
	return nil
}

type ShipmentResolver struct {
	ResolveShipmentFunc func(ctx context.Context, record *shipsync.ShipmentRecord) (*shipsync.ResolveShipmentOutput, error)
}

func (m ShipmentResolver) ResolveShipment(ctx context.Context, record *shipsync.ShipmentRecord) (*shipsync.ResolveShipmentOutput, error) {
	if m.ResolveShipmentFunc != nil {
		return m.ResolveShipmentFunc(ctx, record)
	}
	return nil, ErrNotImplemented
}

type RecordSource struct {
	NextFunc  func() (*shipsync.Row, error)
	CloseFunc func() error
}

func (m RecordSource) Next() (*shipsync.Row, error) {
	if m.NextFunc != nil {
		return m.NextFunc()
	}
	return nil, ErrNotImplemented
}

func (m RecordSource) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// NewSliceRecordSource yields a fixed set of rows in order.
func NewSliceRecordSource(rows ...*shipsync.Row) *SliceRecordSource {
	return &SliceRecordSource{rows: rows}
}

type SliceRecordSource struct {
	rows []*shipsync.Row
	next int
}

func (s *SliceRecordSource) Next() (*shipsync.Row, error) {
	if s.next >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.next]
	s.next++
	return row, nil
}

func (s *SliceRecordSource) Close() error { return nil }

type Clock struct {
	T time.Time
}

func (m Clock) Now() time.Time {
	return m.T
}

var _ clock.Clock = Clock{}

func WithClock(c clock.Clock) func(o *shipsync.ClientOptions) {
	return func(o *shipsync.ClientOptions) {
		if c != nil {
			o.Clock = c
		}
	}
}
