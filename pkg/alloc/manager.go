package alloc

import (
	"sync"

	"github.com/envoyproxy/go-control-plane/pkg/log"
	"github.com/rueian/idalloc/pkg/idnum"
	"lukechampine.com/uint128"
)

// Option configures a Manager.
type Option func(o *options)

type options struct {
	logger log.Logger
}

func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New returns a Manager over the full range of a built-in unsigned type.
func New[T idnum.Unsigned](policy ReusePolicy, opts ...Option) *Manager[T, idnum.Native[T]] {
	return NewManager[T, idnum.Native[T]](policy, opts...)
}

// NewLimitedRange returns a Manager over [lower, upper] of a built-in unsigned type.
func NewLimitedRange[T idnum.Unsigned](policy ReusePolicy, lower, upper T, opts ...Option) (*Manager[T, idnum.Native[T]], error) {
	return NewManagerRange[T, idnum.Native[T]](policy, lower, upper, opts...)
}

// NewWide returns a Manager over all 128-bit ids.
func NewWide(policy ReusePolicy, opts ...Option) *Manager[uint128.Uint128, idnum.Wide] {
	return NewManager[uint128.Uint128, idnum.Wide](policy, opts...)
}

func NewManager[T any, N idnum.Number[T]](policy ReusePolicy, opts ...Option) *Manager[T, N] {
	return wrap(NewID[T, N](policy), opts)
}

func NewManagerRange[T any, N idnum.Number[T]](policy ReusePolicy, lower, upper T, opts ...Option) (*Manager[T, N], error) {
	id, err := NewIDRange[T, N](policy, lower, upper)
	if err != nil {
		return nil, err
	}
	return wrap(id, opts), nil
}

func wrap[T any, N idnum.Number[T]](id *ID[T, N], opts []Option) *Manager[T, N] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager[T, N]{id: id, logger: o.logger}
}

// Manager is an ID guarded by a mutex. Each method holds the lock for the
// duration of that single call.
type Manager[T any, N idnum.Number[T]] struct {
	mu     sync.Mutex
	id     *ID[T, N]
	logger log.Logger
}

func (m *Manager[T, N]) Dump() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id.Dump()
}

func (m *Manager[T, N]) CanAllocate() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id.CanAllocate()
}

func (m *Manager[T, N]) Allocate() (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id.Allocate()
}

// AllocateID allocates under the lock and returns a Handle whose Close frees
// the id through this Manager.
func (m *Manager[T, N]) AllocateID() (*Handle[T], error) {
	id, err := m.Allocate()
	if err != nil {
		return nil, err
	}
	return newHandle[T](m, id), nil
}

func (m *Manager[T, N]) Free(id T) error {
	m.mu.Lock()
	err := m.id.Free(id)
	m.mu.Unlock()
	if err != nil && m.logger != nil {
		m.logger.Warnf("free rejected: %v", err)
	}
	return err
}

func (m *Manager[T, N]) Policy() ReusePolicy { return m.id.Policy() }

func (m *Manager[T, N]) Bounds() (lower, upper T) { return m.id.Bounds() }

func (m *Manager[T, N]) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id.Stats()
}
