package server

import (
	"context"
	"net"
	"sync"

	"github.com/envoyproxy/go-control-plane/pkg/log"
	"github.com/golang/protobuf/ptypes/empty"
	"github.com/golang/protobuf/ptypes/wrappers"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rueian/idalloc/pkg/alloc"
	"github.com/rueian/idalloc/pkg/idnum"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Manager is the allocator the service hands ids out of.
type Manager = alloc.Manager[uint64, idnum.Native[uint64]]

func NewServer(logger log.Logger, ids *Manager, options ...func(s *Server)) *Server {
	s := &Server{
		logger: logger,
		ids:    ids,
		keys:   alloc.NewKeys(ids),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "idalloc_requests_total",
			Help: "Allocator RPCs by method and status code.",
		}, []string{"method", "code"}),
	}
	for _, o := range options {
		o(s)
	}
	return s
}

func Debug(debug bool) func(s *Server) {
	return func(s *Server) { s.debug = debug }
}

// Keys shares a keyed allocator with other lease holders, such as the kube
// controller, so that they all draw from the same ids.
func Keys(keys *alloc.Keys[uint64, idnum.Native[uint64]]) func(s *Server) {
	return func(s *Server) { s.keys = keys }
}

type Server struct {
	debug    bool
	logger   log.Logger
	ids      *Manager
	keys     *alloc.Keys[uint64, idnum.Native[uint64]]
	requests *prometheus.CounterVec

	mu      sync.Mutex
	server  *grpc.Server
	stopped bool
}

var _ AllocatorServer = (*Server)(nil)

// Collectors returns the metrics of the service and its allocator.
func (s *Server) Collectors() []prometheus.Collector {
	return []prometheus.Collector{s.requests, alloc.NewCollector("grpc", s.ids)}
}

func (s *Server) Serve(lis net.Listener, options ...grpc.ServerOption) error {
	options = append(options, grpc.ChainUnaryInterceptor(s.observe))
	server := grpc.NewServer(options...)
	RegisterAllocatorServer(server, s)
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.server = server
	s.mu.Unlock()
	return server.Serve(lis)
}

// GracefulStop stops a running Serve. Serve calls made after it return
// immediately.
func (s *Server) GracefulStop() {
	s.mu.Lock()
	s.stopped = true
	server := s.server
	s.mu.Unlock()
	if server != nil {
		server.GracefulStop()
	}
}

func (s *Server) Allocate(ctx context.Context, _ *empty.Empty) (*wrappers.UInt64Value, error) {
	id, err := s.ids.Allocate()
	if err != nil {
		return nil, toStatus(err)
	}
	return &wrappers.UInt64Value{Value: id}, nil
}

// Free only accepts ids handed out by Allocate; ids leased to a key are
// given back with Release.
func (s *Server) Free(ctx context.Context, in *wrappers.UInt64Value) (*empty.Empty, error) {
	if err := s.keys.Free(in.GetValue()); err != nil {
		return nil, toStatus(err)
	}
	return &empty.Empty{}, nil
}

func (s *Server) Dump(ctx context.Context, _ *empty.Empty) (*wrappers.StringValue, error) {
	return &wrappers.StringValue{Value: s.ids.Dump()}, nil
}

func (s *Server) CanAllocate(ctx context.Context, _ *empty.Empty) (*wrappers.BoolValue, error) {
	return &wrappers.BoolValue{Value: s.ids.CanAllocate()}, nil
}

func (s *Server) Acquire(ctx context.Context, in *wrappers.StringValue) (*wrappers.UInt64Value, error) {
	if in.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "key must not be empty")
	}
	id, err := s.keys.Acquire(in.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return &wrappers.UInt64Value{Value: id}, nil
}

func (s *Server) Release(ctx context.Context, in *wrappers.StringValue) (*empty.Empty, error) {
	if in.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "key must not be empty")
	}
	if err := s.keys.Release(in.GetValue()); err != nil {
		return nil, toStatus(err)
	}
	return &empty.Empty{}, nil
}

func (s *Server) observe(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	resp, err := handler(ctx, req)
	code := status.Code(err)
	s.requests.WithLabelValues(info.FullMethod, code.String()).Inc()
	if err != nil {
		if code == codes.Internal {
			s.logger.Errorf("%s failed: %v", info.FullMethod, err)
		} else {
			s.logger.Debugf("%s rejected: %v", info.FullMethod, err)
		}
	} else if s.debug {
		s.logger.Debugf("%s %v -> %v", info.FullMethod, req, resp)
	}
	return resp, err
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, alloc.ErrExhausted):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, alloc.ErrInvalidRelease):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
