package server

import (
	"context"

	"github.com/golang/protobuf/ptypes/empty"
	"github.com/golang/protobuf/ptypes/wrappers"
	"google.golang.org/grpc"
)

const ServiceName = "idalloc.Allocator"

// AllocatorServer is the server API of the idalloc.Allocator service.
type AllocatorServer interface {
	Allocate(context.Context, *empty.Empty) (*wrappers.UInt64Value, error)
	Free(context.Context, *wrappers.UInt64Value) (*empty.Empty, error)
	Dump(context.Context, *empty.Empty) (*wrappers.StringValue, error)
	CanAllocate(context.Context, *empty.Empty) (*wrappers.BoolValue, error)
	Acquire(context.Context, *wrappers.StringValue) (*wrappers.UInt64Value, error)
	Release(context.Context, *wrappers.StringValue) (*empty.Empty, error)
}

func RegisterAllocatorServer(s grpc.ServiceRegistrar, srv AllocatorServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AllocatorServer)(nil),
	Methods: []grpc.MethodDesc{
		method("Allocate", AllocatorServer.Allocate),
		method("Free", AllocatorServer.Free),
		method("Dump", AllocatorServer.Dump),
		method("CanAllocate", AllocatorServer.CanAllocate),
		method("Acquire", AllocatorServer.Acquire),
		method("Release", AllocatorServer.Release),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "idalloc.proto",
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func method[Req, Resp any](name string, call func(AllocatorServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AllocatorServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(AllocatorServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
