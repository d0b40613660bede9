package server

import (
	"context"

	"github.com/golang/protobuf/ptypes/empty"
	"github.com/golang/protobuf/ptypes/wrappers"
	"github.com/pkg/errors"
	"github.com/rueian/idalloc/pkg/alloc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Client talks to a remote idalloc.Allocator. Errors from the server are
// mapped back onto the alloc sentinels, so errors.Is works across the wire.
type Client struct {
	cc grpc.ClientConnInterface
}

func (c *Client) Allocate(ctx context.Context) (uint64, error) {
	out := &wrappers.UInt64Value{}
	if err := c.cc.Invoke(ctx, fullMethod("Allocate"), &empty.Empty{}, out); err != nil {
		return 0, fromStatus(err)
	}
	return out.GetValue(), nil
}

func (c *Client) Free(ctx context.Context, id uint64) error {
	return fromStatus(c.cc.Invoke(ctx, fullMethod("Free"), &wrappers.UInt64Value{Value: id}, &empty.Empty{}))
}

func (c *Client) Dump(ctx context.Context) (string, error) {
	out := &wrappers.StringValue{}
	if err := c.cc.Invoke(ctx, fullMethod("Dump"), &empty.Empty{}, out); err != nil {
		return "", fromStatus(err)
	}
	return out.GetValue(), nil
}

func (c *Client) CanAllocate(ctx context.Context) (bool, error) {
	out := &wrappers.BoolValue{}
	if err := c.cc.Invoke(ctx, fullMethod("CanAllocate"), &empty.Empty{}, out); err != nil {
		return false, fromStatus(err)
	}
	return out.GetValue(), nil
}

func (c *Client) Acquire(ctx context.Context, key string) (uint64, error) {
	out := &wrappers.UInt64Value{}
	if err := c.cc.Invoke(ctx, fullMethod("Acquire"), &wrappers.StringValue{Value: key}, out); err != nil {
		return 0, fromStatus(err)
	}
	return out.GetValue(), nil
}

func (c *Client) Release(ctx context.Context, key string) error {
	return fromStatus(c.cc.Invoke(ctx, fullMethod("Release"), &wrappers.StringValue{Value: key}, &empty.Empty{}))
}

func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.ResourceExhausted:
		return errors.WithMessage(alloc.ErrExhausted, "remote")
	case codes.FailedPrecondition:
		return errors.WithMessage(alloc.ErrInvalidRelease, "remote")
	}
	return err
}
