package grpcserver

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
)

const (
	ServiceName         = "adminhub.v1.NormalizeService"
	normalizeFullMethod = "/" + ServiceName + "/Normalize"
)

type NormalizeRequest struct {
	Domain  string          `json:"domain"`
	Period  string          `json:"period,omitempty"`
	Tab     string          `json:"tab,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

type NormalizeResponse struct {
	Domain string          `json:"domain"`
	Period string          `json:"period"`
	Tab    string          `json:"tab"`
	Items  json.RawMessage `json:"items"`
	Counts map[string]int  `json:"counts"`
	Total  int             `json:"total"`
}

// NormalizeServer is implemented by Server.
type NormalizeServer interface {
	Normalize(context.Context, *NormalizeRequest) (*NormalizeResponse, error)
}

var NormalizeServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NormalizeServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Normalize", Handler: normalizeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "adminhub/v1/normalize",
}

func RegisterNormalizeServer(s grpc.ServiceRegistrar, srv NormalizeServer) {
	s.RegisterService(&NormalizeServiceDesc, srv)
}

func normalizeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(NormalizeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NormalizeServer).Normalize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: normalizeFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NormalizeServer).Normalize(ctx, req.(*NormalizeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls NormalizeService over any connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Normalize(ctx context.Context, in *NormalizeRequest, opts ...grpc.CallOption) (*NormalizeResponse, error) {
	out := new(NormalizeResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, normalizeFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
