package types

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// The catalog API carries google.protobuf.Struct messages whose fields
// mirror the JSON HTTP API.

const (
	PlanCatalog_ServiceName                       = "bridal.v1.PlanCatalog"
	PlanCatalog_SearchPlans_FullMethodName        = "/bridal.v1.PlanCatalog/SearchPlans"
	PlanCatalog_GetPlan_FullMethodName            = "/bridal.v1.PlanCatalog/GetPlan"
	PlanCatalog_ListCatalogOptions_FullMethodName = "/bridal.v1.PlanCatalog/ListCatalogOptions"
)

type PlanCatalogClient interface {
	SearchPlans(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetPlan(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListCatalogOptions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type planCatalogClient struct {
	cc grpc.ClientConnInterface
}

func NewPlanCatalogClient(cc grpc.ClientConnInterface) PlanCatalogClient {
	return &planCatalogClient{cc}
}

func (c *planCatalogClient) SearchPlans(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PlanCatalog_SearchPlans_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *planCatalogClient) GetPlan(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PlanCatalog_GetPlan_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *planCatalogClient) ListCatalogOptions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PlanCatalog_ListCatalogOptions_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type PlanCatalogServer interface {
	SearchPlans(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPlan(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCatalogOptions(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type UnimplementedPlanCatalogServer struct{}

func (UnimplementedPlanCatalogServer) SearchPlans(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method SearchPlans not implemented")
}

func (UnimplementedPlanCatalogServer) GetPlan(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPlan not implemented")
}

func (UnimplementedPlanCatalogServer) ListCatalogOptions(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCatalogOptions not implemented")
}

func RegisterPlanCatalogServer(s grpc.ServiceRegistrar, srv PlanCatalogServer) {
	s.RegisterService(&PlanCatalog_ServiceDesc, srv)
}

func unaryHandler(fullMethod string, call func(PlanCatalogServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PlanCatalogServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(PlanCatalogServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var PlanCatalog_ServiceDesc = grpc.ServiceDesc{
	ServiceName: PlanCatalog_ServiceName,
	HandlerType: (*PlanCatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SearchPlans",
			Handler:    unaryHandler(PlanCatalog_SearchPlans_FullMethodName, PlanCatalogServer.SearchPlans),
		},
		{
			MethodName: "GetPlan",
			Handler:    unaryHandler(PlanCatalog_GetPlan_FullMethodName, PlanCatalogServer.GetPlan),
		},
		{
			MethodName: "ListCatalogOptions",
			Handler:    unaryHandler(PlanCatalog_ListCatalogOptions_FullMethodName, PlanCatalogServer.ListCatalogOptions),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bridal/v1/plan_catalog.proto",
}
