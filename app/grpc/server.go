package grpc

import (
	"context"
	"errors"

	"github.com/vibast-solutions/ms-go-bridal/app/mapper"
	"github.com/vibast-solutions/ms-go-bridal/app/service"
	"github.com/vibast-solutions/ms-go-bridal/app/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server exposes read-only plan search to other internal services. Requests
// carry the same parameter names as the HTTP query string and responses the
// same JSON shape as the HTTP API.
type Server struct {
	types.UnimplementedPlanCatalogServer
	planService *service.PlanService
	mapper      *mapper.Mapper
}

func NewServer(planService *service.PlanService, m *mapper.Mapper) *Server {
	return &Server{planService: planService, mapper: m}
}

func (s *Server) SearchPlans(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	l := loggerWithContext(ctx)
	req := types.NewSearchPlansRequestFromStruct(in)

	items, err := s.planService.SearchPlans(ctx, req.Params())
	if err != nil {
		l.WithError(err).Error("Search plans failed")
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return s.encode(ctx, s.mapper.PlanList(items))
}

func (s *Server) GetPlan(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	l := loggerWithContext(ctx)
	req := types.NewGetPlanRequestFromStruct(in)
	if err := req.Validate(); err != nil {
		l.WithError(err).Debug("Get plan validation failed")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, err := s.planService.GetPlanDetail(ctx, req.GetId())
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			return nil, status.Error(codes.NotFound, "plan not found")
		}
		l.WithError(err).Error("Get plan failed")
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return s.encode(ctx, s.mapper.PlanDetail(item, nil))
}

func (s *Server) ListCatalogOptions(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return s.encode(ctx, mapper.CatalogOptions())
}

func (s *Server) encode(ctx context.Context, v interface{}) (*structpb.Struct, error) {
	out, err := types.ToStruct(v)
	if err != nil {
		loggerWithContext(ctx).WithError(err).Error("Response encoding failed")
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return out, nil
}
