package grpcserver

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"adminhub/internal/apperr"
	"adminhub/internal/dashboard"
)

type Server struct {
	Dashboard *dashboard.Service
	Log       zerolog.Logger
}

func NewServer(svc *dashboard.Service, log zerolog.Logger) *Server {
	return &Server{Dashboard: svc, Log: log}
}

func (s *Server) Normalize(ctx context.Context, req *NormalizeRequest) (*NormalizeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	q, err := dashboard.ParseQuery(req.Domain, req.Period, req.Tab)
	if err != nil {
		return nil, s.toStatus(err)
	}

	var payload any
	if len(req.Payload) > 0 {
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return nil, status.Error(codes.InvalidArgument, "payload must be JSON")
		}
	}

	view, err := s.Dashboard.View(q, payload)
	if err != nil {
		return nil, s.toStatus(err)
	}

	items, err := json.Marshal(view.Items)
	if err != nil {
		return nil, s.toStatus(apperr.Wrap(err))
	}

	return &NormalizeResponse{
		Domain: string(view.Domain),
		Period: string(view.Period),
		Tab:    view.Tab,
		Items:  items,
		Counts: view.Counts,
		Total:  view.Total,
	}, nil
}

func (s *Server) toStatus(err error) error {
	code := apperr.GRPCCode(err)
	if code == codes.Internal {
		s.Log.Error().Err(err).Msg("normalize failed")
	}
	return status.Error(code, apperr.PublicMessage(err))
}

// NewGRPCServer builds a grpc.Server carrying NormalizeService and the
// standard health service, with a zerolog access interceptor.
func NewGRPCServer(svc *Server, log zerolog.Logger, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(LoggingInterceptor(log))}, opts...)
	gs := grpc.NewServer(opts...)

	RegisterNormalizeServer(gs, svc)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gs, hs)

	return gs, hs
}

func LoggingInterceptor(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		ev := log.Info()
		if code != codes.OK {
			ev = log.Warn()
		}
		ev.Str("method", info.FullMethod).
			Str("code", code.String()).
			Dur("latency", time.Since(start)).
			Msg("grpc_request")
		return resp, err
	}
}
