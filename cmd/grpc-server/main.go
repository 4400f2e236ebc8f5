package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"adminhub/internal/auth"
	"adminhub/internal/dashboard"
	"adminhub/internal/grpcserver"
	"adminhub/internal/logging"
	"adminhub/internal/normalize"
	"adminhub/pkg/utils"
)

func main() {
	cfg, err := utils.Load()
	if err != nil {
		l := logging.Init(logging.ParseLevel("info"), false)
		l.Fatal().Err(err).Msg("load config")
	}
	log := logging.Init(logging.ParseLevel(cfg.Log.Level), cfg.Log.Pretty)

	listener, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.GRPC.Addr).Msg("grpc listen failed")
	}

	normalizer := normalize.New(
		normalize.WithCurrency(cfg.Normalize.Currency),
		normalize.WithDateLayout(cfg.Normalize.DateLayout),
		normalize.WithLocation(cfg.Normalize.Location()),
	)
	svc := grpcserver.NewServer(dashboard.NewService(normalizer), log)
	tokens := auth.TokenService{
		Secret:   []byte(cfg.Auth.JWTSecret),
		Issuer:   cfg.Auth.JWTIssuer,
		Duration: cfg.Auth.JWTDuration,
	}
	grpcServer, health := grpcserver.NewGRPCServer(svc, log,
		grpc.ChainUnaryInterceptor(grpcserver.AuthInterceptor(tokens)),
	)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
		health.Shutdown()
		grpcServer.GracefulStop()
	}()

	log.Info().Str("addr", cfg.GRPC.Addr).Msg("gRPC server listening")
	if err := grpcServer.Serve(listener); err != nil {
		log.Fatal().Err(err).Msg("grpc server stopped")
	}
	log.Info().Msg("gRPC server stopped")
}
