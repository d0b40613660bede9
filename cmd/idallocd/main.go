package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rueian/idalloc/pkg/alloc"
	"github.com/rueian/idalloc/pkg/config"
	"github.com/rueian/idalloc/pkg/kube"
	"github.com/rueian/idalloc/pkg/logger"
	"github.com/rueian/idalloc/pkg/server"
	"golang.org/x/sync/errgroup"
)

var l = &logger.Std{}

func main() {
	conf, err := config.GetDaemon()
	if err != nil {
		l.Fatalf("envconfig error %+v", err)
	}
	l = logger.NewStd(conf.Debug)

	policy, err := alloc.ParseReusePolicy(conf.ReusePolicy)
	if err != nil {
		l.Fatalf("reuse policy error %+v", err)
	}
	ids, err := alloc.NewLimitedRange[uint64](policy, conf.IDMin, conf.IDMax, alloc.WithLogger(l.With("component", "alloc")))
	if err != nil {
		l.Fatalf("id range error %+v", err)
	}
	keys := alloc.NewKeys(ids)

	srv := server.NewServer(l.With("component", "grpc"), ids, server.Debug(conf.Debug), server.Keys(keys))

	registry := prometheus.NewRegistry()
	registry.MustRegister(srv.Collectors()...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if conf.KubeEnabled {
		mgr, err := kube.NewManager(conf.KubeNamespace)
		if err != nil {
			l.Fatalf("manager error %+v", err)
		}
		if err = kube.SetupEndpointController(mgr, l.With("component", "kube"), keys); err != nil {
			l.Fatalf("controller error %+v", err)
		}
		g.Go(func() error {
			return mgr.Start(ctx)
		})
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", conf.GRPCPort))
	if err != nil {
		l.Fatalf("listen error %+v", err)
	}
	defer lis.Close()
	l.Infof("grpc listen on %s, ids [%d,%d] policy %s", lis.Addr().String(), conf.IDMin, conf.IDMax, policy)

	metrics := &http.Server{
		Addr:    fmt.Sprintf(":%d", conf.MetricsPort),
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	l.Infof("metrics listen on %s", metrics.Addr)

	g.Go(func() error {
		return srv.Serve(lis)
	})
	g.Go(func() error {
		if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigs:
		case <-ctx.Done():
		}
		cancel()
		srv.GracefulStop()
		return metrics.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		l.Fatalf("idallocd stopped %+v", err)
	}
}
