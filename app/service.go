package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bakewatt/bakewatt/api/advice"
	"github.com/bakewatt/bakewatt/config"
	"github.com/bakewatt/bakewatt/core/advisor"
	coremetrics "github.com/bakewatt/bakewatt/core/metrics"
	"github.com/bakewatt/bakewatt/infra/logger"
	"github.com/bakewatt/bakewatt/infra/metrics"
	"github.com/bakewatt/bakewatt/infra/mqtt"
	"github.com/bakewatt/bakewatt/infra/store"
)

// Service orchestrates the advice API, metric sinks and the optional MQTT
// publisher around one cached gold table.
type Service struct {
	cfg   *config.Config
	store *store.Store
	adv   advisor.Advisor
	sink  coremetrics.Sink
	pub   mqtt.Publisher
	log   logger.Logger
}

// New creates a Service from the configuration. The gold table is loaded
// eagerly: a missing file fails here, before anything is served.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	logg := logger.New("service")

	st := store.New()
	if _, err := st.Get(cfg.Data.Path); err != nil {
		return nil, err
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	svc := &Service{
		cfg:   cfg,
		store: st,
		adv:   advisor.Advisor{OvenPowerKW: cfg.Advisor.OvenPowerKW, BakeHours: cfg.Advisor.BakeHours},
		sink:  sink,
		log:   logg,
	}

	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.pub = pub
	}
	return svc, nil
}

// Run serves the advice API until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	handler := advice.New(
		s.store,
		s.cfg.Data.Path,
		s.adv,
		s.cfg.Advisor.DefaultMarket,
		s.cfg.Advisor.DefaultTop,
		s.log,
		s.sink,
	)
	mux := http.NewServeMux()
	handler.Register(mux)

	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr, nil, s.log); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.pub != nil {
		go s.publishLoop(ctx)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("server shutdown: %v", err)
		}
	}()

	s.log.Infof("serving advice on %s", s.cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// publishLoop periodically publishes the default market's latest advice.
func (s *Service) publishLoop(ctx context.Context) {
	interval := time.Duration(s.cfg.MQTT.IntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.publishOnce()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.publishOnce()
		}
	}
}

func (s *Service) publishOnce() {
	table, err := s.store.Get(s.cfg.Data.Path)
	if err != nil {
		s.log.Errorf("mqtt publish: %v", err)
		return
	}
	market := s.cfg.Advisor.DefaultMarket
	if market == "" || !table.HasMarket(market) {
		market = table.DefaultMarket()
	}
	date := table.LatestDate()
	slice, err := table.SelectSlice(market, date)
	if err != nil {
		s.log.Warnf("mqtt publish: %v", err)
		return
	}
	result := s.adv.Advise(market, date, slice, s.cfg.Advisor.DefaultTop)
	if err := s.pub.PublishAdvice(result); err != nil {
		s.log.Errorf("mqtt publish: %v", err)
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.pub != nil {
		s.pub.Close()
	}
	return s.sink.Close()
}
