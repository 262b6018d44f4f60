package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tableside/internal/api"
	"tableside/internal/config"
	"tableside/internal/monitoring"
	"tableside/internal/recommend"
	"tableside/internal/store"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *metricsPort != 0 {
		cfg.MetricsPort = *metricsPort
	}

	st := store.New()
	if cfg.SeedMenu {
		if err := st.SeedMenu(); err != nil {
			log.Fatalf("Failed to seed menu: %v", err)
		}
	}

	var recommender *recommend.Recommender
	if cfg.OpenAIKey != "" {
		recommender, err = recommend.NewOpenAI(cfg.OpenAIKey, cfg.LLMModel)
		if err != nil {
			log.Printf("Recommendation gateway disabled: %v", err)
		}
	} else {
		log.Println("No LLM key configured, recommendations will use the fallback message")
	}

	monitor := monitoring.NewMonitor()
	monitor.RecordMetric("menu_items_seeded", len(st.Menu()))
	monitor.RecordMetric("llm_model", cfg.LLMModel)
	monitor.RecordMetric("llm_enabled", recommender != nil)

	portal := api.NewServer(st, recommender, monitor)

	go startMetricsServer(cfg.MetricsPort, monitor)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: portal.Router(),
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", cfg.Port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func startMetricsServer(port int, monitor *monitoring.Monitor) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitor.Handler())

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
