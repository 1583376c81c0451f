package chaind

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/liftedinit/chaind/internal/chain"
	"github.com/liftedinit/chaind/internal/client"
	"github.com/liftedinit/chaind/internal/config"
	"github.com/liftedinit/chaind/internal/consensus"
	"github.com/liftedinit/chaind/internal/metrics"
	"github.com/liftedinit/chaind/internal/metrics/collectors"
	"github.com/liftedinit/chaind/internal/peers"
	"github.com/liftedinit/chaind/internal/server"
)

var serveConfig config.ServeConfig

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ledger node",
	Long:  `serve starts the HTTP API exposing mining, transaction submission, peer registration and consensus resolution.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		serveConfig = config.LoadServeConfigFromCLI()
		if err := serveConfig.Validate(); err != nil {
			return fmt.Errorf("invalid serve configuration: %w", err)
		}

		slog.Debug("Command-line arguments", "serveConfig", serveConfig)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		handleInterrupt(cancel)

		nodeID := serveConfig.NodeID
		if nodeID == "" {
			nodeID = strings.ReplaceAll(uuid.NewString(), "-", "")
		}

		ledger := chain.NewLedger()
		registry := peers.NewRegistry()
		fetcher := client.NewChainClient(serveConfig.PeerTimeout)
		resolver := consensus.NewResolver(ledger, fetcher, serveConfig.PeerTimeout, serveConfig.MaxConcurrency)
		counters := metrics.NewCounters()

		if serveConfig.EnablePrometheus {
			cs := append(counters.Collectors(),
				collectors.NewChainHeightCollector(ledger),
				collectors.NewPendingTransactionsCollector(ledger))

			metricsServer, err := metrics.CreateMetricsServer(serveConfig.PrometheusAddr, cs...)
			if err != nil {
				return fmt.Errorf("failed to start metrics server: %w", err)
			}
			slog.Info("Prometheus metrics server started", "address", serveConfig.PrometheusAddr)
			defer shutdownServer(metricsServer, "metrics")
		}

		node := &server.Node{
			Ledger:      ledger,
			Registry:    registry,
			Resolver:    resolver,
			Counters:    counters,
			NodeID:      nodeID,
			MineTimeout: serveConfig.MineTimeout,
		}
		srv := server.NewServer(serveConfig.Address, node, slog.Default())

		go func() {
			<-ctx.Done()
			shutdownServer(srv, "api")
		}()

		slog.Info("Starting ledger node", "address", serveConfig.Address, "nodeID", nodeID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ledger node failed: %w", err)
		}

		slog.Info("Ledger node stopped")
		return nil
	},
}

func init() {
	ServeCmd.PersistentFlags().StringP("address", "a", "0.0.0.0:5000", "Address and port the node listens on")
	ServeCmd.PersistentFlags().String("node-id", "", "Node identifier used as mining reward recipient (default: random UUID)")
	ServeCmd.PersistentFlags().Duration("mine-timeout", 5*time.Minute, "Maximum duration of a single proof-of-work search")
	ServeCmd.PersistentFlags().Duration("peer-timeout", 5*time.Second, "Timeout for fetching a single peer's chain")
	ServeCmd.PersistentFlags().UintP("max-concurrency", "c", 8, "Maximum concurrent peer chain fetches during consensus")
	ServeCmd.PersistentFlags().Bool("enable-prometheus", false, "Enable Prometheus metrics server")
	ServeCmd.PersistentFlags().String("prometheus-addr", "0.0.0.0:2112", "Address and port of the Prometheus metrics server")

	if err := viper.BindPFlags(ServeCmd.PersistentFlags()); err != nil {
		slog.Error("Failed to bind ServeCmd flags", "error", err)
	}
}

// handleInterrupt handles interrupt signals for graceful shutdown.
func handleInterrupt(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		slog.Info("Received interrupt signal, shutting down...")
		cancel()
	}()
}

func shutdownServer(srv *http.Server, name string) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shut down server", "server", name, "error", err)
	}
}
