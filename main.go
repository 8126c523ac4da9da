package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/api"
	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/engine"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/rate"
	"github.com/carson-networks/ledger-server/internal/registry"
	"github.com/carson-networks/ledger-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("ledger-server starting")

	envConfig, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config.Load")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}
	gateway := storage.NewGateway(dbStorage)

	ctx := context.Background()

	memberRegistry := registry.NewRegistry(gateway, logger)
	if err := memberRegistry.Hydrate(ctx); err != nil {
		logrus.WithError(err).Fatal("registry.Hydrate")
		return
	}

	// The tax-collector member must exist before the first taxable charge.
	if _, err := memberRegistry.EnsureReserved(ctx, envConfig.TaxCollectorID, "Sales", "Tax"); err != nil {
		logrus.WithError(err).Fatal("registry.EnsureReserved")
		return
	}

	ledgerEngine := engine.NewEngine(
		memberRegistry,
		gateway,
		auth.BcryptVerifier{},
		rate.NewPolicy(envConfig.BaseRates),
		envConfig.SalesTaxPercent,
		envConfig.TaxCollectorID,
	)

	delegator := operator.NewOperatorDelegator(&actions.Deps{
		Engine:   ledgerEngine,
		Registry: memberRegistry,
	})
	delegator.Start()

	go func() {
		httpRest := api.Rest{
			Logger:   logger,
			Port:     envConfig.Port,
			Operator: delegator,
		}
		httpRest.Serve()
	}()

	// Flush every member and close the store before the process exits.
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	delegator.Stop()
	if err := memberRegistry.Close(ctx); err != nil {
		logrus.WithError(err).Error("registry.Close")
	}
	logrus.Info("ledger-server stopped")
}
