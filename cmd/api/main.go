package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/dmarulanda/marqueteria/internal/config"
	"github.com/dmarulanda/marqueteria/internal/database"
	apiHttp "github.com/dmarulanda/marqueteria/internal/http"
	inventoryHandler "github.com/dmarulanda/marqueteria/internal/http/inventory"
	invoiceHandler "github.com/dmarulanda/marqueteria/internal/http/invoice"
	providerHandler "github.com/dmarulanda/marqueteria/internal/http/provider"
	quotesHandler "github.com/dmarulanda/marqueteria/internal/http/quotes"
	"github.com/dmarulanda/marqueteria/internal/material"
	materialStore "github.com/dmarulanda/marqueteria/internal/material/store"
	"github.com/dmarulanda/marqueteria/internal/order"
	orderStore "github.com/dmarulanda/marqueteria/internal/order/store"
	"github.com/dmarulanda/marqueteria/internal/pricelist"
	"github.com/dmarulanda/marqueteria/internal/provider"
	providerStore "github.com/dmarulanda/marqueteria/internal/provider/store"
	"github.com/dmarulanda/marqueteria/internal/quote"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		materialService = material.NewService(materialStore.New(db))
		orderService    = order.NewService(orderStore.New(db))
		providerService = provider.NewService(providerStore.New(db))
		quoteService    = quote.NewService(materialService)
		listService     = pricelist.NewService(materialService)
	)

	var (
		inventoryH = inventoryHandler.NewHandler(materialService, listService)
		quotesH    = quotesHandler.NewHandler(quoteService, materialService)
		invoicesH  = invoiceHandler.NewHandler(orderService)
		providersH = providerHandler.NewHandler(providerService)
	)

	router := apiHttp.New(inventoryH, quotesH, invoicesH, providersH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
