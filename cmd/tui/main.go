package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/dmarulanda/marqueteria/cmd/tui/internal/view"
	"github.com/dmarulanda/marqueteria/internal/config"
	"github.com/dmarulanda/marqueteria/internal/database"
	"github.com/dmarulanda/marqueteria/internal/material"
	materialStore "github.com/dmarulanda/marqueteria/internal/material/store"
	"github.com/dmarulanda/marqueteria/internal/order"
	orderStore "github.com/dmarulanda/marqueteria/internal/order/store"
	"github.com/dmarulanda/marqueteria/internal/quote"
)

type model struct {
	materialService *material.Service
	quoteService    *quote.Service
	orderService    *order.Service

	currentView View

	inventoryView view.InventoryModel
	quoteView     view.QuoteModel
	ordersView    view.OrdersModel
}

type View int

const (
	ViewMenu      View = 0
	ViewInventory View = 1
	ViewQuote     View = 2
	ViewOrders    View = 3
)

func initialModel() model {
	_ = godotenv.Load()

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

	materialSvc := material.NewService(materialStore.New(db))
	quoteSvc := quote.NewService(materialSvc)
	orderSvc := order.NewService(orderStore.New(db))

	return model{
		materialService: materialSvc,
		quoteService:    quoteSvc,
		orderService:    orderSvc,
		currentView:     ViewMenu,
		inventoryView:   view.NewInventoryModel(materialSvc),
		quoteView:       view.NewQuoteModel(quoteSvc, materialSvc),
		ordersView:      view.NewOrdersModel(orderSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewInventory
				m.inventoryView = view.NewInventoryModel(m.materialService)

				return m, m.inventoryView.Init()
			case "2":
				m.currentView = ViewQuote
				m.quoteView = view.NewQuoteModel(m.quoteService, m.materialService)

				return m, m.quoteView.Init()
			case "3":
				m.currentView = ViewOrders
				m.ordersView = view.NewOrdersModel(m.orderService)

				return m, m.ordersView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewInventory:
		var newModel tea.Model
		newModel, cmd = m.inventoryView.Update(msg)
		m.inventoryView = newModel.(view.InventoryModel)
	case ViewQuote:
		var newModel tea.Model
		newModel, cmd = m.quoteView.Update(msg)
		m.quoteView = newModel.(view.QuoteModel)
	case ViewOrders:
		var newModel tea.Model
		newModel, cmd = m.ordersView.Update(msg)
		m.ordersView = newModel.(view.OrdersModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Marqueteria TUI\n\n" +
				"1. Inventario\n" +
				"2. Cotizador\n" +
				"3. Ordenes de trabajo\n\n" +
				"q. Quit",
		)
	case ViewInventory:
		return m.inventoryView.View()
	case ViewQuote:
		return m.quoteView.View()
	case ViewOrders:
		return m.ordersView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
