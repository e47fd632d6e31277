package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmarulanda/marqueteria/internal/material"
)

type inventoryState int

const (
	inventoryStateBrowse inventoryState = iota
	inventoryStatePurchase
	inventoryStateAdjust
)

type InventoryModel struct {
	CommonModel
	materials *material.Service

	state        inventoryState
	table        table.Model
	rows         []*material.Material
	form         *huh.Form
	lowStockOnly bool

	loading bool
	err     error
	status  string

	// Form bindings
	formName   string
	formWidth  string
	formLength string
	formPrice  string
	formCount  string
	formStock  string
	formReason string
}

func NewInventoryModel(materials *material.Service) InventoryModel {
	columns := []table.Column{
		{Title: "Material", Width: 32},
		{Title: "Categoría", Width: 10},
		{Title: "Stock", Width: 8},
		{Title: "Mínimo", Width: 8},
		{Title: "Costo unit.", Width: 12},
		{Title: "Precio lámina", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return InventoryModel{materials: materials, table: t}
}

func (m InventoryModel) Title() string { return "Inventario" }
func (m InventoryModel) ShortHelp() string {
	if m.state != inventoryStateBrowse {
		return "Navegar formulario | Esc: cancelar"
	}
	return "Esc: volver | c: compra | a: ajuste | l: stock bajo | r: refrescar"
}

func (m InventoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InventoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case inventoryLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rows = msg.materials
		m.err = nil
		m.refreshTable()
		return m, nil

	case inventorySavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.note
		}
		m.state = inventoryStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == inventoryStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m InventoryModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "l":
			m.lowStockOnly = !m.lowStockOnly
			m.loading = true
			return m, m.loadCmd()
		case "c":
			return m.enterPurchaseMode()
		case "a":
			return m.enterAdjustMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func positiveNumber(s string) error {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("debe ser un número mayor que cero")
	}
	return nil
}

func (m InventoryModel) enterPurchaseMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	if idx := m.table.Cursor(); idx >= 0 && idx < len(m.rows) {
		m.formName = m.rows[idx].Name
	}
	m.formWidth, m.formLength, m.formPrice, m.formCount = "", "", "", "1"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("nombre").
				Title("Material").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("el nombre es obligatorio")
					}
					return nil
				}),
			huh.NewInput().Key("ancho").Title("Ancho lámina (cm)").Value(&m.formWidth).Validate(positiveNumber),
			huh.NewInput().Key("largo").Title("Largo lámina (cm)").Value(&m.formLength).Validate(positiveNumber),
			huh.NewInput().Key("precio").Title("Precio lámina (COP)").Value(&m.formPrice).Validate(positiveNumber),
			huh.NewInput().Key("cantidad").Title("Láminas").Value(&m.formCount).Validate(positiveNumber),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = inventoryStatePurchase
	m.table.Blur()
	return m, m.form.Init()
}

func (m InventoryModel) enterAdjustMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return m, nil
	}

	m.formStock = FormatQty(m.rows[idx].StockOnHand)
	m.formReason = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("stock").Title("Nueva cantidad").Value(&m.formStock),
			huh.NewInput().Key("motivo").Title("Motivo").Placeholder("rotura, conteo...").Value(&m.formReason),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = inventoryStateAdjust
	m.table.Blur()
	return m, m.form.Init()
}

func (m InventoryModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = inventoryStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == inventoryStatePurchase {
		return m, m.purchaseCmd()
	}

	return m, m.adjustCmd()
}

func (m InventoryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Cargando inventario...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := "Todos los materiales"
	if m.lowStockOnly {
		header = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render("Stock bajo")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != inventoryStateBrowse && m.form != nil {
		title := "Registrar compra"
		if m.state == inventoryStateAdjust {
			title = "Ajustar stock"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *InventoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, mat := range m.rows {
		rows = append(rows, table.Row{
			mat.Name,
			string(mat.Category),
			FormatQty(mat.StockOnHand),
			FormatQty(mat.StockMinimum),
			FormatPesos(mat.UnitCost),
			FormatPesos(mat.SheetPrice),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type inventoryLoadedMsg struct {
	materials []*material.Material
	err       error
}

func (m InventoryModel) loadCmd() tea.Cmd {
	lowOnly := m.lowStockOnly

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var (
			materials []*material.Material
			err       error
		)

		if lowOnly {
			materials, err = m.materials.ListLowStock(ctx)
		} else {
			materials, err = m.materials.List(ctx)
		}

		return inventoryLoadedMsg{materials: materials, err: err}
	}
}

type inventorySavedMsg struct {
	note string
	err  error
}

func parseNumber(s string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	return v
}

func (m InventoryModel) purchaseCmd() tea.Cmd {
	name := strings.TrimSpace(m.formName)
	width := parseNumber(m.formWidth)
	length := parseNumber(m.formLength)
	price := int64(parseNumber(m.formPrice))
	count := int(parseNumber(m.formCount))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		mat, err := m.materials.RegisterPurchase(ctx, material.PurchaseParams{
			Name:       name,
			WidthCM:    width,
			LengthCM:   length,
			SheetPrice: price,
			SheetCount: count,
		})
		if err != nil {
			return inventorySavedMsg{err: err}
		}

		return inventorySavedMsg{note: fmt.Sprintf("Compra registrada: %s (stock %s)", mat.Name, FormatQty(mat.StockOnHand))}
	}
}

func (m InventoryModel) adjustCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	id := m.rows[idx].ID
	stock := parseNumber(m.formStock)
	reason := m.formReason

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		mat, err := m.materials.AdjustStock(ctx, id, stock, nil, reason)
		if err != nil {
			return inventorySavedMsg{err: err}
		}

		return inventorySavedMsg{note: fmt.Sprintf("Stock de %s ajustado a %s", mat.Name, FormatQty(mat.StockOnHand))}
	}
}
