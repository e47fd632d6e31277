package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmarulanda/marqueteria/internal/order"
)

type ordersState int

const (
	ordersStateBrowse ordersState = iota
	ordersStatePayment
	ordersStateVoid
)

type OrdersModel struct {
	CommonModel
	orders *order.Service

	state ordersState
	table table.Model
	rows  []*order.Order
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formAmount  string
	formConfirm bool
}

func NewOrdersModel(orders *order.Service) OrdersModel {
	columns := []table.Column{
		{Title: "OT", Width: 10},
		{Title: "Cliente", Width: 24},
		{Title: "Total", Width: 12},
		{Title: "Abonado", Width: 12},
		{Title: "Saldo", Width: 12},
		{Title: "Estado", Width: 14},
		{Title: "Fecha", Width: 12},
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

	return OrdersModel{orders: orders, table: t}
}

func (m OrdersModel) Title() string { return "Órdenes de trabajo" }
func (m OrdersModel) ShortHelp() string {
	if m.state != ordersStateBrowse {
		return "Navegar formulario | Esc: cancelar"
	}
	return "Esc: volver | p: abono | x: anular | r: refrescar"
}

func (m OrdersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m OrdersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ordersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rows = msg.orders
		m.err = nil
		m.refreshTable()
		return m, nil

	case ordersSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.note
		}
		m.state = ordersStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == ordersStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m OrdersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "p":
			return m.enterPaymentMode()
		case "x":
			return m.enterVoidMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m OrdersModel) selected() *order.Order {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}
	return m.rows[idx]
}

func (m OrdersModel) enterPaymentMode() (tea.Model, tea.Cmd) {
	o := m.selected()
	if o == nil || o.Status == order.StatusVoided || o.Status == order.StatusPaid {
		return m, nil
	}

	m.formAmount = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("monto").
				Title(fmt.Sprintf("Abono para %s (saldo %s)", o.Number, FormatPesos(o.BalanceDue()))).
				Value(&m.formAmount).
				Validate(positiveNumber),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = ordersStatePayment
	m.table.Blur()
	return m, m.form.Init()
}

func (m OrdersModel) enterVoidMode() (tea.Model, tea.Cmd) {
	o := m.selected()
	if o == nil || o.Status == order.StatusVoided {
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirmar").
				Title(fmt.Sprintf("¿Anular %s y devolver el material al inventario?", o.Number)).
				Value(&m.formConfirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = ordersStateVoid
	m.table.Blur()
	return m, m.form.Init()
}

func (m OrdersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = ordersStateBrowse
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

	if m.state == ordersStatePayment {
		return m, m.paymentCmd()
	}

	if !m.formConfirm {
		m.state = ordersStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	return m, m.voidCmd()
}

func (m OrdersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Cargando órdenes...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state != ordersStateBrowse && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *OrdersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, o := range m.rows {
		rows = append(rows, table.Row{
			o.Number,
			o.Customer.Name,
			FormatPesos(o.SaleTotal),
			FormatPesos(o.AmountPaid),
			FormatPesos(o.BalanceDue()),
			string(o.Status),
			FormatDate(o.CreatedAt),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type ordersLoadedMsg struct {
	orders []*order.Order
	err    error
}

func (m OrdersModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		orders, err := m.orders.ListRecent(ctx, 50)
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

type ordersSavedMsg struct {
	note string
	err  error
}

func (m OrdersModel) paymentCmd() tea.Cmd {
	o := m.selected()
	if o == nil {
		return nil
	}

	id := o.ID
	amount := int64(parseNumber(m.formAmount))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.orders.ApplyPayment(ctx, id, amount)
		if err != nil {
			return ordersSavedMsg{err: err}
		}

		return ordersSavedMsg{note: fmt.Sprintf("Abono registrado en %s, saldo %s", updated.Number, FormatPesos(updated.BalanceDue()))}
	}
}

func (m OrdersModel) voidCmd() tea.Cmd {
	o := m.selected()
	if o == nil {
		return nil
	}

	id := o.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		voided, err := m.orders.Void(ctx, id)
		if err != nil {
			return ordersSavedMsg{err: err}
		}

		return ordersSavedMsg{note: fmt.Sprintf("%s anulada, inventario restaurado", voided.Number)}
	}
}
