package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/charmbracelet/bubbles/table"
	"github.com/google/uuid"

	"github.com/dmarulanda/marqueteria/internal/material"
	"github.com/dmarulanda/marqueteria/internal/quote"
)

type quoteState int

const (
	quoteStateLoading quoteState = iota
	quoteStateForm
	quoteStateResult
)

type QuoteModel struct {
	CommonModel
	quotes    *quote.Service
	materials *material.Service

	state  quoteState
	form   *huh.Form
	result *quote.Quote
	table  table.Model
	err    error

	// Form bindings
	formWidth     string
	formLength    string
	formLabor     string
	formMaterials []uuid.UUID
}

func NewQuoteModel(quotes *quote.Service, materials *material.Service) QuoteModel {
	columns := []table.Column{
		{Title: "Material", Width: 30},
		{Title: "Costo unit.", Width: 12},
		{Title: "Área m²", Width: 9},
		{Title: "Costo", Width: 12},
	}

	t := table.New(table.WithColumns(columns), table.WithHeight(8))

	return QuoteModel{quotes: quotes, materials: materials, table: t}
}

func (m QuoteModel) Title() string { return "Cotización" }
func (m QuoteModel) ShortHelp() string {
	switch m.state {
	case quoteStateResult:
		return "n: nueva cotización | Esc: volver"
	default:
		return "Navegar formulario | Esc: volver"
	}
}

func (m QuoteModel) Init() tea.Cmd {
	return m.loadMaterialsCmd()
}

func (m QuoteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case quoteMaterialsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = quoteStateForm
			return m, nil
		}
		return m.buildForm(msg.materials)

	case quoteResultMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.result = msg.quote
		m.state = quoteStateResult
		m.refreshTable()
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.Type == tea.KeyEsc:
			return m, Back
		case m.state == quoteStateResult && keyMsg.String() == "n":
			m.state = quoteStateLoading
			m.result = nil
			return m, m.loadMaterialsCmd()
		}
	}

	if m.state == quoteStateForm && m.form != nil {
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		return m, m.generateCmd()
	}

	return m, nil
}

func (m QuoteModel) buildForm(mats []*material.Material) (tea.Model, tea.Cmd) {
	options := make([]huh.Option[uuid.UUID], 0, len(mats))
	for _, mat := range mats {
		label := fmt.Sprintf("%s (%s/m²)", mat.Name, FormatPesos(mat.UnitCost))
		options = append(options, huh.NewOption(label, mat.ID))
	}

	m.formWidth, m.formLength, m.formLabor = "", "", "0"
	m.formMaterials = nil

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("ancho").Title("Ancho (cm)").Value(&m.formWidth).Validate(positiveNumber),
			huh.NewInput().Key("largo").Title("Largo (cm)").Value(&m.formLength).Validate(positiveNumber),
			huh.NewMultiSelect[uuid.UUID]().
				Key("materiales").
				Title("Materiales").
				Options(options...).
				Value(&m.formMaterials).
				Validate(func(ids []uuid.UUID) error {
					if len(ids) == 0 {
						return fmt.Errorf("seleccione al menos un material")
					}
					return nil
				}),
			huh.NewInput().Key("manoObra").Title("Mano de obra (COP)").Value(&m.formLabor),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = quoteStateForm

	return m, m.form.Init()
}

func (m QuoteModel) View() string {
	if m.state == quoteStateLoading {
		return lipgloss.NewStyle().Padding(2).Render("Cargando materiales...")
	}

	var b strings.Builder

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if m.state == quoteStateForm && m.form != nil {
		b.WriteString(m.form.View())
		return lipgloss.NewStyle().Padding(1).Render(b.String())
	}

	if m.result != nil {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(
			fmt.Sprintf("Cotización %vx%v cm", m.result.WidthCM, m.result.LengthCM)))
		b.WriteString("\n\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")

		summary := fmt.Sprintf(
			"Materiales:      %s\nMano de obra:    %s\nCosto base:      %s\n\nPrecio sugerido: %s",
			FormatPesos(m.result.MaterialsCost),
			FormatPesos(m.result.LaborCost),
			FormatPesos(m.result.TotalBaseCost),
			FormatPesos(m.result.SuggestedPrice),
		)

		b.WriteString(lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(summary))
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func (m *QuoteModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.result.Lines))
	for _, line := range m.result.Lines {
		rows = append(rows, table.Row{
			line.Name,
			FormatPesos(line.UnitCost),
			FormatQty(line.AreaM2),
			FormatPesos(line.Cost),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type quoteMaterialsMsg struct {
	materials []*material.Material
	err       error
}

func (m QuoteModel) loadMaterialsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		materials, err := m.materials.List(ctx)
		return quoteMaterialsMsg{materials: materials, err: err}
	}
}

type quoteResultMsg struct {
	quote *quote.Quote
	err   error
}

func (m QuoteModel) generateCmd() tea.Cmd {
	width := parseNumber(m.formWidth)
	length := parseNumber(m.formLength)
	labor := int64(parseNumber(m.formLabor))
	ids := m.formMaterials

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		q, err := m.quotes.Generate(ctx, width, length, ids, labor)
		return quoteResultMsg{quote: q, err: err}
	}
}
