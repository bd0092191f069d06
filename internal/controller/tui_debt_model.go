package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/doclens/doclens/internal/model"
)

// Simple delegate for debt list items.
type debtDelegate struct{}

func (d debtDelegate) Height() int  { return 1 }
func (d debtDelegate) Spacing() int { return 0 }
func (d debtDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d debtDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	it, ok := item.(debtItem)
	if !ok {
		return
	}

	isSelected := index == lm.Index()

	kindStyle := lipgloss.NewStyle().
		Foreground(kindColor(it.debt.Kind)).
		Bold(true).
		Width(16)

	var lineStyle lipgloss.Style

	if isSelected {
		lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		kindStyle = kindStyle.
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6"))
	} else {
		lineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	}

	location := fmt.Sprintf("%s:%d", it.debt.File, it.debt.Line)
	text := fmt.Sprintf("%s  %s", it.debt.Entity, location)

	width := lm.Width() - 18
	text = truncateToWidth(text, width)

	_, _ = fmt.Fprintf(w, "%s  %s",
		kindStyle.Render(string(it.debt.Kind)),
		lineStyle.Render(text),
	)
}

func kindColor(kind m.DebtKind) lipgloss.Color {
	switch kind {
	case m.DebtMissing:
		return lipgloss.Color("9")
	case m.DebtTooShort:
		return lipgloss.Color("11")
	default:
		return lipgloss.Color("13")
	}
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// debtModel is used for browsing the debt inventory interactively.
type debtModel struct {
	width    int
	height   int
	debtList list.Model
	total    int
	files    int
}

func newDebtModel(debts []m.Debt) debtModel {
	delegate := debtDelegate{}
	debtList := list.New([]list.Item{}, delegate, 80, 20)
	debtList.SetShowPagination(false)
	debtList.SetShowFilter(true)
	debtList.SetShowHelp(false)
	debtList.SetShowTitle(false)
	debtList.SetShowStatusBar(false)
	debtList.FilterInput.Placeholder = "Filter by path or entity…"

	items := make([]list.Item, 0, len(debts))
	seenFiles := make(map[m.Path]struct{})

	for _, debt := range debts {
		items = append(items, debtItem{debt: debt})
		seenFiles[debt.File] = struct{}{}
	}

	debtList.SetItems(items)

	return debtModel{
		debtList: debtList,
		total:    len(debts),
		files:    len(seenFiles),
	}
}

func (dm debtModel) Init() tea.Cmd {
	return nil
}

func (dm debtModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		dm.width = msg.Width
		dm.height = msg.Height
		dm.debtList.SetWidth(dm.width)

	case tea.KeyMsg:
		if dm.debtList.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c":
				return dm, tea.Quit
			}
		}

		var newList list.Model

		newList, cmd = dm.debtList.Update(msg)
		dm.debtList = newList
	}

	return dm, cmd
}

func (dm debtModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := titleStyle.Render("Doclens Documentation Debt")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Debt Items: %s   Files: %s",
		accentStyle.Render(fmt.Sprintf("%d", dm.total)),
		accentStyle.Render(fmt.Sprintf("%d", dm.files)),
	))

	table := dm.renderTable()

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(dm.width)

	footer := footerStyle.Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		table,
		footer,
	)
}

func (dm debtModel) renderTable() string {
	listHeight := dm.height - 9
	if listHeight < 5 {
		listHeight = 5
	}

	listWidth := dm.width - 6

	dm.debtList.SetHeight(listHeight)
	dm.debtList.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%-16s  %s", "Kind", "Entity / Location"))

	tableContainer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	return tableContainer.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			dm.debtList.View(),
		),
	)
}
