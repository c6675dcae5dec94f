package confirm

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/billpay/internal/i18n"
	"github.com/marcus/billpay/internal/payment"
	"github.com/marcus/billpay/pkg/modal"
)

// titleIcon stands in for the wallet drawn before the title.
const titleIcon = "₹"

var (
	infoBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Primary).
		Padding(0, 1)

	infoValue = lipgloss.NewStyle().Bold(true)

	control = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.BorderNormal)

	controlFocused = control.BorderForeground(modal.Primary)
)

func (m *Model) t(key i18n.Key) string {
	return m.catalog.T(m.props.Language, key)
}

// chip draws a method's glyph on its accent colours.
func chip(id payment.MethodID) string {
	a := id.Accent()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(a.Color)).
		Background(lipgloss.Color(a.Background)).
		Render(" " + a.Glyph + " ")
}

func (m *Model) methodLabel(id payment.MethodID) string {
	return chip(id) + " " + m.catalog.MethodLabel(m.props.Language, id)
}

func requiredLabel(s string) string {
	return modal.Label.Render(s) + " " + modal.RequiredMark.Render("*")
}

// buildModal lays out the dialog for the current props. Sections read the
// form state when rendering, so the modal only needs rebuilding when the
// props change.
func (m *Model) buildModal() *modal.Modal {
	md := modal.New(m.t(i18n.Title),
		modal.WithWidth(m.dialogWidth),
		modal.WithVariant(modal.VariantInfo),
		modal.WithTitleIcon(titleIcon),
		modal.WithPrimaryAction(proceedID),
		modal.WithCloseOnBackdropClick(true),
		modal.WithCloseIcon(true),
	)

	md.AddSection(modal.Custom(m.renderInfo, nil))
	md.AddSection(modal.Spacer())

	md.AddSection(modal.Text(requiredLabel(m.t(i18n.PaymentMethod))))
	md.AddSection(modal.Custom(m.renderToggle, m.updateToggle))

	items := make([]modal.ListItem, 0, len(payment.MethodOrder))
	for _, id := range payment.MethodOrder {
		items = append(items, modal.ListItem{
			ID:    itemPrefix + string(id),
			Label: m.methodLabel(id),
			Data:  id,
		})
	}
	md.AddSection(modal.When(
		func() bool { return m.state.DropdownOpen },
		modal.List(methodList, items, &m.methodCursor,
			modal.WithListHeader(m.t(i18n.PaymentMethodLabel)),
			modal.WithMaxVisible(len(items)),
		),
	))
	md.AddSection(modal.Spacer())

	md.AddSection(modal.Input(mobileID, m.inputs[payment.FieldMobileNumber],
		modal.WithLabel(m.t(i18n.MobileNumber)),
		modal.WithRequiredMarker(),
		modal.WithReadOnly(),
	))
	md.AddSection(modal.Input(emailID, m.inputs[payment.FieldEmail],
		modal.WithLabel(m.t(i18n.EmailAddress)),
		modal.WithRequiredMarker(),
		modal.WithReadOnly(),
	))

	for _, id := range payment.MethodOrder {
		for _, f := range id.Fields() {
			md.AddSection(modal.When(
				func() bool { return m.state.SelectedMethod == id },
				m.fieldInput(f),
			))
		}
	}

	md.AddSection(modal.Spacer())
	md.AddSection(modal.Buttons(
		modal.Btn(m.t(i18n.Cancel), cancelID),
		modal.Btn(m.t(i18n.Proceed), proceedID, modal.BtnPrimary()),
	))
	return md
}

func (m *Model) fieldInput(f payment.FieldSpec) modal.Section {
	ti := m.inputs[f.Key]
	opts := []modal.InputOption{
		modal.WithLabel(m.t(i18n.Key(f.LabelKey))),
		modal.WithRequiredMarker(),
	}
	switch f.Kind {
	case payment.FieldDate:
		ti.Placeholder = "YYYY-MM-DD"
		ti.CharLimit = len(payment.DateLayout)
		opts = append(opts, modal.WithAccept(isDateRune))
	default:
		ti.Placeholder = m.t(i18n.Key(f.PlaceholderKey))
	}
	return modal.Input(string(f.Key), ti, opts...)
}

func isDateRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '-'
}

// renderInfo draws the consumer number and amount box.
func (m *Model) renderInfo(contentWidth int, focusID, hoverID string) modal.RenderedSection {
	inner := max(contentWidth-4, 1)
	row := func(label, value string) string {
		l := modal.Label.Render(label)
		v := infoValue.Render(value)
		gap := max(inner-ansi.StringWidth(l)-ansi.StringWidth(v), 1)
		return l + strings.Repeat(" ", gap) + v
	}
	body := row(m.t(i18n.ConsumerNo), m.props.ConsumerNo) + "\n" +
		row(m.t(i18n.Amount), payment.FormatAmount(m.props.Amount))
	return modal.RenderedSection{Content: infoBox.Width(contentWidth - 2).Render(body)}
}

// renderToggle draws the summary control showing the selected method.
func (m *Model) renderToggle(contentWidth int, focusID, hoverID string) modal.RenderedSection {
	arrow := "▾"
	if m.state.DropdownOpen {
		arrow = "▴"
	}
	label := m.methodLabel(m.state.SelectedMethod)
	inner := max(contentWidth-2, 1)
	gap := max(inner-ansi.StringWidth(label)-ansi.StringWidth(arrow), 1)

	style := control
	if focusID == toggleID || hoverID == toggleID {
		style = controlFocused
	}
	content := style.Width(inner).Render(label + strings.Repeat(" ", gap) + arrow)

	info := modal.FocusableInfo{ID: toggleID, Width: contentWidth, Height: lipgloss.Height(content)}
	return modal.RenderedSection{
		Content:    content,
		Focusables: []modal.FocusableInfo{info},
		Clickables: []modal.FocusableInfo{info},
	}
}

func (m *Model) updateToggle(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != toggleID {
		return "", nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}
	switch keyMsg.String() {
	case "enter", " ":
		return toggleID, nil
	}
	return "", nil
}
