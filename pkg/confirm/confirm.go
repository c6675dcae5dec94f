// Package confirm is the bill payment confirmation dialog.
//
// The dialog is a bubbletea model driven entirely by its Props. While
// Props.IsOpen is false it renders nothing and ignores input. When open it
// shows the consumer number and amount, lets the user choose a payment
// method and fill in that method's fields, and ends by calling OnConfirm or
// OnCancel. All form changes go through form.Reduce.
package confirm

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/billpay/internal/form"
	"github.com/marcus/billpay/internal/i18n"
	"github.com/marcus/billpay/internal/payment"
	"github.com/marcus/billpay/pkg/modal"
	"github.com/marcus/billpay/pkg/mouse"
)

// Element ids. Button ids double as the actions they trigger.
const (
	toggleID    = "method-toggle"
	methodList  = "method-list"
	mobileID    = "mobile"
	emailID     = "email"
	cancelID    = modal.ActionCancel
	proceedID   = "proceed"
	itemPrefix  = "method:"
	defaultW    = 80
	defaultH    = 24
	dialogWidth = 60
)

// Props are supplied by the host and never changed by the dialog.
type Props struct {
	IsOpen      bool
	Language    payment.Language
	Amount      float64
	ConsumerNo  string
	PaymentType payment.PaymentType

	// OnConfirm receives everything the user selected or entered.
	OnConfirm func(payment.Confirmation)
	OnCancel  func()
}

// Option configures a Model.
type Option func(*Model)

// WithCatalog replaces the embedded translation catalog.
func WithCatalog(c *i18n.Catalog) Option {
	return func(m *Model) { m.catalog = c }
}

// WithContact sets the prefilled, read-only contact details.
func WithContact(c form.Contact) Option {
	return func(m *Model) { m.contact = c }
}

// WithDialogWidth sets the dialog width in cells, border included.
func WithDialogWidth(w int) Option {
	return func(m *Model) {
		if w > 0 {
			m.dialogWidth = w
		}
	}
}

// WithScreenSize sets the terminal size used until the first
// tea.WindowSizeMsg arrives.
func WithScreenSize(w, h int) Option {
	return func(m *Model) {
		if w > 0 && h > 0 {
			m.width, m.height = w, h
		}
	}
}

// Model is the dialog. It implements tea.Model.
type Model struct {
	props       Props
	catalog     *i18n.Catalog
	contact     form.Contact
	dialogWidth int

	state        form.State
	inputs       map[payment.FieldKey]*textinput.Model
	methodCursor int

	modal *modal.Modal
	mouse *mouse.Handler

	width  int
	height int
}

// New returns a dialog for props.
func New(props Props, opts ...Option) *Model {
	m := &Model{
		props:       props,
		dialogWidth: dialogWidth,
		width:       defaultW,
		height:      defaultH,
		mouse:       mouse.NewHandler(),
		inputs:      make(map[payment.FieldKey]*textinput.Model),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.catalog == nil {
		m.catalog = i18n.Default()
	}

	keys := []payment.FieldKey{payment.FieldMobileNumber, payment.FieldEmail}
	for _, id := range payment.MethodOrder {
		for _, f := range id.Fields() {
			keys = append(keys, f.Key)
		}
	}
	for _, k := range keys {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 40
		if k == payment.FieldMobileNumber || k == payment.FieldEmail {
			// Contact details are shown as given.
			ti.CharLimit = 0
		}
		m.inputs[k] = &ti
	}

	m.reset()
	return m
}

// reset discards the form and starts over, as on every open.
func (m *Model) reset() {
	m.state = form.New(m.contact)
	m.methodCursor = m.state.SelectedMethod.Index()
	for k, ti := range m.inputs {
		ti.SetValue(m.state.Field(k))
		ti.Blur()
	}
	m.mouse.Clear()
	m.modal = m.buildModal()
}

// Props returns the current props.
func (m *Model) Props() Props {
	return m.props
}

// SetProps replaces the props. Opening a closed dialog starts a fresh form;
// closing it drops all hit regions.
func (m *Model) SetProps(p Props) {
	wasOpen := m.props.IsOpen
	m.props = p

	switch {
	case p.IsOpen && !wasOpen:
		m.reset()
	case !p.IsOpen:
		m.mouse.Clear()
	default:
		focus := m.modal.FocusedID()
		m.modal = m.buildModal()
		m.modal.SetFocus(focus)
	}
}

// State returns a copy of the form state.
func (m *Model) State() form.State {
	return m.state
}

// Dispatch applies a to the form state and mirrors the result into the
// text inputs.
func (m *Model) Dispatch(a form.Action) {
	m.state = form.Reduce(m.state, a)
	for k, ti := range m.inputs {
		if v := m.state.Field(k); ti.Value() != v {
			ti.SetValue(v)
		}
	}
}

// Confirmation assembles the payload passed to OnConfirm.
func (m *Model) Confirmation() payment.Confirmation {
	return payment.Confirmation{
		ConsumerNo:   m.props.ConsumerNo,
		Amount:       m.props.Amount,
		PaymentType:  m.props.PaymentType.OrDefault(),
		Language:     m.props.Language,
		Method:       m.state.Method(),
		MobileNumber: m.state.MobileNumber,
		Email:        m.state.Email,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.props.IsOpen {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "esc" && m.state.DropdownOpen {
			m.Dispatch(form.CloseDropdown{})
			m.modal.SetFocus(toggleID)
			return m, nil
		}
		action, cmd := m.modal.HandleKey(msg)
		m.syncFields()
		m.handleAction(action)
		return m, cmd

	case tea.MouseMsg:
		action, cmd := m.modal.HandleMouse(msg, m.mouse)
		m.handleAction(action)
		return m, cmd
	}

	// Cursor blinks and other internal messages.
	var cmds []tea.Cmd
	for _, ti := range m.inputs {
		if !ti.Focused() {
			continue
		}
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.props.IsOpen {
		return ""
	}
	return m.modal.Render(m.width, m.height, m.mouse)
}

// syncFields copies what the visible inputs hold into the form state.
func (m *Model) syncFields() {
	for _, f := range m.state.VisibleFields() {
		v := m.inputs[f.Key].Value()
		if v != m.state.Field(f.Key) {
			m.Dispatch(form.SetField{Field: f.Key, Value: v})
		}
	}
}

func (m *Model) handleAction(action string) {
	switch {
	case action == "":
	case action == cancelID:
		slog.Debug("payment dialog cancelled", "consumer", m.props.ConsumerNo)
		if m.props.OnCancel != nil {
			m.props.OnCancel()
		}
	case action == proceedID:
		c := m.Confirmation()
		slog.Debug("payment dialog confirmed", "consumer", c.ConsumerNo, "method", c.MethodID())
		if m.props.OnConfirm != nil {
			m.props.OnConfirm(c)
		}
	case action == toggleID:
		m.Dispatch(form.ToggleDropdown{})
		if m.state.DropdownOpen {
			m.methodCursor = m.state.SelectedMethod.Index()
			m.modal.SetFocus(methodList)
		}
	case strings.HasPrefix(action, itemPrefix):
		id := payment.MethodID(strings.TrimPrefix(action, itemPrefix))
		m.Dispatch(form.SelectMethod{Method: id})
		m.methodCursor = m.state.SelectedMethod.Index()
		m.modal.SetFocus(toggleID)
	}
}
