package confirm

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/billpay/internal/form"
	"github.com/marcus/billpay/internal/i18n"
	"github.com/marcus/billpay/internal/payment"
	"github.com/marcus/billpay/pkg/modal"
)

// recorder counts callback invocations.
type recorder struct {
	confirms []payment.Confirmation
	cancels  int
}

func (r *recorder) props(lang payment.Language) Props {
	return Props{
		IsOpen:     true,
		Language:   lang,
		Amount:     500,
		ConsumerNo: "CN1001",
		OnConfirm:  func(c payment.Confirmation) { r.confirms = append(r.confirms, c) },
		OnCancel:   func() { r.cancels++ },
	}
}

func newDialog(t *testing.T, lang payment.Language) (*Model, *recorder) {
	t.Helper()
	rec := &recorder{}
	m := New(rec.props(lang), WithScreenSize(100, 40))
	m.View()
	return m, rec
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
		m.View()
	}
}

func clickID(t *testing.T, m *Model, id string) {
	t.Helper()
	m.View()
	r := m.mouse.HitMap.Find(id)
	if r == nil {
		t.Fatalf("no hit region %q", id)
	}
	m.Update(tea.MouseMsg{X: r.Rect.X, Y: r.Rect.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.mouse.Clear()
	m.View()
}

func visible(m *Model) string {
	return ansi.Strip(m.View())
}

// toggleLine returns the rendered summary control row.
func toggleLine(t *testing.T, m *Model) string {
	t.Helper()
	for _, line := range strings.Split(visible(m), "\n") {
		if strings.Contains(line, "▾") || strings.Contains(line, "▴") {
			return line
		}
	}
	t.Fatal("summary control not rendered")
	return ""
}

func TestClosedDialogIsInert(t *testing.T) {
	rec := &recorder{}
	p := rec.props(payment.LangEnglish)
	p.IsOpen = false
	m := New(p)

	if got := m.View(); got != "" {
		t.Errorf("closed View() = %q, want empty", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if rec.cancels != 0 || len(rec.confirms) != 0 {
		t.Errorf("closed dialog fired callbacks: cancels=%d confirms=%d", rec.cancels, len(rec.confirms))
	}
	if n := len(m.mouse.HitMap.Regions()); n != 0 {
		t.Errorf("closed dialog registered %d hit regions", n)
	}
}

func TestEnglishScenario(t *testing.T) {
	m, _ := newDialog(t, payment.LangEnglish)
	out := visible(m)

	for _, want := range []string{
		"Contact Information Confirmation",
		"Consumer No.", "CN1001",
		"Amount", "₹500.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if line := toggleLine(t, m); !strings.Contains(line, "Cash") {
		t.Errorf("default method should be Cash, control shows %q", line)
	}
	if m.State().SelectedMethod != payment.MethodCash {
		t.Errorf("SelectedMethod = %q", m.State().SelectedMethod)
	}
}

func TestLabelsMatchTable(t *testing.T) {
	cat := i18n.Default()
	for _, lang := range payment.Languages {
		t.Run(string(lang), func(t *testing.T) {
			m, _ := newDialog(t, lang)
			out := visible(m)
			for _, k := range []i18n.Key{
				i18n.Title, i18n.ConsumerNo, i18n.Amount, i18n.PaymentMethod,
				i18n.Cash, i18n.MobileNumber, i18n.EmailAddress, i18n.Cancel, i18n.Proceed,
			} {
				if want := cat.T(lang, k); !strings.Contains(out, want) {
					t.Errorf("%s: missing %s = %q", lang, k, want)
				}
			}

			press(m, "enter") // open the menu
			out = visible(m)
			if want := cat.T(lang, i18n.PaymentMethodLabel); !strings.Contains(out, want) {
				t.Errorf("menu header %q missing", want)
			}
			for _, id := range payment.MethodOrder {
				if want := cat.MethodLabel(lang, id); !strings.Contains(out, want) {
					t.Errorf("menu option %q missing", want)
				}
			}
		})
	}
}

func TestSelectEachMethod(t *testing.T) {
	cat := i18n.Default()
	tests := []struct {
		method payment.MethodID
		fields []string
	}{
		{payment.MethodCash, nil},
		{payment.MethodCheque, []string{"cheque_number", "cheque_date"}},
		{payment.MethodDD, []string{"dd_number", "dd_date"}},
		{payment.MethodRTGS, []string{"rtgs_number", "rtgs_date"}},
	}
	for _, lang := range payment.Languages {
		for _, tt := range tests {
			t.Run(string(lang)+"/"+string(tt.method), func(t *testing.T) {
				m, _ := newDialog(t, lang)
				press(m, "enter")
				for i := 0; i < tt.method.Index(); i++ {
					press(m, "down")
				}
				press(m, "enter")

				if m.State().SelectedMethod != tt.method {
					t.Fatalf("SelectedMethod = %q, want %q", m.State().SelectedMethod, tt.method)
				}
				if m.State().DropdownOpen {
					t.Error("menu should close after selection")
				}

				line := toggleLine(t, m)
				if want := cat.MethodLabel(lang, tt.method); !strings.Contains(line, want) {
					t.Errorf("control %q missing label %q", line, want)
				}
				if glyph := tt.method.Accent().Glyph; !strings.Contains(line, glyph) {
					t.Errorf("control %q missing glyph %q", line, glyph)
				}

				var got []string
				for _, id := range m.modal.FocusIDs() {
					if strings.Contains(id, "_") {
						got = append(got, id)
					}
				}
				if strings.Join(got, ",") != strings.Join(tt.fields, ",") {
					t.Errorf("visible fields = %v, want %v", got, tt.fields)
				}

				out := visible(m)
				for _, f := range tt.method.Fields() {
					want := "YYYY-MM-DD"
					if f.Kind == payment.FieldText {
						want = cat.T(lang, i18n.Key(f.PlaceholderKey))
					}
					if !strings.Contains(out, want) {
						t.Errorf("placeholder %q not shown in full:\n%s", want, out)
					}
				}
			})
		}
	}
}

func TestChequeFields(t *testing.T) {
	m, _ := newDialog(t, payment.LangEnglish)
	m.Dispatch(form.SelectMethod{Method: payment.MethodCheque})
	out := visible(m)

	for _, want := range []string{"Cheque No.", "Cheque Date", "Enter Cheque Number", "YYYY-MM-DD"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "DD No.") || strings.Contains(out, "RTGS Reference No.") {
		t.Error("fields of other methods rendered")
	}
}

func TestTypingUpdatesState(t *testing.T) {
	m, rec := newDialog(t, payment.LangEnglish)
	m.Dispatch(form.SelectMethod{Method: payment.MethodDD})
	m.View()

	m.modal.SetFocus(string(payment.FieldDDNumber))
	press(m, "D", "1", "2")
	m.modal.SetFocus(string(payment.FieldDDDate))
	press(m, "2", "0", "2", "6", "x", "-", "0", "1", "-", "1", "5")

	s := m.State()
	if s.DDNumber != "D12" {
		t.Errorf("DDNumber = %q", s.DDNumber)
	}
	if s.DDDate != "2026-01-15" {
		t.Errorf("DDDate = %q, letters must be rejected", s.DDDate)
	}

	// Enter in a field falls through to Proceed.
	press(m, "enter")
	if len(rec.confirms) != 1 {
		t.Fatalf("confirms = %d, want 1", len(rec.confirms))
	}
	want := payment.DemandDraft{Number: "D12", Date: "2026-01-15"}
	if got := rec.confirms[0].Method; got != want {
		t.Errorf("Method = %#v, want %#v", got, want)
	}
}

func TestConfirmationCarriesOnlySelectedMethod(t *testing.T) {
	m, rec := newDialog(t, payment.LangHindi)
	m.Dispatch(form.SelectMethod{Method: payment.MethodCheque})
	m.Dispatch(form.SetField{Field: payment.FieldChequeNumber, Value: "000123"})
	m.Dispatch(form.SelectMethod{Method: payment.MethodRTGS})
	m.Dispatch(form.SetField{Field: payment.FieldRTGSNumber, Value: "UTR9"})

	clickID(t, m, proceedID)

	if len(rec.confirms) != 1 {
		t.Fatalf("confirms = %d, want 1", len(rec.confirms))
	}
	c := rec.confirms[0]
	if _, ok := c.Method.(payment.RTGS); !ok {
		t.Fatalf("Method = %T, want RTGS", c.Method)
	}
	if c.Language != payment.LangHindi || c.ConsumerNo != "CN1001" || c.Amount != 500 {
		t.Errorf("props not carried: %+v", c)
	}
	if c.PaymentType != payment.TypeTotal {
		t.Errorf("PaymentType = %q, want default total", c.PaymentType)
	}
	if c.MobileNumber != form.DefaultMobileNumber || c.Email != form.DefaultEmail {
		t.Errorf("contact = %q %q", c.MobileNumber, c.Email)
	}
	// The cheque number is still in state but inert.
	if m.State().ChequeNumber != "000123" {
		t.Error("inert value lost")
	}
}

func TestCancelPaths(t *testing.T) {
	tests := []struct {
		name string
		act  func(t *testing.T, m *Model)
	}{
		{"backdrop", func(t *testing.T, m *Model) { clickID(t, m, modal.BackdropID) }},
		{"close icon", func(t *testing.T, m *Model) { clickID(t, m, modal.CloseID) }},
		{"cancel button", func(t *testing.T, m *Model) { clickID(t, m, cancelID) }},
		{"esc", func(t *testing.T, m *Model) { press(m, "esc") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, rec := newDialog(t, payment.LangMarathi)
			tt.act(t, m)
			if rec.cancels != 1 {
				t.Errorf("cancels = %d, want 1", rec.cancels)
			}
			if len(rec.confirms) != 0 {
				t.Errorf("confirm fired %d times", len(rec.confirms))
			}
		})
	}
}

func TestProceedWithoutValidation(t *testing.T) {
	rec := &recorder{}
	p := rec.props(payment.LangEnglish)
	p.Amount = 0
	p.ConsumerNo = ""
	m := New(p, WithScreenSize(100, 40))
	m.Dispatch(form.SelectMethod{Method: payment.MethodCheque})

	if out := visible(m); !strings.Contains(out, "₹0.00") {
		t.Errorf("zero amount not rendered:\n%s", out)
	}
	clickID(t, m, proceedID)
	clickID(t, m, proceedID)
	if len(rec.confirms) != 2 {
		t.Errorf("confirms = %d, want one per click", len(rec.confirms))
	}
	if rec.cancels != 0 {
		t.Errorf("cancel fired %d times", rec.cancels)
	}
}

func TestEscClosesMenuFirst(t *testing.T) {
	m, rec := newDialog(t, payment.LangEnglish)
	clickID(t, m, toggleID)
	if !m.State().DropdownOpen {
		t.Fatal("click on control should open the menu")
	}

	press(m, "esc")
	if m.State().DropdownOpen {
		t.Error("esc should close the menu")
	}
	if rec.cancels != 0 {
		t.Error("esc with open menu must not cancel")
	}
	press(m, "esc")
	if rec.cancels != 1 {
		t.Errorf("cancels = %d, want 1", rec.cancels)
	}
}

func TestClickMenuOption(t *testing.T) {
	m, _ := newDialog(t, payment.LangEnglish)
	clickID(t, m, toggleID)
	clickID(t, m, itemPrefix+string(payment.MethodRTGS))

	s := m.State()
	if s.SelectedMethod != payment.MethodRTGS || s.DropdownOpen {
		t.Errorf("state = %+v", s)
	}

	// Choosing the active method again only closes the menu.
	clickID(t, m, toggleID)
	clickID(t, m, itemPrefix+string(payment.MethodRTGS))
	if s := m.State(); s.SelectedMethod != payment.MethodRTGS || s.DropdownOpen {
		t.Errorf("state = %+v", s)
	}
}

func TestContactFieldsReadOnly(t *testing.T) {
	m, _ := newDialog(t, payment.LangEnglish)
	out := visible(m)
	if !strings.Contains(out, form.DefaultMobileNumber) || !strings.Contains(out, form.DefaultEmail) {
		t.Errorf("contact details missing:\n%s", out)
	}
	for _, id := range m.modal.FocusIDs() {
		if id == mobileID || id == emailID {
			t.Errorf("%s should not take focus", id)
		}
	}
}

func TestReopenResetsForm(t *testing.T) {
	m, _ := newDialog(t, payment.LangEnglish)
	m.Dispatch(form.SelectMethod{Method: payment.MethodCheque})
	m.Dispatch(form.SetField{Field: payment.FieldChequeNumber, Value: "42"})

	p := m.Props()
	p.IsOpen = false
	m.SetProps(p)
	if m.View() != "" {
		t.Error("closed dialog rendered")
	}

	p.IsOpen = true
	m.SetProps(p)
	s := m.State()
	if s.SelectedMethod != payment.MethodCash || s.ChequeNumber != "" {
		t.Errorf("reopened state = %+v, want fresh", s)
	}
	if v := m.inputs[payment.FieldChequeNumber].Value(); v != "" {
		t.Errorf("cheque input kept %q", v)
	}
}

func TestLanguageChangeWhileOpen(t *testing.T) {
	m, _ := newDialog(t, payment.LangEnglish)
	m.Dispatch(form.SelectMethod{Method: payment.MethodDD})

	p := m.Props()
	p.Language = payment.LangMarathi
	m.SetProps(p)

	out := visible(m)
	if want := i18n.Default().T(payment.LangMarathi, i18n.Title); !strings.Contains(out, want) {
		t.Errorf("title not switched to %q", want)
	}
	if m.State().SelectedMethod != payment.MethodDD {
		t.Error("language change should keep the form")
	}
}

func TestCustomContact(t *testing.T) {
	rec := &recorder{}
	m := New(rec.props(payment.LangEnglish),
		WithContact(form.Contact{MobileNumber: "9123456789", Email: "a@b.in"}),
		WithDialogWidth(70),
	)
	out := visible(m)
	if !strings.Contains(out, "9123456789") || !strings.Contains(out, "a@b.in") {
		t.Errorf("custom contact missing:\n%s", out)
	}
}

func TestLongContactShownInFull(t *testing.T) {
	const email = "rajesh.sharma.accounts.department@example-utility.co.in"
	rec := &recorder{}
	m := New(rec.props(payment.LangEnglish),
		WithContact(form.Contact{Email: email}),
		WithDialogWidth(90),
		WithScreenSize(100, 40),
	)

	if m.State().Email != email {
		t.Fatalf("state email = %q", m.State().Email)
	}
	if out := visible(m); !strings.Contains(out, email) {
		t.Errorf("email not shown in full:\n%s", out)
	}

	clickID(t, m, proceedID)
	if len(rec.confirms) != 1 || rec.confirms[0].Email != email {
		t.Errorf("confirms = %+v, want email %q", rec.confirms, email)
	}
}

func TestTitleCarriesIcon(t *testing.T) {
	m, _ := newDialog(t, payment.LangHindi)
	want := titleIcon + " " + i18n.Default().T(payment.LangHindi, i18n.Title)
	if out := visible(m); !strings.Contains(out, want) {
		t.Errorf("header missing %q:\n%s", want, out)
	}
}
