// Package output formats CLI messages, receipts and confirmations.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/billpay/internal/payment"
)

// Writers used by the print helpers. Tests swap them.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	amountStyle  = lipgloss.NewStyle().Bold(true)
)

// Success prints a success message
func Success(format string, args ...any) {
	fmt.Fprintln(Stdout, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning to stderr
func Warning(format string, args ...any) {
	fmt.Fprintln(Stderr, warningStyle.Render("! "+fmt.Sprintf(format, args...)))
}

// Error prints an error to stderr
func Error(format string, args ...any) {
	fmt.Fprintln(Stderr, errorStyle.Render("ERROR: "+fmt.Sprintf(format, args...)))
}

// JSON writes v as indented JSON
func JSON(v any) error {
	enc := json.NewEncoder(Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// JSONError writes a machine-readable error object
func JSONError(code, message string) {
	JSON(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// FormatMethod renders a method id with its accent glyph.
func FormatMethod(id payment.MethodID) string {
	if id == "" {
		return "-"
	}
	a := id.Accent()
	return lipgloss.NewStyle().Foreground(lipgloss.Color(a.Color)).Render(a.Glyph + " " + string(id))
}

// FormatConfirmation renders a confirmation as aligned label/value lines.
func FormatConfirmation(c payment.Confirmation) string {
	type row struct{ label, value string }
	rows := []row{
		{"Consumer", c.ConsumerNo},
		{"Amount", amountStyle.Render(payment.FormatAmount(c.Amount))},
		{"Type", string(c.PaymentType.OrDefault())},
		{"Method", FormatMethod(c.MethodID())},
	}
	if c.Method != nil {
		if number, date := payment.Instrument(c.Method); number != "" || date != "" {
			rows = append(rows, row{"Number", number}, row{"Date", date})
		}
	}
	rows = append(rows, row{"Mobile", c.MobileNumber}, row{"Email", c.Email})

	var sb strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-9s", r.label)), r.value)
	}
	return sb.String()
}

// FormatTimeAgo returns a human-readable relative time
func FormatTimeAgo(t time.Time) string {
	return formatTimeAgo(t, time.Now())
}

func formatTimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
