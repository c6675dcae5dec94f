package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/marcus/billpay/internal/config"
	"github.com/marcus/billpay/internal/form"
	"github.com/marcus/billpay/internal/output"
	"github.com/marcus/billpay/internal/payment"
	"github.com/marcus/billpay/internal/receipts"
	"github.com/marcus/billpay/pkg/confirm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var errCancelled = errors.New("payment cancelled")

var (
	langFlag payment.Language
	typeFlag payment.PaymentType

	_ pflag.Value = &langFlag
	_ pflag.Value = &typeFlag
)

type outcome int

const (
	outcomePending outcome = iota
	outcomeConfirmed
	outcomeCancelled
)

// hostModel owns the dialog's props and quits once a callback fires.
type hostModel struct {
	dialog  *confirm.Model
	outcome outcome
	result  payment.Confirmation
}

func newHostModel(props confirm.Props, opts ...confirm.Option) *hostModel {
	h := &hostModel{}
	props.IsOpen = true
	props.OnConfirm = func(c payment.Confirmation) {
		h.result = c
		h.outcome = outcomeConfirmed
	}
	props.OnCancel = func() {
		h.outcome = outcomeCancelled
	}
	h.dialog = confirm.New(props, opts...)
	return h
}

func (h *hostModel) Init() tea.Cmd {
	return h.dialog.Init()
}

func (h *hostModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		h.outcome = outcomeCancelled
	} else {
		var cmd tea.Cmd
		_, cmd = h.dialog.Update(msg)
		if h.outcome == outcomePending {
			return h, cmd
		}
	}

	// Close the dialog; the host decides what happens next.
	p := h.dialog.Props()
	p.IsOpen = false
	h.dialog.SetProps(p)
	return h, tea.Quit
}

func (h *hostModel) View() string {
	return h.dialog.View()
}

// runDialog runs the dialog full screen. Tests replace it.
var runDialog = func(h *hostModel) error {
	p := tea.NewProgram(h, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// promptMissing asks for the consumer number and language with a huh form.
func promptMissing(consumer *string, lang *payment.Language, askLang bool) error {
	var fields []huh.Field
	if *consumer == "" {
		fields = append(fields, huh.NewInput().
			Title("Consumer No.").
			Value(consumer).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("consumer number is required")
				}
				return nil
			}))
	}
	if askLang {
		opts := make([]huh.Option[payment.Language], 0, len(payment.Languages))
		for _, l := range payment.Languages {
			opts = append(opts, huh.NewOption(l.NativeName(), l))
		}
		fields = append(fields, huh.NewSelect[payment.Language]().
			Title("Language").
			Options(opts...).
			Value(lang))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

// resolveLanguage applies flag > env > config > default.
func resolveLanguage(cmd *cobra.Command, dir string) (payment.Language, config.Source, error) {
	if cmd.Flags().Changed("lang") {
		return langFlag, config.SourceFlag, nil
	}
	return config.ResolveLanguage(dir)
}

// resolveContact layers --mobile and --email over env and config.
func resolveContact(cmd *cobra.Command, dir string) form.Contact {
	c := config.ResolveContact(dir)
	if v, _ := cmd.Flags().GetString("mobile"); v != "" {
		c.MobileNumber = v
	}
	if v, _ := cmd.Flags().GetString("email"); v != "" {
		c.Email = v
	}
	return c
}

// journal records c in the project journal and returns the receipt id.
func journal(ctx context.Context, dir string, c payment.Confirmation) (string, error) {
	store, err := receipts.Open(dir)
	if err != nil {
		return "", err
	}
	defer store.Close()

	r, err := store.Record(ctx, c)
	if err != nil {
		return "", err
	}
	slog.Debug("journaled confirmation", "id", r.ID, "seq", r.Seq)
	return r.ID, nil
}

var confirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Open the payment confirmation dialog",
	Example: `  billpay confirm --consumer CN1001 --amount 500
  billpay confirm --consumer CN1001 --amount 1234.5 --lang mr --type partial`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := getBaseDir()
		jsonOutput, _ := cmd.Flags().GetBool("json")

		consumer, _ := cmd.Flags().GetString("consumer")
		amount, _ := cmd.Flags().GetFloat64("amount")
		if amount < 0 {
			return fmt.Errorf("--amount must not be negative, got %v", amount)
		}

		lang, src, err := resolveLanguage(cmd, dir)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if !isTerminal() {
			return errors.New("confirm needs an interactive terminal")
		}
		if consumer == "" || src == config.SourceDefault {
			if err := promptMissing(&consumer, &lang, src == config.SourceDefault); err != nil {
				return fmt.Errorf("prompt: %w", err)
			}
		}
		slog.Debug("opening dialog", "consumer", consumer, "language", lang, "source", src)

		opts := []confirm.Option{confirm.WithContact(resolveContact(cmd, dir))}
		if w, _ := cmd.Flags().GetInt("width"); w > 0 {
			opts = append(opts, confirm.WithDialogWidth(w))
		} else if w := config.DialogWidth(dir); w > 0 {
			opts = append(opts, confirm.WithDialogWidth(w))
		}
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			opts = append(opts, confirm.WithScreenSize(w, h))
		}

		host := newHostModel(confirm.Props{
			Language:    lang,
			Amount:      amount,
			ConsumerNo:  consumer,
			PaymentType: typeFlag.OrDefault(),
		}, opts...)
		if err := runDialog(host); err != nil {
			return fmt.Errorf("run dialog: %w", err)
		}

		return finishConfirm(cmd, dir, host, jsonOutput)
	},
}

// finishConfirm reports the dialog's outcome and journals a confirmation.
func finishConfirm(cmd *cobra.Command, dir string, host *hostModel, jsonOutput bool) error {
	if host.outcome != outcomeConfirmed {
		if jsonOutput {
			output.JSONError("cancelled", errCancelled.Error())
		} else {
			output.Warning("%v", errCancelled)
		}
		return errCancelled
	}
	c := host.result

	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		if err := c.Validate(); err != nil {
			if jsonOutput {
				output.JSONError("invalid", err.Error())
			} else {
				output.Error("%v", err)
			}
			return err
		}
	}

	receiptID := ""
	if noJournal, _ := cmd.Flags().GetBool("no-journal"); !noJournal && config.JournalEnabled(dir) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		id, err := journal(ctx, dir, c)
		if err != nil {
			output.Warning("journal: %v", err)
		}
		receiptID = id
	}

	if jsonOutput {
		result := map[string]any{"confirmation": c}
		if receiptID != "" {
			result["receipt_id"] = receiptID
		}
		return output.JSON(result)
	}

	output.Success("Payment confirmed")
	fmt.Fprint(output.Stdout, output.FormatConfirmation(c))
	if receiptID != "" {
		fmt.Fprintf(output.Stdout, "Receipt  %s\n", receiptID)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(confirmCmd)

	confirmCmd.Flags().String("consumer", "", "Consumer number (prompted when empty)")
	confirmCmd.Flags().Float64("amount", 0, "Amount to confirm")
	confirmCmd.Flags().Var(&langFlag, "lang", "Dialog language: mr, hi or en")
	confirmCmd.Flags().Var(&typeFlag, "type", "Payment type: pending, total or partial")
	confirmCmd.Flags().String("mobile", "", "Prefilled mobile number")
	confirmCmd.Flags().String("email", "", "Prefilled email address")
	confirmCmd.Flags().Int("width", 0, "Dialog width in cells")
	confirmCmd.Flags().Bool("strict", false, "Validate the confirmation before accepting it")
	confirmCmd.Flags().Bool("no-journal", false, "Do not record the confirmation")
	confirmCmd.Flags().Bool("json", false, "Machine-readable JSON")
}
