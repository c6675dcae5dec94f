package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/marcus/billpay/internal/i18n"
	"github.com/marcus/billpay/internal/output"
	"github.com/marcus/billpay/internal/payment"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// filterKeys returns the keys matching pattern, best match first. An empty
// pattern returns every key in table order.
func filterKeys(keys []i18n.Key, pattern string) []i18n.Key {
	if pattern == "" {
		return keys
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	matches := fuzzy.Find(pattern, names)
	out := make([]i18n.Key, 0, len(matches))
	for _, m := range matches {
		out = append(out, keys[m.Index])
	}
	return out
}

// stringsTable builds a markdown table of keys by language.
func stringsTable(cat *i18n.Catalog, langs []payment.Language, keys []i18n.Key) string {
	var sb strings.Builder

	sb.WriteString("| key |")
	for _, l := range langs {
		fmt.Fprintf(&sb, " %s (%s) |", l.NativeName(), l)
	}
	sb.WriteString("\n|---|")
	for range langs {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")

	for _, k := range keys {
		fmt.Fprintf(&sb, "| `%s` |", k)
		for _, l := range langs {
			fmt.Fprintf(&sb, " %s |", strings.ReplaceAll(cat.T(l, k), "|", `\|`))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

var stringsCmd = &cobra.Command{
	Use:   "strings",
	Short: "Show the dialog's translation table",
	Example: `  billpay strings
  billpay strings --lang mr --grep cheque`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := i18n.Default()

		langs := cat.Languages()
		if v, _ := cmd.Flags().GetString("lang"); v != "" {
			lang, err := payment.ParseLanguage(v)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			langs = []payment.Language{lang}
		}

		pattern, _ := cmd.Flags().GetString("grep")
		keys := filterKeys(i18n.Keys, pattern)
		if len(keys) == 0 {
			output.Warning("no keys match %q", pattern)
			return nil
		}

		md := stringsTable(cat, langs, keys)
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Fprint(output.Stdout, md)
			return nil
		}

		width := 100
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return fmt.Errorf("markdown renderer: %w", err)
		}
		rendered, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("render table: %w", err)
		}
		fmt.Fprint(output.Stdout, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stringsCmd)

	stringsCmd.Flags().String("lang", "", "Only show one language (mr, hi, en)")
	stringsCmd.Flags().String("grep", "", "Fuzzy-filter keys")
	stringsCmd.Flags().Bool("raw", false, "Print markdown without rendering")
}
