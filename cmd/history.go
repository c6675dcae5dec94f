package cmd

import (
	"fmt"
	"strings"

	"github.com/marcus/billpay/internal/output"
	"github.com/marcus/billpay/internal/payment"
	"github.com/marcus/billpay/internal/receipts"
	"github.com/spf13/cobra"
)

// receiptTree groups receipts by consumer, keeping the order in which each
// consumer first appears.
func receiptTree(rs []receipts.Receipt) []output.TreeNode {
	var (
		nodes []output.TreeNode
		index = make(map[string]int)
	)
	for _, r := range rs {
		i, ok := index[r.ConsumerNo]
		if !ok {
			i = len(nodes)
			index[r.ConsumerNo] = i
			nodes = append(nodes, output.TreeNode{ID: r.ConsumerNo})
		}
		nodes[i].Children = append(nodes[i].Children, output.TreeNode{
			ID:     fmt.Sprintf("#%d", r.Seq),
			Title:  payment.FormatAmount(r.Amount),
			Method: r.Method,
		})
	}
	return nodes
}

func formatReceiptLine(r receipts.Receipt) string {
	parts := []string{
		fmt.Sprintf("#%-4d", r.Seq),
		fmt.Sprintf("%-10s", r.ConsumerNo),
		fmt.Sprintf("%12s", payment.FormatAmount(r.Amount)),
		output.FormatMethod(r.Method),
	}
	if r.InstrumentNo != "" {
		parts = append(parts, r.InstrumentNo)
	}
	if r.InstrumentDate != "" {
		parts = append(parts, r.InstrumentDate)
	}
	parts = append(parts, output.FormatTimeAgo(r.CreatedAt))
	return strings.Join(parts, "  ")
}

// historyFilter builds the journal filter from --consumer, --method and --limit.
func historyFilter(cmd *cobra.Command) (receipts.Filter, error) {
	f := receipts.Filter{}
	f.Limit, _ = cmd.Flags().GetInt("limit")
	f.ConsumerNo, _ = cmd.Flags().GetString("consumer")
	if v, _ := cmd.Flags().GetString("method"); v != "" {
		id, err := payment.ParseMethodID(v)
		if err != nil {
			return f, err
		}
		f.Method = id
	}
	return f, nil
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled confirmations, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := receipts.Open(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer store.Close()

		f, err := historyFilter(cmd)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		rs, err := store.List(cmd.Context(), f)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			if rs == nil {
				rs = []receipts.Receipt{}
			}
			return output.JSON(rs)
		}

		if len(rs) == 0 {
			fmt.Fprintln(output.Stdout, "No confirmations recorded")
			return nil
		}

		if tree, _ := cmd.Flags().GetBool("tree"); tree {
			lines := output.RenderTreeLines(receiptTree(rs), output.TreeRenderOptions{ShowMethod: true})
			fmt.Fprintln(output.Stdout, strings.Join(lines, "\n"))
			return nil
		}

		for _, r := range rs {
			fmt.Fprintln(output.Stdout, formatReceiptLine(r))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().Int("limit", 20, "Max confirmations to show (0 for all)")
	historyCmd.Flags().String("consumer", "", "Only show one consumer")
	historyCmd.Flags().String("method", "", "Only show one payment method (cash, cheque, dd, rtgs)")
	historyCmd.Flags().Bool("tree", false, "Group by consumer")
	historyCmd.Flags().Bool("json", false, "Machine-readable JSON")
}
