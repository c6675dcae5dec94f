package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/billpay/internal/payment"
)

func TestRenderTreeLines_Empty(t *testing.T) {
	lines := RenderTreeLines(nil, TreeRenderOptions{})
	if len(lines) != 0 {
		t.Errorf("expected empty lines, got %d", len(lines))
	}
}

func TestRenderTreeLines_SingleNode(t *testing.T) {
	nodes := []TreeNode{
		{ID: "#1", Title: "₹500.00", Method: payment.MethodCheque},
	}
	lines := RenderTreeLines(nodes, TreeRenderOptions{ShowMethod: true})

	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}

	line := ansi.Strip(lines[0])
	if !strings.Contains(line, "└──") {
		t.Errorf("expected last-item connector, got: %s", line)
	}
	if !strings.Contains(line, "#1:") {
		t.Errorf("expected ID in output, got: %s", line)
	}
	if !strings.Contains(line, "₹500.00") {
		t.Errorf("expected title in output, got: %s", line)
	}
	if !strings.Contains(line, "[✎ cheque]") {
		t.Errorf("expected method badge in output, got: %s", line)
	}
}

func TestRenderTreeLines_MultipleNodes(t *testing.T) {
	nodes := []TreeNode{
		{ID: "CN1001"},
		{ID: "CN2002"},
	}
	lines := RenderTreeLines(nodes, TreeRenderOptions{})

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "├──") {
		t.Errorf("expected non-last connector for first node, got: %s", lines[0])
	}
	if !strings.Contains(lines[1], "└──") {
		t.Errorf("expected last connector for second node, got: %s", lines[1])
	}
	if strings.Contains(lines[0], ":") {
		t.Errorf("node without title should not have a colon: %s", lines[0])
	}
}

func TestRenderTreeLines_Nested(t *testing.T) {
	nodes := []TreeNode{
		{
			ID: "CN1001",
			Children: []TreeNode{
				{ID: "#3", Title: "₹10.00", Method: payment.MethodCash},
				{ID: "#1", Title: "₹20.00", Method: payment.MethodRTGS},
			},
		},
		{
			ID:       "CN2002",
			Children: []TreeNode{{ID: "#2", Title: "₹30.00", Method: payment.MethodDD}},
		},
	}
	lines := RenderTreeLines(nodes, TreeRenderOptions{})

	want := []string{
		"├── CN1001",
		"│   ├── #3: ₹10.00",
		"│   └── #1: ₹20.00",
		"└── CN2002",
		"    └── #2: ₹30.00",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), strings.Join(lines, "\n"))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderTreeLines_MaxDepth(t *testing.T) {
	nodes := []TreeNode{{ID: "CN1", Children: []TreeNode{{ID: "#1"}}}}
	lines := RenderTreeLines(nodes, TreeRenderOptions{MaxDepth: 1})
	if len(lines) != 1 {
		t.Errorf("MaxDepth 1 should hide children, got %v", lines)
	}
}

func TestRenderTree_SkipsRoot(t *testing.T) {
	root := TreeNode{ID: "root", Children: []TreeNode{{ID: "CN1"}}}
	got := RenderTree(root, TreeRenderOptions{})
	if strings.Contains(got, "root") {
		t.Errorf("root should not be rendered: %q", got)
	}
	if got != "└── CN1" {
		t.Errorf("got %q", got)
	}
}
