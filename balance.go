package ledgerview

import (
	"github.com/shopspring/decimal"
)

// Balance maps a commodity code to a summed quantity, aggregated over a set
// of postings.
type Balance map[string]decimal.Decimal

// Add accumulates an amount into the balance.
func (b Balance) Add(a Amount) {
	b[a.Commodity.Code] = b[a.Commodity.Code].Add(a.Quantity)
}

// AccountBalances sums every posting with an amount, grouped by exact account
// path and by commodity.
func AccountBalances(l *Ledger) map[string]Balance {
	balances := make(map[string]Balance)
	for _, tx := range l.Transactions() {
		for _, p := range tx.Postings {
			if p.Amount == nil {
				continue
			}
			b, ok := balances[p.Account]
			if !ok {
				b = make(Balance)
				balances[p.Account] = b
			}
			b.Add(p.Amount.Amount)
		}
	}
	return balances
}

// TreeNode is a node of the account hierarchy. It owns the balance directly
// posted to its own path plus a child node per path segment below it.
type TreeNode struct {
	Balance  Balance
	Children map[string]*TreeNode
}

func newTreeNode() *TreeNode {
	return &TreeNode{Balance: make(Balance), Children: make(map[string]*TreeNode)}
}

// BuildTree groups flat per-account balances into a hierarchy keyed by
// slash-delimited path segment. The returned node is the virtual root above
// all top-level accounts.
func BuildTree(balances map[string]Balance) *TreeNode {
	root := newTreeNode()
	for account, balance := range balances {
		node := root
		for _, segment := range AccountSegments(account) {
			child, ok := node.Children[segment]
			if !ok {
				child = newTreeNode()
				node.Children[segment] = child
			}
			node = child
		}
		for commodity, qty := range balance {
			node.Balance[commodity] = node.Balance[commodity].Add(qty)
		}
	}
	return root
}

// Lookup walks the tree along a slash-delimited account path. It returns nil
// when the path has no node.
func (n *TreeNode) Lookup(account string) *TreeNode {
	node := n
	for _, segment := range AccountSegments(account) {
		child, ok := node.Children[segment]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// Total returns the node's aggregated balance for one commodity: its own
// directly posted quantity plus every descendant's.
func (n *TreeNode) Total(commodity string) decimal.Decimal {
	total := n.Balance[commodity]
	for _, child := range n.Children {
		total = total.Add(child.Total(commodity))
	}
	return total
}
