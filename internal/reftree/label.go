package reftree

import "fmt"

// Label renders a node the way the tree shows it: headers with their leaf
// count, groups with a trailing slash, the active branch starred.
func Label(n Node) string {
	switch v := n.(type) {
	case *HeaderNode:
		return fmt.Sprintf("%s (%d)", v.Name(), CountLeaves(v))
	case *LocalBranchNode:
		label := v.Name()
		if v.IsActive {
			label = "* " + label
		}
		if v.Upstream != "" {
			label += "  -> " + v.Upstream
		}
		return label
	case *RemoteRepoNode:
		if !v.Enabled {
			return v.Name() + " (disabled)"
		}
		return v.Name()
	case *BranchPathNode:
		return v.Name() + "/"
	default:
		return n.Name()
	}
}

// CountLeaves counts the refs below n, looking through groups and remotes.
func CountLeaves(n Node) int {
	var count int
	for _, c := range n.Children() {
		switch c.Kind() {
		case KindBranchPath, KindRemoteRepo:
			count += CountLeaves(c)
		default:
			count++
		}
	}
	return count
}

// Depth is the number of ancestors of n.
func Depth(n Node) int {
	var d int
	for p := n.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}
