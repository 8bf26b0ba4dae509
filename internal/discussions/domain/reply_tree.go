package domain

// BuildReplyTree groups a flat, ordered list of replies into two levels.
//
// Top-level replies keep their input order and each gets, in input order, the
// replies whose ParentReplyID names it. Threads are at most two levels deep:
// a reply whose parent is itself a child, or whose parent is not in the list,
// is left out of the tree (the row still exists in storage).
func BuildReplyTree(replies []Reply) []ReplyTreeNode {
	byParent := make(map[string][]Reply)
	for _, r := range replies {
		if !isTopLevel(r) {
			byParent[*r.ParentReplyID] = append(byParent[*r.ParentReplyID], r)
		}
	}

	nodes := make([]ReplyTreeNode, 0, len(replies)-countChildren(byParent))
	for _, r := range replies {
		if !isTopLevel(r) {
			continue
		}
		children := make([]Reply, len(byParent[r.ID]))
		copy(children, byParent[r.ID])
		nodes = append(nodes, ReplyTreeNode{Reply: r, Children: children})
	}
	return nodes
}

func isTopLevel(r Reply) bool {
	return r.ParentReplyID == nil || *r.ParentReplyID == ""
}

func countChildren(byParent map[string][]Reply) int {
	n := 0
	for _, c := range byParent {
		n += len(c)
	}
	return n
}
