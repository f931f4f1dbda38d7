package services

import (
	"journeybuilder/domain/core/aggregates"
	"journeybuilder/domain/core/valueobjects"
)

// GroupRewrite transforms a single condition group
type GroupRewrite func(aggregates.ConditionGroup) aggregates.ConditionGroup

// RewriteGroup walks the tree depth-first from root and applies fn to the
// first group whose id matches. Only the ancestors of that group are rebuilt;
// every other subtree is carried over as is. The bool is false, and root is
// returned untouched, when no group matches.
func RewriteGroup(root aggregates.ConditionGroup, id valueobjects.ConditionID, fn GroupRewrite) (aggregates.ConditionGroup, bool) {
	if root.ID == id {
		return fn(root), true
	}
	for i, child := range root.Conditions {
		sub, ok := child.(aggregates.ConditionGroup)
		if !ok {
			continue
		}
		rewritten, found := RewriteGroup(sub, id, fn)
		if !found {
			continue
		}
		children := make([]aggregates.ConditionNode, len(root.Conditions))
		copy(children, root.Conditions)
		children[i] = rewritten
		root.Conditions = children
		return root, true
	}
	return root, false
}

// FindGroup returns the first group with the given id
func FindGroup(root aggregates.ConditionGroup, id valueobjects.ConditionID) (aggregates.ConditionGroup, bool) {
	if root.ID == id {
		return root, true
	}
	for _, child := range root.Conditions {
		if sub, ok := child.(aggregates.ConditionGroup); ok {
			if found, ok := FindGroup(sub, id); ok {
				return found, true
			}
		}
	}
	return aggregates.ConditionGroup{}, false
}

// GroupLevel reports how deep the group sits, the root being level 1
func GroupLevel(root aggregates.ConditionGroup, id valueobjects.ConditionID) (int, bool) {
	if root.ID == id {
		return 1, true
	}
	for _, child := range root.Conditions {
		if sub, ok := child.(aggregates.ConditionGroup); ok {
			if level, ok := GroupLevel(sub, id); ok {
				return level + 1, true
			}
		}
	}
	return 0, false
}

// AppendChild adds node after the group's existing children
func AppendChild(node aggregates.ConditionNode) GroupRewrite {
	return func(g aggregates.ConditionGroup) aggregates.ConditionGroup {
		children := make([]aggregates.ConditionNode, 0, len(g.Conditions)+1)
		children = append(children, g.Conditions...)
		g.Conditions = append(children, node)
		return g
	}
}

// PatchLeaf merges patch into the direct leaf child with the given id
func PatchLeaf(id valueobjects.ConditionID, patch aggregates.ConditionPatch) GroupRewrite {
	return func(g aggregates.ConditionGroup) aggregates.ConditionGroup {
		for i, child := range g.Conditions {
			leaf, ok := child.(aggregates.Condition)
			if !ok || leaf.ID != id {
				continue
			}
			children := make([]aggregates.ConditionNode, len(g.Conditions))
			copy(children, g.Conditions)
			children[i] = leaf.Merge(patch)
			g.Conditions = children
			return g
		}
		return g
	}
}

// RemoveChild drops the direct child, leaf or group, with the given id
func RemoveChild(id valueobjects.ConditionID) GroupRewrite {
	return func(g aggregates.ConditionGroup) aggregates.ConditionGroup {
		children := make([]aggregates.ConditionNode, 0, len(g.Conditions))
		for _, child := range g.Conditions {
			if child.NodeID() != id {
				children = append(children, child)
			}
		}
		g.Conditions = children
		return g
	}
}

// FlipOperator toggles and/or on the group itself
func FlipOperator() GroupRewrite {
	return func(g aggregates.ConditionGroup) aggregates.ConditionGroup {
		g.Operator = g.Operator.Flip()
		return g
	}
}
