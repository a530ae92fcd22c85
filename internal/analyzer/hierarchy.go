package analyzer

import (
	"context"
	"fmt"

	"github.com/cppintel/mcp-cpp-bridge/internal/lsptypes"
)

// TypeHierarchy builds the complete type hierarchy for the class/struct at
// uri/pos: immediate base classes (non-recursive, per the reference CLI)
// plus a fully recursive, cycle-safe subtype tree capped at
// TypeHierarchyDepthCap. Adapted from the reference CLI's
// buildCompleteHierarchy/buildSubtypeTree.
func (a *Analyzer) TypeHierarchy(ctx context.Context, uri string, pos lsptypes.Position) (*HierarchyNode, error) {
	items, err := a.client.PrepareTypeHierarchy(ctx, uri, pos)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	root := items[0]

	supertypes, err := a.client.GetSupertypes(ctx, root)
	if err != nil {
		a.log.Debug("failed to get supertypes for %s: %v", root.Name, err)
		supertypes = nil
	}
	superNodes := make([]HierarchyNode, 0, len(supertypes))
	for _, s := range supertypes {
		superNodes = append(superNodes, a.hierarchyNodeLeaf(s))
	}

	subtypes, err := a.buildSubtypeTree(ctx, root, make(map[string]bool), 0)
	if err != nil {
		return nil, err
	}

	return &HierarchyNode{
		Name:       root.Name,
		Detail:     root.Detail,
		Location:   a.toLocation(root.URI, root.Range.Start),
		Supertypes: superNodes,
		Subtypes:   subtypes.Subtypes,
	}, nil
}

func (a *Analyzer) hierarchyNodeLeaf(item lsptypes.TypeHierarchyItem) HierarchyNode {
	return HierarchyNode{
		Name:     item.Name,
		Detail:   item.Detail,
		Location: a.toLocation(item.URI, item.Range.Start),
	}
}

func hierarchyItemKey(item lsptypes.TypeHierarchyItem) string {
	return fmt.Sprintf("%s:%d:%d", item.URI, item.Range.Start.Line, item.Range.Start.Character)
}

// buildSubtypeTree recursively expands subtypes. Each branch carries its
// own copy of the visited set so the same class can legitimately appear
// under multiple branches (diamond-shaped hierarchies) while still
// refusing to recurse into itself.
func (a *Analyzer) buildSubtypeTree(ctx context.Context, item lsptypes.TypeHierarchyItem, visited map[string]bool, depth int) (HierarchyNode, error) {
	key := hierarchyItemKey(item)
	node := a.hierarchyNodeLeaf(item)

	if visited[key] || depth > TypeHierarchyDepthCap {
		return node, nil
	}
	visited[key] = true

	subtypes, err := a.client.GetSubtypes(ctx, item)
	if err != nil {
		a.log.Debug("failed to get subtypes for %s: %v", item.Name, err)
		return node, nil
	}

	children := make([]HierarchyNode, 0, len(subtypes))
	for _, sub := range subtypes {
		branchVisited := make(map[string]bool, len(visited))
		for k, v := range visited {
			branchVisited[k] = v
		}
		child, err := a.buildSubtypeTree(ctx, sub, branchVisited, depth+1)
		if err != nil {
			continue
		}
		children = append(children, child)
	}
	node.Subtypes = children
	return node, nil
}
