package usecase

import (
	"sort"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// BuildTree nests nodes under their parents starting from the children of
// rootParentID (nil for the forest roots). Siblings are ordered by name.
func BuildTree(nodes []model.Category, rootParentID *string) []model.Category {
	byParent := make(map[string][]model.Category, len(nodes))
	for _, n := range nodes {
		byParent[parentKey(n.ParentID)] = append(byParent[parentKey(n.ParentID)], n)
	}

	var build func(key string, depth int) []model.Category
	build = func(key string, depth int) []model.Category {
		children := byParent[key]
		if len(children) == 0 || depth > len(nodes) {
			return nil
		}
		SortByName(children)
		out := make([]model.Category, len(children))
		for i, c := range children {
			c.Children = build(c.ID, depth+1)
			out[i] = c
		}
		return out
	}
	return build(parentKey(rootParentID), 0)
}

// Flatten walks a nested tree depth first, parents before children, and
// returns the nodes without their Children.
func Flatten(tree []model.Category) []model.Category {
	var out []model.Category
	var walk func(nodes []model.Category)
	walk = func(nodes []model.Category) {
		for _, n := range nodes {
			children := n.Children
			n.Children = nil
			out = append(out, n)
			walk(children)
		}
	}
	walk(tree)
	return out
}

// SortByName orders siblings by name, then id for a stable result.
func SortByName(nodes []model.Category) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Name != nodes[j].Name {
			return nodes[i].Name < nodes[j].Name
		}
		return nodes[i].ID < nodes[j].ID
	})
}

func parentKey(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}
