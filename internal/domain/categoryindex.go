package domain

// CategoryIndex is an in-memory forest built from the flat list of active
// categories. It answers descendant-name expansion and sibling lookups for
// search and recommendations. The index is request-lifetime and never
// persisted.
//
// Categories are referenced inconsistently across the system: the hierarchy
// links parent to child by slug, while products carry the display name. The
// index therefore keeps both a slug map and a name map instead of collapsing
// to a single key.
type CategoryIndex struct {
	bySlug   map[string]Category
	byName   map[string]Category
	children map[string][]Category // parent slug → child categories
}

// BuildCategoryIndex constructs an index from a flat category list. Inactive
// categories are dropped, which excludes their subtrees from expansion.
func BuildCategoryIndex(categories []Category) *CategoryIndex {
	idx := &CategoryIndex{
		bySlug:   make(map[string]Category, len(categories)),
		byName:   make(map[string]Category, len(categories)),
		children: make(map[string][]Category),
	}

	for _, c := range categories {
		if !c.IsActive {
			continue
		}
		idx.bySlug[c.Slug] = c
		idx.byName[c.Name] = c
		if c.ParentID != nil && *c.ParentID != "" {
			idx.children[*c.ParentID] = append(idx.children[*c.ParentID], c)
		}
	}

	return idx
}

// Resolve looks up a category by slug first, falling back to display name.
func (idx *CategoryIndex) Resolve(key string) (Category, bool) {
	if c, ok := idx.bySlug[key]; ok {
		return c, true
	}
	c, ok := idx.byName[key]
	return c, ok
}

// DescendantNames returns the display names of the category matching rootKey
// (by slug, then by name) and all of its transitive children, via a
// breadth-first walk. If rootKey matches no category the raw key is returned
// as a literal single-element list, so callers can still filter on the exact
// value.
func (idx *CategoryIndex) DescendantNames(rootKey string) []string {
	root, ok := idx.Resolve(rootKey)
	if !ok {
		return []string{rootKey}
	}

	names := []string{root.Name}
	visited := map[string]bool{root.Slug: true}
	queue := []string{root.Slug}

	for len(queue) > 0 {
		slug := queue[0]
		queue = queue[1:]

		for _, child := range idx.children[slug] {
			// The source data is assumed acyclic, but a malformed parent
			// chain must not loop the walk.
			if visited[child.Slug] {
				continue
			}
			visited[child.Slug] = true
			names = append(names, child.Name)
			queue = append(queue, child.Slug)
		}
	}

	return names
}

// SiblingNames returns the display names of categories that share the parent
// of the category matching key, excluding the category itself. Root categories
// and unknown keys have no siblings.
func (idx *CategoryIndex) SiblingNames(key string) []string {
	c, ok := idx.Resolve(key)
	if !ok || c.ParentID == nil || *c.ParentID == "" {
		return nil
	}

	var names []string
	for _, sibling := range idx.children[*c.ParentID] {
		if sibling.Slug == c.Slug {
			continue
		}
		names = append(names, sibling.Name)
	}
	return names
}

// Len reports the number of indexed (active) categories.
func (idx *CategoryIndex) Len() int {
	return len(idx.bySlug)
}
