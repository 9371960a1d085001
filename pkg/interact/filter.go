package interact

import "slices"

// Filter is a categorical selection, typically driven by clicking bars.
// Selecting nothing means "no filter": every category passes.
type Filter struct {
	Source string

	all      []string
	selected map[string]bool
}

// NewFilter returns a filter over categories with nothing selected.
func NewFilter(source string, categories []string) *Filter {
	f := &Filter{Source: source, selected: map[string]bool{}}
	f.SetCategories(categories)
	return f
}

// SetCategories replaces the category list. Selected categories that are
// still present stay selected.
func (f *Filter) SetCategories(categories []string) {
	f.all = slices.Clone(categories)
	for c := range f.selected {
		if !slices.Contains(f.all, c) {
			delete(f.selected, c)
		}
	}
}

// Selected reports whether category is explicitly selected.
func (f *Filter) Selected(category string) bool { return f.selected[category] }

// Passes reports whether records of category pass the filter.
func (f *Filter) Passes(category string) bool {
	return len(f.selected) == 0 || f.selected[category]
}

// Toggle flips category and returns the resulting filter state. Unknown
// categories are ignored.
func (f *Filter) Toggle(category string) FilterChanged {
	if slices.Contains(f.all, category) {
		if f.selected[category] {
			delete(f.selected, category)
		} else {
			f.selected[category] = true
		}
	}
	return f.State()
}

// Reset clears the selection.
func (f *Filter) Reset() FilterChanged {
	clear(f.selected)
	return f.State()
}

// State returns the selected categories in category order, or nil when
// nothing is selected.
func (f *Filter) State() FilterChanged {
	ev := FilterChanged{Source: f.Source}
	for _, c := range f.all {
		if f.selected[c] {
			ev.Categories = append(ev.Categories, c)
		}
	}
	return ev
}
