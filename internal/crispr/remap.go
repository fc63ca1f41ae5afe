package crispr

import "strconv"

// Category is a kind of identifier that gets renumbered.
type Category int

const (
	CategoryRepeat Category = iota
	CategorySpacer
	CategoryFlanker
	CategoryContig
	CategoryGroup

	numCategories
)

// String is for logging and file names.
func (c Category) String() string {
	switch c {
	case CategoryRepeat:
		return "repeats"
	case CategorySpacer:
		return "spacers"
	case CategoryFlanker:
		return "flankers"
	case CategoryContig:
		return "contigs"
	case CategoryGroup:
		return "groups"
	}
	return "unknown"
}

// idAttr is the attribute carrying an id of this category.
func (c Category) idAttr() string {
	switch c {
	case CategoryRepeat:
		return attrRepeatID
	case CategorySpacer:
		return attrSpacerID
	case CategoryFlanker:
		return attrFlankerID
	case CategoryContig:
		return attrContigID
	}
	return attrGroupID
}

// Prefixes are prepended to the counter of each category to make a new id.
type Prefixes struct {
	Group   string `mapstructure:"group"`
	Repeat  string `mapstructure:"repeat"`
	Spacer  string `mapstructure:"spacer"`
	Flanker string `mapstructure:"flanker"`
	Contig  string `mapstructure:"contig"`
}

// DefaultPrefixes make ids like G1, Dr1, Sp1, Fl1 and C1.
var DefaultPrefixes = Prefixes{
	Group:   "G",
	Repeat:  "Dr",
	Spacer:  "Sp",
	Flanker: "Fl",
	Contig:  "C",
}

// For returns the prefix of a category.
func (p Prefixes) For(c Category) string {
	switch c {
	case CategoryRepeat:
		return p.Repeat
	case CategorySpacer:
		return p.Spacer
	case CategoryFlanker:
		return p.Flanker
	case CategoryContig:
		return p.Contig
	}
	return p.Group
}

// Remapper hands out sequential ids per category and remembers what each old
// id was renamed to so back-references can be rewritten to match.
//
// Repeat, spacer, flanker and contig state is scoped to one group (see Reset).
// The group counter runs for the Remapper's whole life so group ids stay
// unique across a document, or across every document of a merge.
type Remapper struct {
	prefixes Prefixes

	// next value of each category's counter, starting at 1
	next [numCategories]int

	// old id to new id for each category
	seen [numCategories]map[string]string
}

// NewRemapper returns a Remapper with every counter at 1.
func NewRemapper(prefixes Prefixes) *Remapper {
	r := &Remapper{prefixes: prefixes}
	r.next[CategoryGroup] = 1
	r.seen[CategoryGroup] = make(map[string]string)
	r.Reset()
	return r
}

// Reset the repeat, spacer, flanker and contig counters and mappings. Called
// at the start of each group.
func (r *Remapper) Reset() {
	for c := CategoryRepeat; c < CategoryGroup; c++ {
		r.next[c] = 1
		r.seen[c] = make(map[string]string)
	}
}

// Next returns the category's next id and increments its counter.
func (r *Remapper) Next(c Category) string {
	id := r.prefixes.For(c) + strconv.Itoa(r.next[c])
	r.next[c]++
	return id
}

// Remember that oldID was renamed newID.
func (r *Remapper) Remember(c Category, oldID, newID string) {
	r.seen[c][oldID] = newID
}

// Assign returns the next id of the category and remembers oldID as its source.
func (r *Remapper) Assign(c Category, oldID string) string {
	newID := r.Next(c)
	r.Remember(c, oldID, newID)
	return newID
}

// Resolve returns the id that oldID was renamed to. It's a DanglingReference
// error if oldID was never remembered.
func (r *Remapper) Resolve(c Category, oldID string) (string, error) {
	if newID, ok := r.seen[c][oldID]; ok {
		return newID, nil
	}
	return "", newError(DanglingReference, "", "no %s with id %q to link to", c, oldID)
}
