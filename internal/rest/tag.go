package rest

import "strings"

// Tag labels a cached query result. A coarse tag (empty ID) stands for every
// resource of a kind; a fine tag names one resource instance.
type Tag struct {
	Type string
	ID   string
}

// Coarse returns the tag for every resource of the given kind.
func Coarse(typ string) Tag { return Tag{Type: typ} }

// Fine returns the tag for a single resource instance.
func Fine(typ, id string) Tag { return Tag{Type: typ, ID: id} }

// IsCoarse reports whether the tag covers a whole resource kind.
func (t Tag) IsCoarse() bool { return t.ID == "" }

func (t Tag) String() string {
	if t.IsCoarse() {
		return t.Type
	}
	return t.Type + ":" + t.ID
}

// Invalidates reports whether invalidating t makes an entry that provides p stale.
// A coarse tag reaches every tag of its type; a fine tag reaches only its twin.
func (t Tag) Invalidates(p Tag) bool {
	if t.Type != p.Type {
		return false
	}
	return t.IsCoarse() || t.ID == p.ID
}

// Tags is an unordered set of tags.
type Tags []Tag

// Invalidates reports whether any tag in ts invalidates any tag in provided.
func (ts Tags) Invalidates(provided Tags) bool {
	for _, t := range ts {
		for _, p := range provided {
			if t.Invalidates(p) {
				return true
			}
		}
	}
	return false
}

// Contains reports whether ts holds exactly t.
func (ts Tags) Contains(t Tag) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}

func (ts Tags) String() string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// TagFunc derives the tag set of an endpoint from its argument.
type TagFunc func(arg Arg) Tags

// Static returns a TagFunc that ignores its argument.
func Static(tags ...Tag) TagFunc {
	return func(Arg) Tags { return append(Tags(nil), tags...) }
}

// WithID returns a TagFunc yielding the fine tag {typ, arg.ID} plus the given tags.
func WithID(typ string, tags ...Tag) TagFunc {
	return func(arg Arg) Tags {
		out := Tags{Fine(typ, arg.ID)}
		return append(out, tags...)
	}
}
