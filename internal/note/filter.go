package note

import (
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FilterKind selects which field a Filter matches on.
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterByID
	FilterByTag
	FilterByTitle
)

func (k FilterKind) String() string {
	switch k {
	case FilterByID:
		return "id"
	case FilterByTag:
		return "tag"
	case FilterByTitle:
		return "title"
	}
	return "all"
}

// Filter is a lookup predicate built from a single caller-supplied value.
// Every store runs its queries through one Filter so the matching rules are
// the same whether they are evaluated by MongoDB or in process.
type Filter struct {
	Kind  FilterKind
	Value string
}

func All() Filter                 { return Filter{Kind: FilterAll} }
func ByID(id string) Filter       { return Filter{Kind: FilterByID, Value: id} }
func ByTag(tag string) Filter     { return Filter{Kind: FilterByTag, Value: tag} }
func ByTitle(title string) Filter { return Filter{Kind: FilterByTitle, Value: title} }

// Validate rejects a blank value, an id that is not an ObjectID, or a tag /
// title pattern that does not compile.
func (f Filter) Validate() error {
	if f.Kind == FilterAll {
		return nil
	}
	if strings.TrimSpace(f.Value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidArgument, f.Kind)
	}
	switch f.Kind {
	case FilterByID:
		if _, err := primitive.ObjectIDFromHex(f.Value); err != nil {
			return fmt.Errorf("%w: %q is not a valid note id", ErrInvalidArgument, f.Value)
		}
	case FilterByTag, FilterByTitle:
		if _, err := f.pattern(); err != nil {
			return fmt.Errorf("%w: %s pattern %q: %v", ErrInvalidArgument, f.Kind, f.Value, err)
		}
	}
	return nil
}

// ObjectID returns the id of a FilterByID filter.
func (f Filter) ObjectID() (primitive.ObjectID, error) {
	if err := f.Validate(); err != nil {
		return primitive.NilObjectID, err
	}
	if f.Kind != FilterByID {
		return primitive.NilObjectID, fmt.Errorf("%w: %s filter has no id", ErrInvalidArgument, f.Kind)
	}
	return primitive.ObjectIDFromHex(f.Value)
}

// BSON renders the filter as a MongoDB query document. Tag and title lookups
// are case-insensitive regular expression (substring) matches.
func (f Filter) BSON() (bson.M, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	switch f.Kind {
	case FilterByID:
		oid, _ := primitive.ObjectIDFromHex(f.Value)
		return bson.M{"_id": oid}, nil
	case FilterByTag:
		return bson.M{"tags": bson.M{"$regex": f.Value, "$options": "i"}}, nil
	case FilterByTitle:
		return bson.M{"title": bson.M{"$regex": f.Value, "$options": "i"}}, nil
	}
	return bson.M{}, nil
}

// Matcher compiles the filter into an in-process predicate with the same
// semantics as BSON.
func (f Filter) Matcher() (func(*Note) bool, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	switch f.Kind {
	case FilterByID:
		oid, _ := primitive.ObjectIDFromHex(f.Value)
		return func(n *Note) bool { return n.ID == oid }, nil
	case FilterByTag:
		re, _ := f.pattern()
		return func(n *Note) bool {
			for _, t := range n.Tags {
				if re.MatchString(t) {
					return true
				}
			}
			return false
		}, nil
	case FilterByTitle:
		re, _ := f.pattern()
		return func(n *Note) bool { return re.MatchString(n.Title) }, nil
	}
	return func(*Note) bool { return true }, nil
}

func (f Filter) pattern() (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + f.Value)
}
