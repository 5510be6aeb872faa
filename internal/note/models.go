package note

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is the persisted note record. Field names on the wire (bson and json)
// follow the original collection layout so existing data stays readable.
type Note struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title" validate:"required,min=1"`
	Content     string             `json:"content" bson:"content" validate:"required,min=1"`
	Tags        []string           `json:"tags" bson:"tags"`
	CreatedDate time.Time          `json:"created_date" bson:"created_date" validate:"required"`
	UpdatedDate time.Time          `json:"updated_date" bson:"updated_date" validate:"required,gtefield=CreatedDate"`
}

// New builds an unsaved note stamped with now as both creation and update time.
func New(title, content string, tags []string, now time.Time) *Note {
	return &Note{
		Title:       title,
		Content:     content,
		Tags:        tags,
		CreatedDate: now,
		UpdatedDate: now,
	}
}

// Normalize trims title, content and tags in place. Blank tags are dropped and
// a nil tag list becomes empty.
func (n *Note) Normalize() {
	n.Title = strings.TrimSpace(n.Title)
	n.Content = strings.TrimSpace(n.Content)
	n.Tags = CleanTags(n.Tags)
}

// Validate normalizes the note and checks every field required to insert it.
func (n *Note) Validate() error {
	n.Normalize()
	return toValidationError(validate.Struct(n))
}

// ValidateReplacement checks only the fields an update overwrites.
func (n *Note) ValidateReplacement() error {
	n.Normalize()
	return toValidationError(validate.StructPartial(n, "Title", "Content", "Tags", "UpdatedDate"))
}

// HasTag reports whether tag is already present (exact match).
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CleanTags trims every tag and drops blanks and repeats, keeping first-seen order.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names (title, created_date) instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " character(s) long"
	case "gtefield":
		return fe.Field() + " must not be earlier than created_date"
	}
	return fe.Field() + " failed the " + fe.Tag() + " check"
}
