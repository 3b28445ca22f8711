package collector

import (
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/oukeidos/slideproj/internal/slideshow"
)

// Field is a metadata field slides can be sorted by.
type Field int

const (
	FieldInGroup Field = iota
	FieldTimestamp
	FieldCaption
)

var fieldNames = map[Field]string{
	FieldInGroup:   "in_group",
	FieldTimestamp: "timestamp",
	FieldCaption:   "caption",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// DefaultSortFields groups slides by directory, then orders them in time.
var DefaultSortFields = []Field{FieldInGroup, FieldTimestamp}

// ParseField parses a field name such as "timestamp".
func ParseField(s string) (Field, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range fieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown sort field %q (want in_group, timestamp or caption)", s)
}

// ParseFields parses a list of field names. Each element may itself be a
// comma separated list.
func ParseFields(values []string) ([]Field, error) {
	var fields []Field
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			f, err := ParseField(part)
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
	}
	return fields, nil
}

// MetadataProvider describes source files.
type MetadataProvider interface {
	Metadata(f slideshow.SourceFile) slideshow.Metadata
}

// CompareFunc orders two strings, returning a negative, zero or positive
// number.
type CompareFunc func(a, b string) int

// LocaleCompare returns a CompareFunc collating strings by the rules of tag.
// The result must not be used concurrently.
func LocaleCompare(tag language.Tag) CompareFunc {
	c := collate.New(tag, collate.Numeric)
	return c.CompareString
}

// Sort orders list by fields, compared left to right. Strings are compared
// with cmp, or by code point when cmp is nil. Slides equal in every field
// keep their scan order.
func Sort(list *slideshow.FileList, fields []Field, md MetadataProvider, cmp CompareFunc) {
	if len(fields) == 0 {
		return
	}
	if cmp == nil {
		cmp = strings.Compare
	}
	list.Sort(func(a, b slideshow.SourceFile) bool {
		ma, mb := md.Metadata(a), md.Metadata(b)
		for _, f := range fields {
			if c := compareField(f, ma, mb, cmp); c != 0 {
				return c < 0
			}
		}
		return false
	})
}

func compareField(f Field, a, b slideshow.Metadata, cmp CompareFunc) int {
	switch f {
	case FieldTimestamp:
		return a.Timestamp.Compare(b.Timestamp)
	case FieldInGroup:
		return cmp(a.Group, b.Group)
	case FieldCaption:
		return cmp(a.Caption, b.Caption)
	default:
		return 0
	}
}
