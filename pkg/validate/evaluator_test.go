package validate

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/devhubhq/go-formkit/pkg/model"
)

func intPtr(n int) *int { return &n }

func TestField_Precedence(t *testing.T) {
	cases := []struct {
		name  string
		def   model.FieldDefinition
		value model.Value
		want  string
	}{
		{
			name:  "required empty",
			def:   model.FieldDefinition{Name: "title", Rule: model.Rule{Required: true}},
			value: model.String(""),
			want:  "title is required",
		},
		{
			name:  "required whitespace",
			def:   model.FieldDefinition{Name: "title", Rule: model.Rule{Required: true}},
			value: model.String("   "),
			want:  "title is required",
		},
		{
			name:  "required beats min length",
			def:   model.FieldDefinition{Name: "title", Rule: model.Rule{Required: true, MinLength: intPtr(3)}},
			value: model.String(""),
			want:  "title is required",
		},
		{
			name:  "optional empty skips all checks",
			def:   model.FieldDefinition{Name: "bio", Rule: model.Rule{MinLength: intPtr(10), MaxLength: intPtr(20), Pattern: `[a-z]+`}},
			value: model.String(""),
			want:  "",
		},
		{
			name:  "optional whitespace skips pattern",
			def:   model.FieldDefinition{Name: "bio", Rule: model.Rule{Pattern: `[a-z]+`}},
			value: model.String("  "),
			want:  "",
		},
		{
			name:  "min length",
			def:   model.FieldDefinition{Name: "title", Rule: model.Rule{Required: true, MinLength: intPtr(3), MaxLength: intPtr(100)}},
			value: model.String("ab"),
			want:  "title must be at least 3 characters",
		},
		{
			name:  "max length",
			def:   model.FieldDefinition{Name: "title", Rule: model.Rule{MaxLength: intPtr(5)}},
			value: model.String("abcdef"),
			want:  "title must be no more than 5 characters",
		},
		{
			name:  "min beats max",
			def:   model.FieldDefinition{Name: "title", Rule: model.Rule{MinLength: intPtr(10), MaxLength: intPtr(2)}},
			value: model.String("abc"),
			want:  "title must be at least 10 characters",
		},
		{
			name:  "pattern mismatch",
			def:   model.FieldDefinition{Name: "githubUrl", Rule: model.Rule{Pattern: `https?://(www\.)?github\.com/.*`}},
			value: model.String("ftp://x"),
			want:  "githubUrl format is invalid",
		},
		{
			name:  "pattern match",
			def:   model.FieldDefinition{Name: "githubUrl", Rule: model.Rule{Pattern: `https?://(www\.)?github\.com/.*`}},
			value: model.String("https://github.com/devhubhq/go-formkit"),
			want:  "",
		},
		{
			name:  "pattern must cover full value",
			def:   model.FieldDefinition{Name: "code", Rule: model.Rule{Pattern: `[a-z]+`}},
			value: model.String("abc123"),
			want:  "code format is invalid",
		},
		{
			name:  "label used in message",
			def:   model.FieldDefinition{Name: "title", Label: "Project title", Rule: model.Rule{Required: true}},
			value: model.String(""),
			want:  "Project title is required",
		},
		{
			name:  "override message",
			def:   model.FieldDefinition{Name: "title", Rule: model.Rule{Required: true, Message: "give it a name"}},
			value: model.String(""),
			want:  "give it a name",
		},
		{
			name:  "valid required value",
			def:   model.FieldDefinition{Name: "title", Rule: model.Rule{Required: true, MinLength: intPtr(3), MaxLength: intPtr(100)}},
			value: model.String("My Project"),
			want:  "",
		},
		{
			name:  "invalid pattern expression fails closed",
			def:   model.FieldDefinition{Name: "broken", Rule: model.Rule{Pattern: `((`}},
			value: model.String("anything"),
			want:  "broken format is invalid",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Field(tc.def, tc.value); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestField_ListValues(t *testing.T) {
	def := model.FieldDefinition{
		Name: "technologies",
		Kind: model.KindMultiSelect,
		Rule: model.Rule{Required: true},
	}

	if got := Field(def, model.List()); got != "technologies is required" {
		t.Fatalf("empty list: want required error, got %q", got)
	}
	if got := Field(def, model.List("React")); got != "" {
		t.Fatalf("non-empty list: want valid, got %q", got)
	}

	// Length and pattern checks run against the comma-joined form.
	def.Rule = model.Rule{MaxLength: intPtr(8)}
	if got := Field(def, model.List("Go", "React")); got != "technologies must be no more than 8 characters" {
		t.Fatalf("joined length: got %q", got)
	}
}

func TestField_CustomPredicate(t *testing.T) {
	called := 0
	def := model.FieldDefinition{
		Name: "username",
		Rule: model.Rule{
			Message: "override is ignored for custom",
			Custom: func(v model.Value) string {
				called++
				if strings.Contains(v.Text(), " ") {
					return "username must not contain spaces"
				}
				return ""
			},
		},
	}

	if got := Field(def, model.String("a b")); got != "username must not contain spaces" {
		t.Fatalf("custom message not returned verbatim: %q", got)
	}
	if got := Field(def, model.String("ab")); got != "" {
		t.Fatalf("custom pass: got %q", got)
	}

	// Custom never fires on empty optional values.
	called = 0
	if got := Field(def, model.String("")); got != "" || called != 0 {
		t.Fatalf("custom fired on empty optional value (calls=%d, msg=%q)", called, got)
	}
}

func TestField_Idempotent(t *testing.T) {
	def := model.FieldDefinition{Name: "title", Rule: model.Rule{Required: true, MinLength: intPtr(3)}}
	value := model.String("ab")

	first := Field(def, value)
	second := Field(def, value)
	if first != second {
		t.Fatalf("evaluation not idempotent: %q vs %q", first, second)
	}
}

func TestForm_OmitsValidFields(t *testing.T) {
	fields := []model.FieldDefinition{
		{Name: "title", Rule: model.Rule{Required: true}},
		{Name: "summary", Rule: model.Rule{MaxLength: intPtr(10)}},
	}
	values := model.Values{
		"summary": model.String("short"),
		"ignored": model.String("no definition, never validated"),
	}

	got := Form(fields, values)
	want := map[string]string{"title": "title is required"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("form evaluation mismatch (-want +got):\n%s", diff)
	}
}
