package validate

import (
	"sync"

	playground "github.com/go-playground/validator/v10"

	"github.com/devhubhq/go-formkit/pkg/model"
)

var (
	formatOnce     sync.Once
	formatInstance *playground.Validate
)

func formatValidator() *playground.Validate {
	formatOnce.Do(func() {
		formatInstance = playground.New(playground.WithRequiredStructEnabled())
	})
	return formatInstance
}

// Format adapts a go-playground/validator tag (for example "email" or
// "http_url") into a custom predicate suitable for Rule.Custom. The message is
// returned verbatim when the tag fails. List values are checked item by item
// so a single malformed entry fails the whole field.
func Format(tag, message string) func(model.Value) string {
	return func(value model.Value) string {
		v := formatValidator()
		if value.IsList() {
			for _, item := range value.Items() {
				if err := v.Var(item, tag); err != nil {
					return message
				}
			}
			return ""
		}
		if err := v.Var(value.Text(), tag); err != nil {
			return message
		}
		return ""
	}
}
