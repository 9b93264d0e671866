package form

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/devhubhq/go-formkit/pkg/model"
)

func fillValid(f *Form) {
	f.SetValue("title", model.String("My Project"))
	f.SetValue("technologies", model.List("go"))
}

func TestSubmit_InvalidBlocksCallback(t *testing.T) {
	f := New(testFields())
	f.SetValue("title", model.String("ok title"))
	// technologies left empty: required error expected.

	calls := 0
	err := f.Submit(context.Background(), func(context.Context, model.Values) error {
		calls++
		return nil
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want *ValidationError, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("callback invoked despite validation errors (%d calls)", calls)
	}
	if verr.Fields["technologies"] != "technologies is required" {
		t.Fatalf("unexpected fields: %v", verr.Fields)
	}
	if f.Submitting() {
		t.Fatalf("submitting flag set after blocked submit")
	}

	// A failed submit marks every field touched so all errors become visible,
	// while valid fields stay clean even though touched.
	if msg, ok := f.VisibleError("technologies"); !ok || msg == "" {
		t.Fatalf("blocked submit did not surface error")
	}
	if !f.Touched("summary") {
		t.Fatalf("submit did not touch every field")
	}
	if _, ok := f.VisibleError("title"); ok {
		t.Fatalf("valid field shows an error")
	}
}

func TestSubmit_ValidCallsExactlyOnceWithSchemaNames(t *testing.T) {
	f := New(testFields())
	fillValid(f)
	f.SetValue("extra", model.String("passthrough, not submitted"))

	calls := 0
	var got []string
	err := f.Submit(context.Background(), func(_ context.Context, values model.Values) error {
		calls++
		for name := range values {
			got = append(got, name)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if calls != 1 {
		t.Fatalf("want exactly one invocation, got %d", calls)
	}

	sort.Strings(got)
	want := []string{"summary", "technologies", "title"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload names mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_CallbackErrorReturnedVerbatim(t *testing.T) {
	f := New(testFields())
	fillValid(f)

	boom := errors.New("network down")
	err := f.Submit(context.Background(), func(context.Context, model.Values) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("callback error not propagated: %v", err)
	}
	if f.Submitting() {
		t.Fatalf("submitting flag not released after failure")
	}

	// Entered values survive a failed submission so the user can retry.
	if v, _ := f.Value("title"); v.Text() != "My Project" {
		t.Fatalf("values cleared on failure: %q", v.Text())
	}
}

func TestSubmit_FlagReleasedOnPanic(t *testing.T) {
	f := New(testFields())
	fillValid(f)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic to propagate")
			}
		}()
		_ = f.Submit(context.Background(), func(context.Context, model.Values) error {
			panic("callback exploded")
		})
	}()

	if f.Submitting() {
		t.Fatalf("submitting flag not released after panic")
	}
}

func TestSubmit_SecondAttemptWhileInFlight(t *testing.T) {
	f := New(testFields())
	fillValid(f)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- f.Submit(context.Background(), func(context.Context, model.Values) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	if !f.Submitting() {
		t.Fatalf("submitting flag not set while callback runs")
	}
	if err := f.Submit(context.Background(), func(context.Context, model.Values) error { return nil }); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("want ErrSubmitInFlight, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if f.Submitting() {
		t.Fatalf("submitting flag not released after resolve")
	}
}

func TestSubmit_NoAutoResetByDefault(t *testing.T) {
	f := New(testFields())
	fillValid(f)

	if err := f.Submit(context.Background(), func(context.Context, model.Values) error { return nil }); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if v, _ := f.Value("title"); v.Text() != "My Project" {
		t.Fatalf("values reset without opt-in")
	}
}

func TestSubmit_AutoResetOnSuccessOnly(t *testing.T) {
	f := New(testFields(),
		WithInitialValues(model.Values{"title": model.String("Seed")}),
		WithAutoReset(true),
	)
	fillValid(f)

	boom := errors.New("rejected")
	if err := f.Submit(context.Background(), func(context.Context, model.Values) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := f.Value("title"); v.Text() != "My Project" {
		t.Fatalf("auto reset fired on failure")
	}

	fillValid(f)
	if err := f.Submit(context.Background(), func(context.Context, model.Values) error { return nil }); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if v, _ := f.Value("title"); v.Text() != "Seed" {
		t.Fatalf("auto reset did not restore baseline: %q", v.Text())
	}
}

func TestSubmit_NilFunc(t *testing.T) {
	f := New(testFields())
	if err := f.Submit(context.Background(), nil); !errors.Is(err, ErrNilSubmit) {
		t.Fatalf("want ErrNilSubmit, got %v", err)
	}
}
