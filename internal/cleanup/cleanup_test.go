package cleanup

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRunAll_ReverseOrder(t *testing.T) {
	var order []int
	for i := 1; i <= 3; i++ {
		Register(func() error {
			order = append(order, i)
			return nil
		})
	}
	Register(nil)

	if err := RunAll(); err != nil {
		t.Fatalf("RunAll() = %v, want nil", err)
	}
	if diff := cmp.Diff([]int{3, 2, 1}, order); diff != "" {
		t.Fatalf("hook order mismatch (-want +got):\n%s", diff)
	}
	if err := RunAll(); err != nil {
		t.Fatalf("second RunAll() = %v, want nil", err)
	}
	if len(order) != 3 {
		t.Fatalf("hooks ran again: %v", order)
	}
}

func TestRunAll_JoinsErrors(t *testing.T) {
	errSave := errors.New("save failed")
	errClose := errors.New("close failed")
	ran := false
	Register(func() error { return errClose })
	Register(func() error { ran = true; return nil })
	Register(func() error { return errSave })

	err := RunAll()
	if !errors.Is(err, errSave) || !errors.Is(err, errClose) {
		t.Fatalf("RunAll() = %v, want both errors", err)
	}
	if !ran {
		t.Fatalf("hook after a failing hook did not run")
	}
}
