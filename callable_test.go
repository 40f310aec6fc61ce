package covenant

import (
	"errors"
	"testing"
)

func TestIsCallable(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{name: "nil", value: nil, want: false},
		{name: "int", value: 42, want: false},
		{name: "plain func", value: func() {}, want: true},
		{name: "typed func", value: func(x int) int { return x }, want: true},
		{name: "canonical callable", value: Callable(func(args ...interface{}) (interface{}, error) { return nil, nil }), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCallable(tt.value); got != tt.want {
				t.Errorf("IsCallable(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestInvoke(t *testing.T) {
	t.Run("typed func with result", func(t *testing.T) {
		out, err := Invoke(func(x, y int) int { return x + y }, 1, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != 3 {
			t.Errorf("got %v, want 3", out)
		}
	})

	t.Run("variadic func", func(t *testing.T) {
		out, err := Invoke(func(ns ...int) int {
			total := 0
			for _, n := range ns {
				total += n
			}
			return total
		}, 1, 2, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != 6 {
			t.Errorf("got %v, want 6", out)
		}
	})

	t.Run("variadic func with no arguments", func(t *testing.T) {
		out, err := Invoke(func(ns ...int) int { return len(ns) })
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != 0 {
			t.Errorf("got %v, want 0", out)
		}
	})

	t.Run("func returning error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Invoke(func() (int, error) { return 0, boom })
		if !errors.Is(err, boom) {
			t.Errorf("got %v, want %v", err, boom)
		}
	})

	t.Run("callable passes through", func(t *testing.T) {
		f := Callable(func(args ...interface{}) (interface{}, error) { return len(args), nil })
		out, err := Invoke(f, "a", "b")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != 2 {
			t.Errorf("got %v, want 2", out)
		}
	})

	t.Run("non-callable", func(t *testing.T) {
		if _, err := Invoke(42); err == nil {
			t.Error("expected error invoking a non-callable")
		}
	})

	t.Run("arity mismatch", func(t *testing.T) {
		if _, err := Invoke(func(x int) int { return x }, 1, 2); err == nil {
			t.Error("expected error on wrong argument count")
		}
	})

	t.Run("nil for reference parameter", func(t *testing.T) {
		out, err := Invoke(func(m map[string]int) bool { return m == nil }, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != true {
			t.Errorf("got %v, want true", out)
		}
	})
}

func TestAbsent(t *testing.T) {
	if !IsAbsent(Absent) {
		t.Error("Absent must satisfy IsAbsent")
	}
	if IsAbsent(nil) {
		t.Error("nil is not the absent sentinel")
	}
	if IsAbsent(0) {
		t.Error("zero is not the absent sentinel")
	}
}

func TestPolicyNormalize(t *testing.T) {
	p := Policy{}.Normalize()
	if p.OnSuccess == nil || p.OnFailure == nil {
		t.Fatal("normalized policy must have both callbacks")
	}
	if !p.OnSuccess(Event{}) {
		t.Error("default OnSuccess must continue")
	}
	err := p.OnFailure(Event{Value: 1})
	var v *Violation
	if !errors.As(err, &v) {
		t.Fatalf("default OnFailure must produce a violation, got %v", err)
	}
	if v.ID == "" {
		t.Error("violations must carry an ID")
	}
}
