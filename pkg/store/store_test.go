package store

import "testing"

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value Value
	}{
		{"string", String("hello")},
		{"number", Number(42.5)},
		{"bool", Bool(true)},
		{"null", Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Set("k", tt.value)
			got, ok := s.Get("k")
			if !ok {
				t.Fatal("Get returned ok=false after Set")
			}
			if got != tt.value {
				t.Errorf("Get = %+v, want %+v", got, tt.value)
			}
		})
	}
}

func TestGetAbsent(t *testing.T) {
	s := New()
	if _, ok := s.Get("missing"); ok {
		t.Error("Get on absent key returned ok=true")
	}
	if got := s.GetString("missing"); got != "" {
		t.Errorf("GetString on absent key = %q, want empty", got)
	}
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"string", String("abc"), "abc"},
		{"integral number has no decimals", Number(84), "84"},
		{"fractional number", Number(1.5), "1.5"},
		{"bool", Bool(false), "false"},
		{"null renders empty", Null(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Set("k", tt.value)
			if got := s.GetString("k"); got != tt.want {
				t.Errorf("GetString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOverwrite(t *testing.T) {
	s := New()
	s.Set("k", Number(1))
	s.Set("k", String("two"))
	got, _ := s.Get("k")
	if got.Kind() != KindString || got.AsString() != "two" {
		t.Errorf("after overwrite got %+v, want string \"two\"", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestKeys(t *testing.T) {
	s := New()
	s.SetString("a", "1")
	s.SetString("b", "2")
	keys := s.Keys()
	if len(keys) != 2 {
		t.Fatalf("Keys returned %d entries, want 2", len(keys))
	}
	seen := map[string]bool{}
	for _, k := range keys {
		seen[k] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Errorf("Keys = %v, want a and b", keys)
	}
}
