package main

import "testing"

func TestBlockUnbalanced(t *testing.T) {
	cases := []struct {
		chunk string
		want  bool
	}{
		{"1 + 1", false},
		{"function f()", true},
		{"function f() end", false},
		{"if a then", true},
		{"if a then print(a) end", false},
		{"if a then\nelseif b then\nend", false},
		{"repeat", true},
		{"repeat\nuntil true", false},
		{`local s = "end"`, false},
		{`local s = "function"`, false},
	}
	for _, c := range cases {
		if got := blockUnbalanced(c.chunk); got != c.want {
			t.Errorf("blockUnbalanced(%q) = %v, want %v", c.chunk, got, c.want)
		}
	}
}
