// Copyright 2024 Factorial GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fnv64

import (
	"fmt"
	"testing"
)

func TestEmptyInputYieldsOffsetBasis(t *testing.T) {
	if got := Sum(nil); got != Init {
		t.Errorf("Sum(nil) = %#x, want %#x", got, Init)
	}
	if got := Sum([]byte{}); got != Init {
		t.Errorf("Sum([]byte{}) = %#x, want %#x", got, Init)
	}
	if got := SumString(""); got != Init {
		t.Errorf("SumString(\"\") = %#x, want %#x", got, Init)
	}
	if got := fmt.Sprintf("%x", SumString("")); got != "cbf29ce484222325" {
		t.Errorf("hex of empty digest = %q, want %q", got, "cbf29ce484222325")
	}
}

// The www.example vector matches the fnv164 reference tool:
//
//	./fnv164 -s www.example
//	0x24d4dc434ba8a1da
func TestKnownVectors(t *testing.T) {
	vectors := []struct {
		in   string
		want uint64
	}{
		{"www.example", 0x24d4dc434ba8a1da},
		{"www.example/", 0x3e5420598f8b0541},
		{"www.examplehello/world", 0x627da9c298545b23},
	}
	for _, v := range vectors {
		if got := SumString(v.in); got != v.want {
			t.Errorf("SumString(%q) = %#x, want %#x", v.in, got, v.want)
		}
		if got := Sum([]byte(v.in)); got != v.want {
			t.Errorf("Sum(%q) = %#x, want %#x", v.in, got, v.want)
		}
	}
}

func TestContinueMatchesSinglePass(t *testing.T) {
	pairs := []struct {
		head, tail string
	}{
		{"www.example", "hello/world"},
		{"www.example", "/"},
		{"", ""},
		{"", "only-tail"},
		{"only-head", ""},
		{"a", "bc"},
		{"ab", "c"},
	}
	for _, p := range pairs {
		single := SumString(p.head + p.tail)
		continued := ContinueString(SumString(p.head), p.tail)
		if continued != single {
			t.Errorf("ContinueString(SumString(%q), %q) = %#x, want single pass %#x",
				p.head, p.tail, continued, single)
		}
		bcontinued := Continue(Sum([]byte(p.head)), []byte(p.tail))
		if bcontinued != single {
			t.Errorf("Continue(Sum(%q), %q) = %#x, want single pass %#x",
				p.head, p.tail, bcontinued, single)
		}
	}
}

func TestZeroLengthContinueIsIdentity(t *testing.T) {
	d := SumString("www.example")
	if got := Continue(d, nil); got != d {
		t.Errorf("Continue(d, nil) = %#x, want %#x", got, d)
	}
	if got := ContinueString(d, ""); got != d {
		t.Errorf("ContinueString(d, \"\") = %#x, want %#x", got, d)
	}
}

func TestDeterminism(t *testing.T) {
	inputs := []string{"", "/", "www.example/hello/world", "example.org/assets/app.js"}
	for _, in := range inputs {
		if a, b := SumString(in), SumString(in); a != b {
			t.Errorf("SumString(%q) not deterministic: %#x != %#x", in, a, b)
		}
	}
}
