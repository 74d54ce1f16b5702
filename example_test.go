package memarena_test

import (
	"fmt"

	"github.com/pavanmanishd/memarena"
)

func ExampleArena_freeze() {
	a := memarena.New(0)
	a.Alloc(1024)
	fmt.Println(a.Size(), a.AllocatedSize())

	// Seal the generation: the 1024 bytes stay addressable but no longer
	// count as active.
	a.Freeze(0)
	fmt.Println(a.Size(), a.AllocatedSize())

	// Drop the sealed generation in one operation.
	a.Thaw()
	fmt.Println(a.Size(), a.AllocatedSize())
	// Output:
	// 1024 1024
	// 0 1024
	// 0 0
}

func ExampleArena_remnant() {
	a := memarena.New(0)

	// Reserve space, write speculatively, commit only what was kept.
	a.Require(64)
	buf := a.Remnant()
	n := copy(buf, "hello")
	committed := a.Alloc(n)

	fmt.Println(string(committed), a.Size())
	// Output: hello 5
}

func ExamplePool() {
	type order struct {
		ID   int
		Side string
	}

	a := memarena.New(0)
	p := memarena.NewPool[order](a)

	first := p.MakeFrom(order{ID: 1, Side: "buy"})
	p.Destroy(first)

	// The freshest destroyed slot is reused, rebuilt from scratch.
	second := p.Make()
	fmt.Println(second == first, second.ID, second.Side == "")
	// Output: true 0 true
}

func ExampleMake() {
	type header struct {
		Version int
		Flags   uint8
	}

	a := memarena.New(0)
	h := memarena.MakeFrom(a, header{Version: 2})
	fmt.Println(h.Version, h.Flags)
	// Output: 2 0
}
