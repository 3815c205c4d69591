package buddy

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/slog"
)

func Example() {
	options := DefaultOptions
	options.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := New(options)
	if err != nil {
		panic(err)
	}

	for _, res := range s.Run([]Process{
		Request(1, "A", 65),
		Request(2, "B", 30),
		Request(3, "C", 94),
		Request(4, "D", 34),
		Request(5, "E", 136),
		Release(4),
	}) {
		fmt.Println(res)
	}
	s.History().Render(os.Stdout)

	// Output:
	// Process A allocated memory of 128K from 0 to 127 with actual size of 65K
	// Process B allocated memory of 32K from 128 to 159 with actual size of 30K
	// Process C allocated memory of 128K from 256 to 383 with actual size of 94K
	// Process D allocated memory of 64K from 192 to 255 with actual size of 34K
	// Process E allocated memory of 256K from 512 to 767 with actual size of 136K
	// Process D has been deallocated from 192 to 255
	// 1111............................
	// 11112...........................
	// 11112...3333....................
	// 11112.443333....................
	// 11112.443333....55555555........
	// 11112...3333....55555555........
}

func ExampleSimulator_Release() {
	options := DefaultOptions
	options.Strategy = StrategyNextFit
	options.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	s, _ := New(options)
	s.Run([]Process{Request(1, "A", 65), Request(2, "B", 30)})

	fmt.Println(s.Release(2))
	fmt.Println(s.Release(2))
	fmt.Println(s.Stats().FreeUnits)

	// Output:
	// Process B has been deallocated from 128 to 159
	// Process 2 has no memory to deallocate
	// 896
}
