package pipeline_test

import (
	"fmt"
	"strings"

	"github.com/dcshock/plumb/pipeline"
)

// Example: simulate `ls` | `grep pattern` | `wc -l`.
// The source lists fake files, the transforms filter and count them.
func Example() {
	ls := pipeline.LiftSource(func() []string {
		return []string{"main.go", "pipeline.go", "doc.go", "README.md", "go.sum", "go.mod"}
	})
	grep := func(pattern string) pipeline.Transform[[]string, []string] {
		return pipeline.FilterSlice(func(line string) bool { return strings.Contains(line, pattern) })
	}
	count := pipeline.Lift(func(lines []string) int { return len(lines) })

	p := pipeline.ThenFrom(pipeline.ThenFrom(ls.Pipeline(), grep(".go")), count)
	fmt.Println(p.Run())
	// Output: Produced(3)
}

func ExampleJoin() {
	inc := pipeline.Lift(func(n int) int { return n + 1 }).Pipeline()
	twice := pipeline.Join(inc, inc)
	fmt.Println(twice.Run(1), inc.Run(1))
	// Output: Produced(3) Produced(2)
}

func ExampleBiJoin() {
	double := pipeline.LiftBi(func(n int) int { return n * 2 }, func(n int) int { return n / 2 })
	incDec := pipeline.LiftBi(func(n int) int { return n + 1 }, func(n int) int { return n - 1 })
	p := pipeline.BiJoin(double.Pipeline(), incDec.Pipeline())
	fmt.Println(p.Run(5), p.RunBackward(11))
	// Output: Produced(11) Produced(5)
}

func ExampleFilter() {
	positive := pipeline.Filter(func(n int) bool { return n > 0 }).Pipeline()
	var printed []int
	p := positive.To(pipeline.LiftSink(func(n int) { printed = append(printed, n) }))
	fmt.Println(p.Run(-3))
	fmt.Println(p.Run(3))
	fmt.Println(printed)
	// Output:
	// Absent
	// Produced({})
	// [3]
}
