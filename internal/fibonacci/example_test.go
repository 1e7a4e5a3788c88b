package fibonacci

import (
	"fmt"
)

func ExampleCompute() {
	fmt.Println(Compute(10, VariantLinear))
	fmt.Println(Compute(100, VariantDoubling))
	// Output:
	// 55
	// 354224848179261915075
}

func ExampleParseVariant() {
	v, err := ParseVariant("tail_recursive_1")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(v)
	// Output: doubling
}

func ExampleLastDigits() {
	digits, err := LastDigits(1000, 6)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(digits)
	// Output: 228875
}
