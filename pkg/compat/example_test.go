package compat_test

import (
	"fmt"

	"github.com/matzehuels/versionforge/pkg/compat"
)

func ExampleMatrix_Verify() {
	m := compat.New()
	m.RegisterCompatibility("core", "1.0.0", "api", "2.0.0")

	fmt.Println(m.Verify("core", "1.0.0", "api", "2.0.0"))
	fmt.Println(m.Verify("api", "2.0.0", "core", "1.0.0"))
	fmt.Println(m.Verify("core", "1.0.0", "api", "2.4.0"))
	fmt.Println(m.Verify("core", "1.0.0", "api", "1.9.0"))
	// Output:
	// true
	// true
	// true
	// false
}

func ExampleMatrix_CompatibleVersions() {
	m := compat.New()
	m.RegisterCompatibility("core", "1.0.0", "api", "2.0.0")
	m.RegisterCompatibility("core", "1.0.0", "api", "2.1.0")

	fmt.Println(m.CompatibleVersions("core", "1.0.0")["api"])
	// Output:
	// [2.0.0 2.1.0]
}
