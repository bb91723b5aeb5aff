package version_test

import (
	"fmt"

	"github.com/matzehuels/versionforge/pkg/version"
)

func ExampleParse() {
	v := version.Parse("v1.4.2-rc1")
	fmt.Println(v.Valid(), v.Major, v.Minor, v.Patch, v.Prerelease)

	bad := version.Parse("1.4")
	fmt.Println(bad.Valid(), bad)
	// Output:
	// true 1 4 2 rc1
	// false 1.4
}

func ExampleCalculateDelta() {
	d := version.CalculateDelta("1.0.0", "1.2.3")
	fmt.Println(d.Describe())
	fmt.Println("upgrade:", d.IsUpgrade)
	// Output:
	// +2 minor, +3 patch
	// upgrade: true
}

func ExampleIsCompatible() {
	fmt.Println(version.IsCompatible("2.1.0", "2.0.0"))
	fmt.Println(version.IsCompatible("1.0.0", "1.0.0-alpha"))
	fmt.Println(version.IsCompatible("not-a-version", "0.0.0"))
	// Output:
	// true
	// true
	// false
}
