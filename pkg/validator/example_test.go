package validator_test

import (
	"fmt"

	"github.com/matzehuels/versionforge/pkg/component"
	"github.com/matzehuels/versionforge/pkg/validator"
)

func ExampleValidator_Validate() {
	v := validator.New()
	v.RegisterComponent("api", component.Info{CurrentVersion: "2.0.0", MinimumVersion: "1.5.0"})
	v.RegisterComponent("core", component.New("1.4.0"))
	v.RegisterDependency("api", "core")

	res := v.Validate()
	fmt.Println(res.Valid)
	for _, msg := range res.Errors() {
		fmt.Println(msg)
	}
	// Output:
	// false
	// Component 'api' v2.0.0 is incompatible with its dependency 'core' v1.4.0 (requires ≥ 1.5.0)
}

func ExampleValidator_UpgradePlan() {
	v := validator.New()
	v.RegisterComponent("ui", component.New("1.0.0"))
	v.RegisterComponent("api", component.New("1.0.0"))
	v.RegisterComponent("core", component.New("1.0.0"))
	v.RegisterDependency("ui", "api")
	v.RegisterDependency("api", "core")

	plan, err := v.UpgradePlan(map[string]string{"ui": "2.0.0", "api": "1.3.0", "core": "1.1.0"})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(plan)
	// Output:
	// core@1.1.0 -> api@1.3.0 -> ui@2.0.0
}
