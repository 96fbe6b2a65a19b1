package scopekit_test

import (
	"fmt"

	"github.com/scopekit/scopekit"
)

type sessionKey struct{}

func (sessionKey) String() string { return "session" }

type profileKey struct{}

func (profileKey) String() string { return "profile" }

func (profileKey) Parent() scopekit.Key { return sessionKey{} }

type dashboardKey struct{}

func (dashboardKey) String() string { return "dashboard" }

func (dashboardKey) Keys() []scopekit.Key {
	return []scopekit.Key{chartKey{}, tableKey{}}
}

type chartKey struct{}

func (chartKey) String() string { return "chart" }

type tableKey struct{}

func (tableKey) String() string { return "table" }

func ExampleConfigure() {
	greetings := scopekit.NewFactory(func(builder *scopekit.Builder) error {
		builder.Put("greeting", fmt.Sprintf("hello from %v", builder.Key()))
		return nil
	}, nil)

	manager := scopekit.Configure().
		AddFactory(greetings).
		WithService("app", "demo").
		Build()

	if err := manager.SetUp(sessionKey{}); err != nil {
		panic(err)
	}
	defer manager.TearDown(sessionKey{})

	services, err := manager.FindServices(sessionKey{})
	if err != nil {
		panic(err)
	}

	greeting, _ := services.Get("greeting")
	app, _ := services.Get("app")
	fmt.Println(greeting)
	fmt.Println(app)

	// Output:
	// hello from session
	// demo
}

func ExampleChild() {
	manager := scopekit.Configure().Build()

	// Setting up a child key sets up its whole ancestor chain first.
	if err := manager.SetUp(profileKey{}); err != nil {
		panic(err)
	}

	fmt.Println(manager.HasServices(sessionKey{}))
	fmt.Println(manager.HasServices(profileKey{}))

	// Releasing the child releases the ancestors too.
	if err := manager.TearDown(profileKey{}); err != nil {
		panic(err)
	}

	fmt.Println(manager.HasServices(sessionKey{}))

	// Output:
	// true
	// true
	// false
}

func ExampleComposite() {
	lifecycle := scopekit.NewFactory(func(builder *scopekit.Builder) error {
		fmt.Printf("built %v\n", builder.Key())
		return nil
	}, func(services *scopekit.Services) error {
		fmt.Printf("destroyed %v\n", services.Key())
		return nil
	})

	manager := scopekit.Configure().AddFactory(lifecycle).Build()

	if err := manager.SetUp(dashboardKey{}); err != nil {
		panic(err)
	}
	if err := manager.TearDown(dashboardKey{}); err != nil {
		panic(err)
	}

	// Output:
	// built dashboard
	// built chart
	// built table
	// destroyed table
	// destroyed chart
	// destroyed dashboard
}
