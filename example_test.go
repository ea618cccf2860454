package envgate_test

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Azhovan/envgate"
)

func ExampleQuery() {
	os.Setenv("EXAMPLE_APP_PORT", "9090")
	defer os.Unsetenv("EXAMPLE_APP_PORT")

	if err := envgate.Init(envgate.WithPrefixes("EXAMPLE_APP_")); err != nil {
		log.Fatal(err)
	}

	port, err := envgate.Query[int]("EXAMPLE_APP_PORT").
		Default(8080).
		Validate(envgate.IsPort).
		Get()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(port)

	// Absent keys resolve to the chained default.
	timeout := envgate.Query[time.Duration]("EXAMPLE_APP_TIMEOUT").
		Default(5 * time.Second).
		MustGet()
	fmt.Println(timeout)

	// Output:
	// 9090
	// 5s
}

func ExampleGetOr() {
	os.Setenv("EXAMPLE_WORKERS", "8")
	defer os.Unsetenv("EXAMPLE_WORKERS")

	// Zero-configuration access: no Init, silent defaulting.
	fmt.Println(envgate.GetOr("EXAMPLE_WORKERS", 4))
	fmt.Println(envgate.GetOr("EXAMPLE_MISSING", 4))

	// Output:
	// 8
	// 4
}

func ExampleBool() {
	os.Setenv("EXAMPLE_FEATURE", "yes")
	defer os.Unsetenv("EXAMPLE_FEATURE")

	fmt.Println(envgate.Bool("EXAMPLE_FEATURE", false))
	fmt.Println(envgate.Bool("EXAMPLE_FEATURE_MISSING", false))

	// Output:
	// true
	// false
}

func ExampleMatchesRegex() {
	version, err := envgate.MatchesRegex(`^v\d+\.\d+$`)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(version("v1.2"))
	fmt.Println(version("release-1"))

	// Output:
	// true
	// false
}

func ExampleDump() {
	os.Setenv("EXAMPLE_DUMP_HOST", "localhost")
	os.Setenv("EXAMPLE_DUMP_API_TOKEN", "s3cr3t")
	defer os.Unsetenv("EXAMPLE_DUMP_HOST")
	defer os.Unsetenv("EXAMPLE_DUMP_API_TOKEN")

	if err := envgate.Init(envgate.WithPrefixes("EXAMPLE_DUMP_")); err != nil {
		log.Fatal(err)
	}

	if err := envgate.Dump(os.Stdout, envgate.WithSources()); err != nil {
		log.Fatal(err)
	}

	// Output:
	// EXAMPLE_DUMP_API_TOKEN: "***redacted***" (source: env)
	// EXAMPLE_DUMP_HOST: "localhost" (source: env)
}
