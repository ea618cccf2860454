// Package envgate provides typed, validated access to environment configuration.
//
// Quick Start:
//
//	if err := envgate.Init(envgate.WithFile(".env"), envgate.WithPrefixes("APP_")); err != nil {
//	    log.Fatal(err)
//	}
//
//	port, err := envgate.Query[int]("APP_PORT").
//	    Default(8080).
//	    Validate(envgate.IsPort).
//	    Get()
//
//	debug := envgate.Bool("APP_DEBUG", false) // zero-configuration, no Init required
//
// Values loaded from a file never override variables already set in the
// process environment.
//
// See example_test.go and README.md for detailed usage.
package envgate
