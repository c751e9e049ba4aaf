package integration

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"
)

// TestMain spins up a single container for the integration package and tears it down once.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		fmt.Fprintln(os.Stderr, "skipping container-based integration tests in short mode")
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	container, err := setupWithContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test container: %v\n", err)
		os.Exit(1)
	}
	suiteContainer = container

	code := m.Run()

	suiteContainer.Cleanup()
	os.Exit(code)
}
