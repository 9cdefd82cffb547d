package integration

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/iwvelando/consortium-simulator/internal/config"
	"github.com/iwvelando/consortium-simulator/internal/scenario"
	"go.uber.org/zap"
)

// TestPerformance tests performance characteristics
func TestPerformance(t *testing.T) {
	logger := zap.NewNop()

	start := time.Now()
	conf, err := config.LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	start = time.Now()
	const iterations = 1000
	for i := 0; i < iterations; i++ {
		if _, err := scenario.Run(logger, *conf); err != nil {
			t.Fatalf("Run failed on iteration %d: %v", i, err)
		}
	}
	runTime := time.Since(start)

	t.Logf("Performance metrics:")
	t.Logf("  Load config: %v", loadTime)
	t.Logf("  Run scenarios x%d: %v", iterations, runTime)

	if loadTime+runTime > 10*time.Second {
		t.Errorf("Total processing time %v exceeds 10 second threshold", loadTime+runTime)
	}
}

// TestDataConsistency validates that repeated and concurrent runs produce
// identical results.
func TestDataConsistency(t *testing.T) {
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	first, err := scenario.Run(logger, *conf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results, err := scenario.Run(logger, *conf)
			if err != nil {
				errs <- err.Error()
				return
			}
			if !reflect.DeepEqual(first, results) {
				errs <- "results differ between runs"
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}
