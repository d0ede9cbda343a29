package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// answers every prompt by upper-casing the items it contains
func echoUpper(ctx context.Context, prompt string) (string, error) {
	start := strings.Index(prompt, "Input JSON:\n")
	end := strings.LastIndex(prompt, "\n\nOutput")
	var items []TranslationItem
	if err := json.Unmarshal([]byte(prompt[start+len("Input JSON:\n"):end]), &items); err != nil {
		return "", err
	}
	results := make([]TranslationResult, len(items))
	for i, item := range items {
		results[i] = TranslationResult{Index: item.Index, Text: strings.ToUpper(item.Text)}
	}
	out, _ := json.Marshal(results)
	return "```json\n" + string(out) + "\n```", nil
}

func makeItems(n int) []TranslationItem {
	items := make([]TranslationItem, n)
	for i := range items {
		items[i] = TranslationItem{Index: i, Text: fmt.Sprintf("line %d", i)}
	}
	return items
}

func TestBatchRunnerOrdersResults(t *testing.T) {
	runner := newBatchRunner(Options{
		TargetLanguage: "Upper",
		BatchSize:      7,
		Concurrency:    4,
	})

	var calls atomic.Int32
	complete := func(ctx context.Context, prompt string) (string, error) {
		calls.Add(1)
		return echoUpper(ctx, prompt)
	}

	results, err := runner.run(context.Background(), makeItems(50), complete)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if len(results) != 50 {
		t.Fatalf("expected 50 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Index != i || r.Text != fmt.Sprintf("LINE %d", i) {
			t.Fatalf("result %d: got %+v", i, r)
		}
	}
	// 50 items in batches of 7
	if got := calls.Load(); got != 8 {
		t.Errorf("expected 8 requests, got %d", got)
	}
}

func TestBatchRunnerEmpty(t *testing.T) {
	runner := newBatchRunner(Options{})
	results, err := runner.run(context.Background(), nil, func(context.Context, string) (string, error) {
		t.Fatal("complete should not be called")
		return "", nil
	})
	if err != nil || len(results) != 0 {
		t.Errorf("expected no results, got %v (err=%v)", results, err)
	}
}

func TestBatchRunnerRespectsConcurrency(t *testing.T) {
	runner := newBatchRunner(Options{BatchSize: 1, Concurrency: 2})

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	complete := func(ctx context.Context, prompt string) (string, error) {
		mu.Lock()
		active++
		maxSeen = max(maxSeen, active)
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		active--
		mu.Unlock()
		return echoUpper(ctx, prompt)
	}

	if _, err := runner.run(context.Background(), makeItems(10), complete); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if maxSeen > 2 {
		t.Errorf("expected at most 2 concurrent requests, saw %d", maxSeen)
	}
}

func TestBatchRunnerRetries(t *testing.T) {
	runner := newBatchRunner(Options{
		MaxRetries:   3,
		RetryBackoff: time.Millisecond,
	})

	var calls atomic.Int32
	complete := func(ctx context.Context, prompt string) (string, error) {
		switch calls.Add(1) {
		case 1:
			return "", errors.New("temporary outage")
		case 2:
			return "sorry, I cannot help", nil
		default:
			return echoUpper(ctx, prompt)
		}
	}

	results, err := runner.run(context.Background(), makeItems(3), complete)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if len(results) != 3 || calls.Load() != 3 {
		t.Errorf("expected 3 results after 3 calls, got %d results after %d calls", len(results), calls.Load())
	}
}

func TestBatchRunnerGivesUp(t *testing.T) {
	runner := newBatchRunner(Options{
		BatchSize:    2,
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
	})

	boom := errors.New("boom")
	_, err := runner.run(context.Background(), makeItems(4), func(context.Context, string) (string, error) {
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom error, got %v", err)
	}
	if !strings.Contains(err.Error(), "after 2 attempts") {
		t.Errorf("error should mention attempts: %v", err)
	}
}

func TestBatchRunnerStopsOnCancel(t *testing.T) {
	runner := newBatchRunner(Options{RetryBackoff: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	complete := func(context.Context, string) (string, error) {
		cancel()
		return "", errors.New("fails once, then waits")
	}

	done := make(chan error, 1)
	go func() {
		_, err := runner.run(ctx, makeItems(1), complete)
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after cancellation")
	}
}
