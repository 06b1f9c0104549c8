package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// This tool fires N concurrent POST /seats/hold requests at the same
// event/seat-code set from distinct sessions, the way a real flash-sale
// stampede would. Exactly one request is expected to come back granted;
// every other request must come back conflicted - never a silent
// duplicate grant. It's a load tool, not a test binary, because the
// invariant it's checking only shows up under real concurrent HTTP
// traffic against a real DB, not in an in-process unit test.
type holdRequest struct {
	EventID   string   `json:"eventId"`
	SeatIDs   []string `json:"seatIds"`
	SessionID string   `json:"sessionId"`
	UserID    string   `json:"userId"`
}

type holdAttemptResult struct {
	SessionID    string
	StatusCode   int
	ResponseTime time.Duration
	Granted      bool
	Body         string
	Err          error
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080/api/v1", "API base URL")
	eventID := flag.String("event-id", "", "event UUID to contend for (required)")
	seatIDs := flag.String("seat-ids", "Premium-A-1", "comma-separated seat codes to contend for")
	concurrency := flag.Int("concurrency", 20, "number of concurrent hold attempts")
	flag.Parse()

	if *eventID == "" {
		log.Fatal("❌ -event-id is required (seed an event first and publish it)")
	}

	seats := splitSeats(*seatIDs)

	fmt.Println("🏁 Starting hold contention test...")
	fmt.Printf("   event=%s seats=%v concurrency=%d\n", *eventID, seats, *concurrency)
	fmt.Println("===================================")

	client := &http.Client{Timeout: 10 * time.Second}

	var wg sync.WaitGroup
	results := make([]holdAttemptResult, *concurrency)

	start := make(chan struct{})
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sessionID := uuid.NewString()
			<-start
			results[idx] = attemptHold(client, *baseURL, *eventID, seats, sessionID)
		}(i)
	}
	close(start)
	wg.Wait()

	report(results)
}

func splitSeats(raw string) []string {
	var out []string
	current := ""
	for _, r := range raw {
		if r == ',' {
			if current != "" {
				out = append(out, current)
				current = ""
			}
			continue
		}
		current += string(r)
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

func attemptHold(client *http.Client, baseURL, eventID string, seats []string, sessionID string) holdAttemptResult {
	payload, _ := json.Marshal(holdRequest{
		EventID:   eventID,
		SeatIDs:   seats,
		SessionID: sessionID,
	})

	start := time.Now()
	req, err := http.NewRequest(http.MethodPost, baseURL+"/seats/hold", bytes.NewReader(payload))
	if err != nil {
		return holdAttemptResult{SessionID: sessionID, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return holdAttemptResult{SessionID: sessionID, ResponseTime: elapsed, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	return holdAttemptResult{
		SessionID:    sessionID,
		StatusCode:   resp.StatusCode,
		ResponseTime: elapsed,
		Granted:      resp.StatusCode == http.StatusOK,
		Body:         string(body),
	}
}

func report(results []holdAttemptResult) {
	fmt.Println("\n📊 HOLD CONTENTION REPORT")
	fmt.Println("==========================")

	granted := 0
	conflicted := 0
	errored := 0
	var totalTime time.Duration

	for _, r := range results {
		switch {
		case r.Err != nil:
			errored++
			fmt.Printf("   ❌ %s errored: %v\n", r.SessionID, r.Err)
		case r.Granted:
			granted++
			totalTime += r.ResponseTime
			fmt.Printf("   ✅ %s granted in %v\n", r.SessionID, r.ResponseTime)
		default:
			conflicted++
			totalTime += r.ResponseTime
		}
	}

	fmt.Printf("\nAttempts:   %d\n", len(results))
	fmt.Printf("Granted:    %d\n", granted)
	fmt.Printf("Conflicted: %d\n", conflicted)
	fmt.Printf("Errored:    %d\n", errored)

	if granted == 1 {
		fmt.Println("\n🎉 PASS: exactly one hold was granted, every other attempt conflicted.")
	} else if granted == 0 {
		fmt.Println("\n⚠️  INCONCLUSIVE: no attempt was granted - check event-id/seat-ids and that the event is published.")
	} else {
		fmt.Printf("\n💥 FAIL: %d attempts were granted for the same seats - the hold arbiter let a double booking through.\n", granted)
	}
}
