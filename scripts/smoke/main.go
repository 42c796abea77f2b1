// Command smoke performs a quick endpoint sweep against a running
// instance and exits non-zero when a critical endpoint misbehaves.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type target struct {
	Method   string
	Path     string
	Body     string
	Expect   int
	Critical bool
}

var defaultTargets = []target{
	{Method: http.MethodGet, Path: "/health", Expect: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/ready", Expect: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/metrics", Expect: http.StatusOK},
	{Method: http.MethodGet, Path: "/api/v1/rooms", Expect: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/api/v1/rooms/search?minCapacity=30", Expect: http.StatusOK},
	{Method: http.MethodGet, Path: "/api/v1/classes", Expect: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/api/v1/dashboard", Expect: http.StatusOK},
	{Method: http.MethodPost, Path: "/api/v1/classes", Body: `{}`, Expect: http.StatusBadRequest},
}

type result struct {
	Target   target
	Status   int
	Duration time.Duration
	Err      error
}

func main() {
	var (
		base    string
		timeout time.Duration
	)
	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}

	var failures int
	results := make([]result, 0, len(defaultTargets))
	for _, tgt := range defaultTargets {
		res := check(client, base, tgt)
		if res.Err != nil || res.Status != tgt.Expect {
			if tgt.Critical {
				failures++
			}
		}
		results = append(results, res)
	}

	printReport(results)
	if failures > 0 {
		log.Printf("critical failures: %d", failures)
		os.Exit(1)
	}
}

func check(client *http.Client, base string, tgt target) result {
	url := strings.TrimRight(base, "/") + tgt.Path

	var body io.Reader
	if tgt.Body != "" {
		body = bytes.NewReader([]byte(tgt.Body))
	}
	req, err := http.NewRequest(tgt.Method, url, body)
	if err != nil {
		return result{Target: tgt, Err: err}
	}
	if tgt.Body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return result{Target: tgt, Err: err}
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused; payload shape is checked
	// only for being valid JSON on API routes.
	data, _ := io.ReadAll(resp.Body)
	if strings.HasPrefix(tgt.Path, "/api/") && len(data) > 0 {
		var js interface{}
		if jsonErr := json.Unmarshal(data, &js); jsonErr != nil {
			return result{Target: tgt, Status: resp.StatusCode, Duration: time.Since(start), Err: fmt.Errorf("invalid JSON body: %w", jsonErr)}
		}
	}
	return result{Target: tgt, Status: resp.StatusCode, Duration: time.Since(start)}
}

func printReport(results []result) {
	fmt.Println("Smoke Report")
	fmt.Println("============")
	for _, res := range results {
		status := "OK"
		if res.Err != nil {
			status = "ERROR"
		} else if res.Status != res.Target.Expect {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		if res.Err != nil {
			fmt.Printf("  Error: %v\n", res.Err)
			continue
		}
		fmt.Printf("  Status: %d (want %d) in %s | Critical: %t\n", res.Status, res.Target.Expect, res.Duration, res.Target.Critical)
	}
}
