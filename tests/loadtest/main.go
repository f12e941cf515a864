package main

import (
	"bytes"
	"fmt"
	json "github.com/goccy/go-json"
	flag "github.com/spf13/pflag"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var (
	baseURL      = flag.String("url", "http://127.0.0.1:5000", "qrscan base URL")
	workers      = flag.Int("workers", 50, "concurrent workers")
	testDuration = flag.Duration("duration", 10*time.Second, "duration of each phase")
	numVisitors  = flag.Int("visitors", 200, "distinct User-Agent values")
)

var platforms = []string{
	"Linux; Android 14; Pixel 7",
	"Linux; Android 13; SM-S918B",
	"iPhone; CPU iPhone OS 17_0 like Mac OS X",
	"iPad; CPU OS 16_6 like Mac OS X",
	"Windows NT 10.0; Win64; x64",
	"Macintosh; Intel Mac OS X 10_15_7",
	"X11; Ubuntu; Linux x86_64",
}

var deviceModels = []string{"Pixel 7", "SM-S918B", "iPhone", "Redmi Note 12"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// slugs collects record slugs returned by scans so that details lookups hit
// existing records.
var slugs struct {
	sync.RWMutex
	list []string
}

func rememberSlug(slug string) {
	slugs.Lock()
	defer slugs.Unlock()
	if len(slugs.list) < 10000 {
		slugs.list = append(slugs.list, slug)
	}
}

func randomSlug(rng *rand.Rand) string {
	slugs.RLock()
	defer slugs.RUnlock()
	if len(slugs.list) == 0 {
		return "missing"
	}
	return slugs.list[rng.Intn(len(slugs.list))]
}

func main() {
	flag.Parse()

	fmt.Println("=== qrscan Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Visitors: %d\n\n", *workers, *testDuration, *numVisitors)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: First visits (GET /api/scan/{slug}) ---")
	runPhase(*testDuration, func(rng *rand.Rand) result {
		return doScan(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (60% scan, 25% details, 10% qr, 5% device model) ---")
	runPhase(*testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.60:
			return doScan(rng)
		case r < 0.85:
			return doDetails(rng)
		case r < 0.95:
			return doQr(rng)
		default:
			return doUpdateDeviceModel(rng)
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (90% details) ---")
	runPhase(*testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.10 {
			return doScan(rng)
		}
		return doDetails(rng)
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-32s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-32s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doScan(rng *rand.Rand) result {
	const endpoint = "GET /api/scan/{slug}"
	visitor := rng.Intn(*numVisitors)
	ua := fmt.Sprintf("Mozilla/5.0 (%s) LoadTest/%d", platforms[visitor%len(platforms)], visitor)

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/api/scan/lt-%d", *baseURL, rng.Intn(1000)), nil)
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", visitor%250+1))

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	defer resp.Body.Close()

	var body struct {
		Data struct {
			Slug string `json:"slug"`
		} `json:"data"`
	}
	if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Data.Slug != "" {
		rememberSlug(body.Data.Slug)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func doDetails(rng *rand.Rand) result {
	const endpoint = "GET /api/scan/details/{slug}"
	start := time.Now()
	resp, err := httpClient.Get(*baseURL + "/api/scan/details/" + randomSlug(rng))
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	ok := resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotFound
	return result{endpoint, resp.StatusCode, lat, !ok}
}

func doQr(rng *rand.Rand) result {
	const endpoint = "GET /api/qr"
	sizes := []int{128, 256, 512}
	start := time.Now()
	resp, err := httpClient.Get(fmt.Sprintf("%s/api/qr?size=%d", *baseURL, sizes[rng.Intn(len(sizes))]))
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func doUpdateDeviceModel(rng *rand.Rand) result {
	const endpoint = "POST /api/update-device-model"
	data, _ := json.Marshal(map[string]string{"deviceModel": deviceModels[rng.Intn(len(deviceModels))]})

	start := time.Now()
	resp, err := httpClient.Post(*baseURL+"/api/update-device-model", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	return strings.Repeat(s, n)
}
