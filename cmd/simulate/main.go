package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/hackgods/clinic-scheduling-assistant/pkg/logging"
)

// simulate drives many concurrent booking conversations at the same
// target slot through the HTTP API. With the per-slot lock in place,
// exactly one session may end up confirmed; anything else is a bug.

type simConfig struct {
	apiBaseURL string
	workers    int
	targetDate string
	targetTime string
}

type turnResponse struct {
	ID       string `json:"id"`
	Stage    string `json:"stage"`
	IsBooked bool   `json:"is_booked"`
	Reply    string `json:"reply"`
}

type result struct {
	booked  bool
	err     error
	latency time.Duration
}

func main() {
	cfg := simConfig{}
	flag.StringVar(&cfg.apiBaseURL, "api", envOr("API_BASE_URL", "http://localhost:8080"), "assistant-server base URL")
	flag.IntVar(&cfg.workers, "workers", 25, "concurrent sessions")
	flag.StringVar(&cfg.targetDate, "date", "", "target slot date (YYYY-MM-DD), default: first open slot")
	flag.StringVar(&cfg.targetTime, "time", "", "target slot time (HH:MM)")
	flag.Parse()

	logger := logging.New("info", "dev")
	gofakeit.Seed(time.Now().UnixNano())

	if cfg.targetDate == "" || cfg.targetTime == "" {
		date, tm, err := firstOpenSlot(cfg.apiBaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not pick a target slot")
		}
		cfg.targetDate, cfg.targetTime = date, tm
	}

	logger.Info().
		Int("workers", cfg.workers).
		Str("date", cfg.targetDate).
		Str("time", cfg.targetTime).
		Msg("simulate starting")

	results := make([]result, cfg.workers)
	var wg sync.WaitGroup

	for i := 0; i < cfg.workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = runSession(cfg)
		}(i)
	}
	wg.Wait()

	booked, conflicts, errs := 0, 0, 0
	var latencies []time.Duration
	for _, r := range results {
		switch {
		case r.err != nil:
			errs++
		case r.booked:
			booked++
		default:
			conflicts++
		}
		if r.err == nil {
			latencies = append(latencies, r.latency)
		}
	}

	p50, p95 := percentiles(latencies)
	logger.Info().
		Int("booked", booked).
		Int("conflicts", conflicts).
		Int("errors", errs).
		Dur("p50", p50).
		Dur("p95", p95).
		Msg("simulate finished")

	if booked > 1 {
		logger.Error().Int("booked", booked).Msg("DOUBLE BOOKING: more than one session confirmed the same slot")
		os.Exit(1)
	}
}

func runSession(cfg simConfig) result {
	start := time.Now()

	sessionID, err := createSession(cfg.apiBaseURL)
	if err != nil {
		return result{err: err}
	}

	lookup := fmt.Sprintf("%s, %s", gofakeit.Name(), gofakeit.DateRange(
		time.Now().AddDate(-90, 0, 0), time.Now().AddDate(-18, 0, 0)).Format("2006-01-02"))
	if _, err := postTurn(cfg.apiBaseURL, sessionID, lookup); err != nil {
		return result{err: err}
	}

	scheduling := fmt.Sprintf("%s, %s, %s", gofakeit.Email(), cfg.targetDate, cfg.targetTime)
	resp, err := postTurn(cfg.apiBaseURL, sessionID, scheduling)
	if err != nil {
		return result{err: err}
	}

	return result{
		booked:  resp.IsBooked,
		latency: time.Since(start),
	}
}

func createSession(baseURL string) (string, error) {
	resp, err := http.Post(baseURL+"/sessions", "application/json", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create session: status %d", resp.StatusCode)
	}

	var out turnResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func postTurn(baseURL, sessionID, text string) (*turnResponse, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(
		fmt.Sprintf("%s/sessions/%s/turns", baseURL, sessionID),
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("post turn: status %d", resp.StatusCode)
	}

	var out turnResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func firstOpenSlot(baseURL string) (string, string, error) {
	resp, err := http.Get(baseURL + "/slots?limit=1")
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	var slots []struct {
		Date string `json:"date"`
		Time string `json:"time"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		return "", "", err
	}
	if len(slots) == 0 {
		return "", "", fmt.Errorf("no open slots")
	}
	return slots[0].Date, slots[0].Time, nil
}

func percentiles(latencies []time.Duration) (p50, p95 time.Duration) {
	if len(latencies) == 0 {
		return 0, 0
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	idx := func(pct int) int {
		i := len(latencies) * pct / 100
		if i >= len(latencies) {
			i = len(latencies) - 1
		}
		return i
	}
	return latencies[idx(50)], latencies[idx(95)]
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
