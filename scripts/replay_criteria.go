// replay_criteria.go replays saved criteria lines against a running advisor API
// and prints the top match for each.
//
// Each non-blank line holds space-separated key=value pairs, e.g.
//
//	price_max=50000 fuel=electric min_seats=5
//
// Usage:
//
//	go run scripts/replay_criteria.go -file criteria.txt -api http://localhost:8700
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type recommendRequest struct {
	PriceMin *float64 `json:"price_min,omitempty"`
	PriceMax *float64 `json:"price_max,omitempty"`
	HPMin    *float64 `json:"hp_min,omitempty"`
	HPMax    *float64 `json:"hp_max,omitempty"`
	MinSeats int      `json:"min_seats,omitempty"`
	FuelType string   `json:"fuel_type,omitempty"`
	Brand    string   `json:"brand,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

type recommendResponse struct {
	Total           int `json:"total"`
	Recommendations []struct {
		Vehicle struct {
			Brand string  `json:"brand"`
			Name  string  `json:"name"`
			Price float64 `json:"price"`
		} `json:"vehicle"`
		TotalScore float64 `json:"total_score"`
	} `json:"recommendations"`
	Suggestions []string `json:"suggestions"`
}

func main() {
	path := flag.String("file", "criteria.txt", "file with one criteria set per line")
	apiURL := flag.String("api", "http://localhost:8700", "Advisor API base URL")
	dryRun := flag.Bool("dry-run", false, "print requests without posting")
	flag.Parse()

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("open %s: %v", *path, err)
	}
	defer f.Close()

	var reqs []recommendRequest
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		req, err := parseLine(line)
		if err != nil {
			log.Printf("skip line %d: %v", lineNo, err)
			continue
		}
		reqs = append(reqs, req)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("scan %s: %v", *path, err)
	}

	log.Printf("parsed %d criteria sets from %s", len(reqs), *path)

	if *dryRun {
		for i, req := range reqs {
			body, _ := json.Marshal(req)
			fmt.Printf("[%d] %s\n", i+1, body)
		}
		return
	}

	client := &http.Client{}
	served, failed := 0, 0
	for i, req := range reqs {
		body, _ := json.Marshal(req)
		resp, err := client.Post(*apiURL+"/api/v1/recommendations", "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("[%d] failed: %v", i+1, err)
			failed++
			continue
		}
		var out recommendResponse
		decErr := json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || decErr != nil {
			log.Printf("[%d] failed: status %d", i+1, resp.StatusCode)
			failed++
			continue
		}
		served++

		if len(out.Recommendations) == 0 {
			fmt.Printf("[%d] no matches, try: %s\n", i+1, strings.Join(out.Suggestions, "; "))
			continue
		}
		top := out.Recommendations[0]
		fmt.Printf("[%d] %d matches, top: %s %s ($%.0f) score %.2f\n",
			i+1, out.Total, top.Vehicle.Brand, top.Vehicle.Name, top.Vehicle.Price, top.TotalScore)
	}

	log.Printf("done: %d served, %d failed", served, failed)
}

func parseLine(line string) (recommendRequest, error) {
	var req recommendRequest
	for _, field := range strings.Fields(line) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return req, fmt.Errorf("expected key=value, got %q", field)
		}
		switch key {
		case "price_min", "price_max", "hp_min", "hp_max":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return req, fmt.Errorf("%s: %w", key, err)
			}
			switch key {
			case "price_min":
				req.PriceMin = &v
			case "price_max":
				req.PriceMax = &v
			case "hp_min":
				req.HPMin = &v
			case "hp_max":
				req.HPMax = &v
			}
		case "min_seats", "limit":
			n, err := strconv.Atoi(value)
			if err != nil {
				return req, fmt.Errorf("%s: %w", key, err)
			}
			if key == "min_seats" {
				req.MinSeats = n
			} else {
				req.Limit = n
			}
		case "fuel":
			req.FuelType = strings.ReplaceAll(value, "_", " ")
		case "brand":
			req.Brand = strings.ReplaceAll(value, "_", " ")
		default:
			return req, fmt.Errorf("unknown key %q", key)
		}
	}
	return req, nil
}
