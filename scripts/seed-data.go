//go:build ignore
// +build ignore

// Seeds a running server with a year of synthetic bank transactions and
// triggers a recompute, so the subscription list has realistic content for
// local development.
//
//	go run scripts/seed-data.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

type transaction struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

type recurringCharge struct {
	name    string
	amount  float64
	dayStep int // days between charges
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	log.Printf("🌱 Seeding transactions against %s", apiURL)

	charges := []recurringCharge{
		{"NETFLIX.COM *91001", 15.99, 30},
		{"SPOTIFY USA", 10.99, 30},
		{"ADOBE *CREATIVE CLD", 22.99, 31},
		{"TORONTO HYDRO ELECTRIC 8871", 84.12, 30},
		{"NOTION LABS INC", 8.00, 29},
		{"AMAZON PRIME MEMBERSHIP", 139.00, 365},
	}
	noise := []recurringCharge{
		{"GUSTO PAYROLL 8821", 2500.00, 14},
		{"ONLINE TRANSFER TO SAVINGS", 500.00, 30},
		{"BLUE BOTTLE COFFEE 0441", 6.75, 3},
	}

	start := time.Now().UTC().AddDate(-1, 0, 0)
	var txs []transaction
	for _, c := range append(charges, noise...) {
		for d := start; d.Before(time.Now().UTC()); d = d.AddDate(0, 0, c.dayStep) {
			txs = append(txs, transaction{Name: c.name, Amount: c.amount, Date: d.Format("2006-01-02")})
		}
	}

	body, err := json.Marshal(map[string]any{"transactions": txs})
	if err != nil {
		log.Fatalf("Failed to encode batch: %v", err)
	}

	resp, err := http.Post(apiURL+"/api/recurring/recompute", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("Failed to post batch: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Recompute returned %s", resp.Status)
	}

	var out struct {
		Subscriptions []struct {
			Name       string  `json:"name"`
			Cadence    string  `json:"cadence"`
			AnnualCost float64 `json:"annualCost"`
			Status     string  `json:"status"`
		} `json:"subscriptions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Fatalf("Failed to decode response: %v", err)
	}

	log.Printf("✅ Seeded %d transactions, %d subscriptions detected", len(txs), len(out.Subscriptions))
	for _, s := range out.Subscriptions {
		fmt.Printf("  %-30s %-8s $%.2f/yr (%s)\n", s.Name, s.Cadence, s.AnnualCost, s.Status)
	}
}
