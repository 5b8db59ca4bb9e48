package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// GoldenData represents a single binomial expansion in the golden file.
// Coefficients run from the highest power of x down to the constant.
type GoldenData struct {
	Base         string   `json:"base"`
	N            int      `json:"n"`
	Coefficients []string `json:"coefficients"`
}

func main() {
	outputDir := flag.String("out", "internal/poly/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "binomial_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// Small powers, powers of two, and a couple of larger values whose
	// central coefficients no longer fit in an int64.
	targets := []int{0, 1, 2, 3, 4, 5, 8, 10, 16, 25, 32, 50}

	bases := []struct {
		text string
		sign int64
	}{
		{"x + 1", 1},
		{"x - 1", -1},
	}

	var data []GoldenData

	fmt.Println("Generating golden data...")

	for _, b := range bases {
		for _, n := range targets {
			data = append(data, GoldenData{
				Base:         b.text,
				N:            n,
				Coefficients: binomialRow(n, b.sign),
			})
			fmt.Printf("Generated (%s)^%d\n", b.text, n)
		}
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

// binomialRow returns the coefficients of (x + sign)^n, highest power first:
// C(n, k) * sign^k for k = 0..n. It uses big.Int.Binomial as an oracle that
// shares no code with the polynomial engine.
func binomialRow(n int, sign int64) []string {
	row := make([]string, n+1)
	for k := 0; k <= n; k++ {
		c := new(big.Int).Binomial(int64(n), int64(k))
		if sign < 0 && k%2 == 1 {
			c.Neg(c)
		}
		row[k] = c.String()
	}
	return row
}
