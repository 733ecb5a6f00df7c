package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// GoldenRoot represents a single test case in the golden file
type GoldenRoot struct {
	Coefficients []string `json:"coefficients"`
	P            string   `json:"p"`
	E            int      `json:"e"`
	Seed         string   `json:"seed"`
	Root         string   `json:"root"`
}

// target is a polynomial (low degree first) whose simple roots modulo p are
// lifted to p^e.
type target struct {
	coefficients []int64
	p            int64
	e            int
}

func main() {
	outputDir := flag.String("out", "internal/newton/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "roots_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// Small moduli only: every root is found by exhaustive search.
	targets := []target{
		{[]int64{-2, 0, 1}, 7, 3},
		{[]int64{-1, 0, 0, 0, 1}, 5, 3},
		{[]int64{1, 0, 1}, 5, 4},
		{[]int64{-2, 0, 0, 1}, 5, 3},
		{[]int64{-1, 3}, 7, 4},
	}

	var data []GoldenRoot

	fmt.Println("Generating golden data...")

	for _, tg := range targets {
		coeffs := make([]*big.Int, len(tg.coefficients))
		names := make([]string, len(tg.coefficients))
		for i, c := range tg.coefficients {
			coeffs[i] = big.NewInt(c)
			names[i] = coeffs[i].String()
		}
		p := big.NewInt(tg.p)
		q := new(big.Int).Exp(p, big.NewInt(int64(tg.e)), nil)

		for seed := int64(0); seed < tg.p; seed++ {
			s := big.NewInt(seed)
			if !isSimpleRoot(coeffs, s, p) {
				continue
			}
			root := bruteForceRoot(coeffs, s, p, q)
			if root == nil {
				fmt.Fprintf(os.Stderr, "No root of %v above %d modulo %s\n", names, seed, q)
				os.Exit(1)
			}
			data = append(data, GoldenRoot{
				Coefficients: names,
				P:            p.String(),
				E:            tg.e,
				Seed:         s.String(),
				Root:         root.String(),
			})
			fmt.Printf("Generated root of %v above %d modulo %s\n", names, seed, q)
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

// eval returns f(x) mod q by Horner's rule.
func eval(coeffs []*big.Int, x, q *big.Int) *big.Int {
	acc := new(big.Int)
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, coeffs[i])
		acc.Mod(acc, q)
	}
	return acc
}

// isSimpleRoot reports whether f(x) = 0 and f'(x) != 0 modulo p.
func isSimpleRoot(coeffs []*big.Int, x, p *big.Int) bool {
	if eval(coeffs, x, p).Sign() != 0 {
		return false
	}
	deriv := make([]*big.Int, 0, len(coeffs))
	for i := 1; i < len(coeffs); i++ {
		deriv = append(deriv, new(big.Int).Mul(coeffs[i], big.NewInt(int64(i))))
	}
	return eval(deriv, x, p).Sign() != 0
}

// bruteForceRoot scans the residues congruent to seed modulo p and returns
// the one that is a root modulo q. This serves as our "Oracle".
func bruteForceRoot(coeffs []*big.Int, seed, p, q *big.Int) *big.Int {
	for x := new(big.Int).Set(seed); x.Cmp(q) < 0; x.Add(x, p) {
		if eval(coeffs, x, q).Sign() == 0 {
			return new(big.Int).Set(x)
		}
	}
	return nil
}
