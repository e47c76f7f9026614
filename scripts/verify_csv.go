//go:build ignore

// verify_csv checks that every exported CSV file is rectangular and that no
// record is completely empty.
//
//	go run scripts/verify_csv.go exported_data
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	dir := "exported_data"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		fmt.Printf("❌ FAILED: no csv files in %s\n", dir)
		os.Exit(1)
	}

	failed := false
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			log.Fatal(err)
		}

		r := csv.NewReader(f)
		r.FieldsPerRecord = 0 // first line fixes the width; ragged records are errors
		records, err := r.ReadAll()
		f.Close()
		if err != nil {
			fmt.Printf("❌ %s: %v\n", path, err)
			failed = true
			continue
		}

		if len(records) == 0 {
			fmt.Printf("❌ %s: no header line\n", path)
			failed = true
			continue
		}

		blank := 0
		for _, rec := range records[1:] {
			if strings.Join(rec, "") == "" {
				blank++
			}
		}
		fmt.Printf("%s: %d columns, %d records, %d blank\n", filepath.Base(path), len(records[0]), len(records)-1, blank)
	}

	if failed {
		fmt.Println("❌ FAILED")
		os.Exit(1)
	}
	fmt.Println("✅ PASSED")
}
