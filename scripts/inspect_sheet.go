//go:build ignore

// inspect_sheet prints the first rows of every sheet with their 0-based row
// index, to locate header offsets when the published layout changes.
//
//	go run scripts/inspect_sheet.go path/to/workbook.xlsx [rows]
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: inspect_sheet <workbook.xlsx> [rows]")
	}
	filename := os.Args[1]

	limit := 15
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalf("invalid row count %q: %v", os.Args[2], err)
		}
		limit = n
	}

	f, err := excelize.OpenFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("=== %s (%d rows) ===\n", sheetName, len(rows))
		for i, row := range rows {
			if i >= limit {
				break
			}
			fmt.Printf("%3d | %s\n", i, strings.Join(row, " | "))
		}
		fmt.Println()
	}
}
