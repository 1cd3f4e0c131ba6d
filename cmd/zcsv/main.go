// Command zcsv is an example driver for the zcsv package: it accepts a
// single positional filename argument and prints each field as it is
// yielded by the iterator, one line per field.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/kesshou/zcsv"
)

func main() {
	logger := log.New(os.Stderr, "zcsv: ", 0)

	if len(os.Args) != 2 {
		logger.Fatalf("usage: %s <file.csv>", os.Args[0])
	}

	it, err := zcsv.NewFromPath(os.Args[1])
	if err != nil {
		logger.Fatalf("open: %v", err)
	}
	defer it.Close()

	row, col := 0, 0
	for {
		field, err := it.Next()
		if errors.Is(err, zcsv.ErrEndOfInput) {
			break
		}
		if err != nil {
			logger.Fatalf("parse: %v", err)
		}

		fmt.Printf("field[%d][%d] = |%s|\n", row, col, field.Unescaped())

		if field.LastColumn {
			row++
			col = 0
		} else {
			col++
		}
	}
}
