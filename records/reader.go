// Copyright 2025 Pressgather Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package records

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pressgather/pressgather/core"
)

// ReadFile loads a tabular export into a core.Table, dispatching on the
// file extension. CSV and XLSX files are supported.
func ReadFile(path string) (core.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return core.Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadCSV reads a comma-separated export. The first row is treated as the
// header; short rows are padded so every record carries every column.
func ReadCSV(path string) (core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Table{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return core.Table{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return tableFromRows(rows)
}

// ReadXLSX reads the first sheet of an Excel workbook.
func ReadXLSX(path string) (core.Table, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return core.Table{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return core.Table{}, fmt.Errorf("%w: %s has no sheets", ErrEmptyFile, path)
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return core.Table{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return tableFromRows(rows)
}

func tableFromRows(rows [][]string) (core.Table, error) {
	if len(rows) == 0 {
		return core.Table{}, ErrEmptyFile
	}

	columns := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		columns[i] = strings.TrimSpace(h)
	}

	table := core.Table{Columns: columns}
	for _, row := range rows[1:] {
		record := make(core.RawRecord, len(columns))
		for i, col := range columns {
			if i < len(row) {
				record[col] = row[i]
			} else {
				record[col] = ""
			}
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}
