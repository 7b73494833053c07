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

// Package export writes article collections to CSV and XLSX files with the
// column orders the aggregated and ranked exports use.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pressgather/pressgather/core"
)

// WriteArticles writes an aggregated collection in canonical column order,
// choosing CSV or XLSX from the path's extension.
func WriteArticles(path string, articles []core.CanonicalArticle) error {
	header := canonicalHeader(articles)
	withKeyword := len(header) > len(canonicalColumns)
	rows := make([][]string, len(articles))
	for i, a := range articles {
		rows[i] = canonicalRow(a, withKeyword)
	}
	return writeRows(path, header, rows)
}

// WriteScored writes a ranked collection, relevance score first.
func WriteScored(path string, scored []core.ScoredArticle) error {
	header := rankedHeader(scored)
	rows := make([][]string, len(scored))
	for i, s := range scored {
		rows[i] = rankedRow(s, header)
	}
	return writeRows(path, header, rows)
}

// WriteStubs writes raw harvester output in the stub schema.
func WriteStubs(path string, stubs []core.HarvestedStub) error {
	rows := make([][]string, len(stubs))
	for i, s := range stubs {
		rows[i] = stubRow(s)
	}
	return writeRows(path, stubColumns, rows)
}

func writeRows(path string, header []string, rows [][]string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeCSV(path, header, rows)
	case ".xlsx":
		return writeXLSX(path, header, rows)
	default:
		return fmt.Errorf("unsupported export format: %s", filepath.Ext(path))
	}
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(path string, header []string, rows [][]string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	if err := setRow(wb, sheet, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(wb, sheet, i+2, row); err != nil {
			return err
		}
	}
	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func setRow(wb *excelize.File, sheet string, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return wb.SetSheetRow(sheet, cell, &row)
}
