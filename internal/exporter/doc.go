// Package exporter writes cleaned movie datasets to CSV.
//
// Output carries a header row with the seven schema column names followed by
// one row per record in dataset order. There is no index column. The
// delimiter and an optional UTF-8 BOM prefix are configurable for
// spreadsheet compatibility.
package exporter
