// Package exporter writes the filtered dataset and analytics results to CSV
// and Excel. CSV exports stream row by row and carry an optional UTF-8 BOM
// so Excel opens them correctly; the Excel export builds one workbook with a
// data sheet plus one sheet per analytics block.
package exporter
