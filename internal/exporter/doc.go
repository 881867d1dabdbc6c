// Package exporter writes pipeline output to disk. It produces two CSV
// artifacts: the canonical employee table and the findings feed. Employee
// files carry a UTF-8 BOM so Excel opens them correctly.
package exporter
