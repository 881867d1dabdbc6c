// Package analytics computes the read-only aggregate views the BI layer
// consumes: demographic breakdowns, distributions, turnover and headcount
// trends. Every view is a pure group-by over the canonical employee table,
// filtered to employees whose derived age is absent or at least the
// configured minimum. The views never see raw data and never change a
// record; they restate what the cleaning pipeline produced.
package analytics
