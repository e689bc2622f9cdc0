// Package cellscan scrapes battery cell datasheets from the Batemo Cell
// Explorer and turns each product page into a structured record of the
// cell's technical specifications, including a handful of derived
// electrical metrics.
//
// This package contains domain types, interfaces, and the pure extraction
// logic following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency
// (e.g., sqlite/, goquery/, http/, postgres/).
package cellscan
