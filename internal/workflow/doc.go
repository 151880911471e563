// Package workflow runs one cross-reference pass: enumerate (or load) native
// devices, load the foreign export, match, and summarise. Every pass gets a
// fresh run ID that flows through the context into logs and the report.
package workflow
