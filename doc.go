// Package ledgerview maintains an in-memory view of a plain-text accounting
// ledger and answers read-only analytical queries over it, all expressed in a
// single reporting currency.
//
// The core functionalities include:
//   - Parsing: Reading the ledger text format (transactions, postings,
//     amounts, price annotations, include directives) into an ordered,
//     in-memory document.
//   - Include Resolution: Recursively resolving `include` directives relative
//     to the including file's directory and merging the resulting documents
//     into one logical ledger.
//   - Currency Normalization: Rewriting every posting into a chosen native
//     currency using the price annotations embedded in the ledger itself.
//   - Freshness: Detecting on-disk edits through the source file's
//     modification time and rebuilding the document wholesale when it is
//     stale.
//   - Reports: Monthly series, cumulative cashflow, point-in-time balance,
//     and a hierarchical split of an account's balance into its children.
//
// This package serves as the foundational logic for the `lv` command-line
// tool and the HTTP surface in the server package.
package ledgerview
