// Package finsense provides the core types and functions for working with
// bank statement CSV exports. It is designed to be local-first: a statement
// file is the single source of truth, parsed fresh on every use, with no
// database behind it.
//
// The core functionalities include:
//   - Statement Ingestion: Parsing and cleaning raw CSV (or JSON) exports
//     into a validated, date-ordered sequence of transactions, with
//     per-row accounting of what was dropped and why.
//   - Transaction Store: An in-memory Statement holding the cleaned
//     transactions for the current session.
//   - Query Engine: Structured filtering, sorting, aggregation and grouping
//     over a statement, used both by the CLI subcommands and by the AI
//     assistant's function tools.
//   - Similarity Search: An in-memory embedding index over transaction
//     descriptions, with a lexical fallback when no API key is configured.
//
// This package serves as the foundational logic for the `fin` command-line
// tool and its `assist` chat session.
package finsense
