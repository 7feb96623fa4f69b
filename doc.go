// Package amlnet is an in-memory engine for building, mining, and scoring
// transaction networks — from the temporal multigraph core to laundering
// typology detection and fraud-ring assembly.
//
// 🚀 What is amlnet?
//
//	A deterministic, thread-safe analytics core that brings together:
//		• Graph model: accounts & timestamped money transfers, safe under locks
//		• Cycle mining: bounded enumeration of money round trips
//		• Subgraph matching: k-hop pattern extraction + exact VF2 search
//		• Risk scoring: velocity / cyclic / centrality blend with tiers
//		• Typology flags: fan-in, fan-out, and shell-layer detection
//		• Ring assembly: connected suspicious clusters with stable RING ids
//		• Pipeline: one concurrent run producing a structured report
//
// ✨ Why choose amlnet?
//
//   - Deterministic – same graph in, byte-identical report out, every run
//   - Rock-solid guarantees – R/W locks, sentinel errors, bounded search
//   - Pure computation – no I/O, no storage, callers own ingestion & transport
//   - Extensible – functional options on every engine (windows, budgets, weights)
//
// Under the hood, everything is organized under six subpackages:
//
//	txgraph/  — directed temporal multigraph: accounts, transfers, aggregates
//	cycles/   — bounded iterative DFS cycle enumeration + canonical dedup
//	isomorph/ — k-hop neighborhood patterns + VF2 exact matching
//	risk/     — component scores, tiers, smurfing/shell flags, ring assembly
//	analyzer/ — concurrent pipeline orchestration + suspicious-account report
//	netbuild/ — deterministic synthetic network fixtures for tests & benchmarks
//
// Quick ASCII example:
//
//	    A──▶B
//	    ▲   │
//	    └─C◀┘
//
//	represents a three-account layering ring: funds leave A and return to A.
//
// Dive into the package docs for contracts, determinism notes, and the
// error sentinels each engine exposes.
//
//	go get github.com/finlytics-lab/amlnet
package amlnet
