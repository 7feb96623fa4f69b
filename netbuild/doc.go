// Package netbuild provides reusable functional-options-style building
// blocks for synthetic transaction networks. It lives alongside the engine
// packages to centralize fixture construction for tests, benchmarks, and
// examples: deterministic account naming, timestamp sequencing, and amount
// distributions, keeping laundering-typology fixtures DRY and reproducible.
//
// The package offers the following key components:
//
//   - Configuration primitives:
//     – NetOption:   a function that mutates netConfig before use.
//     – netConfig:   holds RNG, base time, tick, amount function.
//   - Topology constructors (Constructor implementations):
//     – Ring:        circular transfer chain, the layering signature.
//     – FanIn:       many payers into one aggregator hub.
//     – FanOut:      one disperser hub into many payees.
//     – ShellChain:  a thin pass-through chain of shell accounts.
//     – Scatter:     random background transfers between n accounts.
//   - Amount distributions (AmountFn implementations):
//     – DefaultAmountFn:  constant DefaultAmount.
//     – ConstantAmountFn: fixed user-provided value.
//     – UniformAmountFn:  uniform ~U[min,max], two decimal places.
//     – NormalAmountFn:   Gaussian ~N(mean,stddev), clipped at zero.
//
// Guarantees:
//
//   - Idempotent account registration: constructors sharing a prefix (or a
//     graph) do not fail on accounts that already exist.
//   - Fast-fail on invalid option parameters via panics in
//     option-constructors; runtime construction returns sentinel errors.
//   - Determinism: same options, seed, and constructor order produce
//     byte-identical networks, timestamps and amounts included.
//   - Documented algorithmic complexity per constructor.
//
// See individual function documentation for detailed contracts, panic
// conditions, parameter descriptions, and performance notes.
package netbuild
