// Package governance evaluates architecture models against an ordered
// catalog of governance rules and reports the outcome as a value.
//
// The engine walks the catalog in priority order: naming, ownership,
// vocabulary, cardinality. Under strict mode the first rule that produces
// evidence rejects the model and later rules are skipped. Under advisory
// mode the model is always accepted and the findings are carried as
// non-blocking advisories. Rules are pure functions over a repository
// snapshot, so repeated validation of an unmodified store yields
// byte-identical results.
//
// Structural problems (duplicate ids, dangling references) are not
// governance findings; the repository rejects those eagerly at insert
// time, before a store ever reaches this package.
package governance
