// Package normalize unifies heterogeneous article exports into the
// canonical schema.
//
// Two pieces cooperate:
//   - Dates canonicalizes free-form date text (relative phrases, a fixed
//     format list, then looser layouts) into YYYY/MM/DD.
//   - Schema resolves each canonical field through a per-platform ordered
//     fallback chain of candidate column names.
//
// Normalization is deterministic and never raises for bad cells; absent
// data degrades to the core.Sentinel value.
package normalize
