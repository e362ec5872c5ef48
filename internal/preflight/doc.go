// Package preflight provides readiness checks for the filesystem paths and
// external converters the pipeline depends on.
//
// These checks run in two contexts:
//   - The convert command calls RunAll before touching any source document,
//     so a misconfigured output tree fails fast instead of mid-batch.
//   - The CLI "docmill status" command uses the individual check functions
//     to display tool and path health.
package preflight
