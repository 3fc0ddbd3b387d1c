// Package types defines the labtrail domain entities (samples, tests,
// results, attachments, chain-of-custody events, QC events, users, audit
// records), their status vocabularies, the standard table names, and the
// sentinel errors shared by the store and the service layer.
package types
