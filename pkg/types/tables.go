package types

// Standard table names. These are the tables exposed by CSV export; the
// meta table (sequencer state) is internal and not exported.
const (
	TableSamples     = "samples"
	TableTests       = "tests"
	TableResults     = "results"
	TableAttachments = "attachments"
	TableQCEvents    = "qc_events"
	TableAudit       = "audit"
	TableCoc         = "coc"
)

// ExportableTables lists the tables accepted by the export command.
var ExportableTables = []string{
	TableSamples,
	TableTests,
	TableResults,
	TableAttachments,
	TableQCEvents,
	TableAudit,
	TableCoc,
}

// ExportableTable reports whether name is one of the exportable tables.
func ExportableTable(name string) bool {
	for _, t := range ExportableTables {
		if t == name {
			return true
		}
	}
	return false
}
