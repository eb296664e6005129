// Package report renders lint results for the command line.
//
// TextSink prints results and check log lines as they arrive, coloured by
// severity when the output is a terminal. Collector buffers everything for a
// single JSON document. SummaryTable tabulates per-check counts.
package report
