// Package scan provides tag-reading event sources.
//
// A Source emits one model.ScanEvent per tag read and reports read failures
// on a separate error channel. Simulator turns typed lines into text-record
// events. Device reads newline-delimited JSON readings, in the shape of a
// Web NFC reading event, from a reader bridge such as a FIFO or serial port.
package scan
