// Package tablefmt reads and writes flat records as delimited text tables.
//
// A table is one header line of column names followed by one line per record.
// The mapping between a record type and its columns is a [Schema], built once
// from an explicit list of [Column] values instead of runtime type inspection:
//
//	var rowSchema = tablefmt.MustSchema(
//	    tablefmt.Field("Name", func(r *Row) *string { return &r.Name }, tablefmt.String()),
//	    tablefmt.Field("RacingID", func(r *Row) *string { return &r.RacingID }, tablefmt.String()).As("IRacingId"),
//	    tablefmt.Field("Rating", func(r *Row) *float64 { return &r.Rating }, tablefmt.Fixed()),
//	)
//
// # Codecs
//
// Every column converts its value through a [Codec]. The set of codec kinds is
// closed: plain values (strings, integers, booleans, floats), fixed-point
// decimals, calendar dates, optional wrappers around any other codec, and
// enumerations with symbolic names. Number and date conventions come from an
// explicit [Format] and never from the host locale.
//
// # Reading
//
// Columns are matched by exact header name, so the column order of an input
// table may differ from the schema. Unknown header columns are ignored and
// schema columns missing from the header keep the record's zero value.
package tablefmt
