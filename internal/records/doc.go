// Package records loads track records from delimited input files and exports
// match results.
//
// Input headers are resolved case-insensitively against known aliases
// (id/rekordboxid/recordboxid, title/song title/song name, file path/path/
// filepath); unknown columns are ignored and a UTF-8 byte order mark is
// tolerated. Row validation happens at load time: a malformed row aborts the
// load before any matching begins.
package records
