// Package matchfiles scores catalog records against scanned audio files and
// resolves conflicting assignments.
//
// Candidates must clear a minimum title-only similarity before artist
// similarity counts for anything, every surviving candidate is scored with
// several probe strings, and each file ends up assigned to at most one record:
// when several records claim the same file, only the highest-confidence claim
// survives and the losers stay unmatched for the run.
package matchfiles
