// Package textutil provides text normalization and similarity scoring for
// matching catalog records against filenames and database rows.
//
// Normalization folds diacritics, strips parenthetical and bracketed content
// (remix tags, version info), removes punctuation, collapses whitespace, and
// lowercases. Similarity combines a longest-matching-blocks sequence ratio
// with word-overlap similarity into one [0,1] score shared by every matcher
// in the repository.
//
// All functions are pure and safe for concurrent use.
package textutil
