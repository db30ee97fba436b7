// Package report renders search results, either as the human readable
// listing printed by the command line tool or as JSON.
package report
