// Package parallel parses todo.txt snapshots concurrently.
//
// It provides Pool, a bounded worker pool that distributes line chunks
// across workers and writes results back by index, so the parsed task
// list keeps the exact order of the input file.
package parallel
