// Package task owns the task list and its on-disk store.
//
// The store file is a JSON array of tasks, written with 4-space indentation
// and a trailing newline:
//
//	[
//	    {
//	        "description": "buy milk",
//	        "completed": false
//	    }
//	]
//
// # Loading
//
// [Open] loads the whole list into memory once:
//
//   - A missing file is created (with its parent directories) holding an
//     empty list.
//   - A path that is not a regular file is reported and an empty list is
//     written over it. If that write fails, the failure is reported like any
//     other save failure.
//   - A file whose top-level value is not an array is a [FormatError].
//   - A file that does not parse, or whose elements are not objects with a
//     string "description" and an optional boolean "completed", is a
//     [CorruptionError].
//
// Format violations and corruption are recovered the same way: the file is
// copied byte-for-byte to the backup path (the extension replaced by ".bak"
// by default) and the store starts empty. The damaged file stays in place
// until the next save overwrites it, so its contents survive only in the
// backup.
//
// # Saving
//
// Every successful mutation saves the full list once, through a temp file
// and rename. A failed save is reported to the [Notifier] and kept in
// [Store.LastSaveErr]; the in-memory list stays correct but the change is
// not durable. There is no retry and no locking between processes: the last
// full write wins.
//
// # Indices
//
// Tasks are addressed by their 1-based position at the time of the call.
// Removing a task shifts every later task down by one.
package task
