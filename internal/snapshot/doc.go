// Package snapshot reads and writes the task file.
//
// The task file (tasks.json by default) is a JSON array with one record per
// task, in store order:
//
//	[
//	  {
//	    "id": 2,
//	    "title": "Write report",
//	    "description": "draft",
//	    "status": "Done"
//	  }
//	]
//
// All four fields are required. Unknown fields are ignored on load so newer
// files stay readable.
//
// # Saving
//
// Save overwrites the whole file. It writes to a temporary file next to the
// target and renames it into place, using 2-space indentation and a trailing
// newline.
//
// # Loading
//
// A missing file means no saved state and yields an empty list. Anything that
// is not valid JSON, or does not match the bundled JSON Schema, or repeats an
// id, fails with a *DecodeError. Nothing is partially recovered.
package snapshot
