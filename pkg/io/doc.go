// Package io reads and writes layout files.
//
// # Formats
//
// Two encodings are supported, picked by file extension: JSON (.json) and
// TOML (.toml). Both carry the same [Document]:
//
//	{
//	  "cols": 12,
//	  "layout": [
//	    {"id": "a", "x": 0, "y": 0, "w": 2, "h": 2},
//	    {"id": "b", "x": 2, "y": 0, "w": 4, "h": 1, "static": true}
//	  ],
//	  "layouts": {
//	    "sm": [{"id": "a", "x": 0, "y": 0, "w": 2, "h": 2}]
//	  }
//	}
//
// A JSON file may also be a bare array of items, the shape browsers persist
// to local storage. The TOML form uses arrays of tables:
//
//	cols = 12
//
//	[[layout]]
//	id = "a"
//	w = 2
//	h = 2
//
//	[[layouts.sm]]
//	id = "a"
//	w = 2
//	h = 2
//
// Item constraints are behavior and never serialized; re-attach them after
// reading. The opaque data payload survives JSON but not TOML.
//
// # Validation
//
// Every reader validates each layout it decodes with [grid.Validate] and
// reports all issues at once, with paths like "layouts.sm.layout[1].w".
package io
