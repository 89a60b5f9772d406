// Package io provides JSON import and export for board placements.
//
// # Overview
//
// This package serializes placements to and from a simple JSON document.
// The format is designed for:
//
//   - Feeding solver output into the check, score, and render commands
//   - Integration with external tools that produce or consume placements
//   - Round-trip preservation: export, edit, and re-import identically
//
// # JSON Format
//
// The document has a board object and a components array:
//
//	{
//	  "board": {"width": 50, "height": 50},
//	  "components": [
//	    {"kind": "usb_connector", "x": 22, "y": 0},
//	    {"kind": "microcontroller", "x": 23, "y": 36},
//	    {"kind": "crystal", "x": 28, "y": 36},
//	    {"kind": "mikrobus_connector_1", "x": 0, "y": 20, "rotation": 90},
//	    {"kind": "mikrobus_connector_2", "x": 35, "y": 20, "rotation": 90}
//	  ]
//	}
//
// Each component has a catalog kind, the position of its top-left corner,
// and an optional rotation (0 or 90 degrees, defaults to 0). Footprints are
// fixed per kind and never appear in the document.
//
// # Import
//
// Use [ImportJSON] to read a placement from a file path, or [ReadJSON] to
// read from any io.Reader:
//
//	p, err := io.ImportJSON("placement.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Import only checks that the document parses. Whether the placement is
// complete and satisfies the design rules is a separate question answered
// by the constraint validator.
//
// # Export
//
// Use [ExportJSON] to write a placement to a file, or [WriteJSON] to write
// to any io.Writer:
//
//	err := io.ExportJSON(p, "placement.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Output is pretty-printed with a trailing newline, and components are
// written in canonical catalog order so that equivalent placements produce
// identical files.
package io
