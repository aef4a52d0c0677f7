// Package target locates the program a bridge runs and the interpreter that
// runs it.
//
// Locate checks that the target program exists before anything is spawned:
//
//	path, err := target.Locate(log, "scripts/peer.py")
//	// err is *errors.TargetNotFoundError when the file is missing
//
// LookupInterpreter resolves the interpreter name through PATH (or accepts
// an explicit path) so spawn failures are reported before the process is
// started.
package target
