// Package linebridge runs an interpreter as a child process and exchanges
// newline-delimited text messages with it over stdin and stdout.
//
// Every message travels as the decimal character codes of the text joined
// with commas and ended by a newline, so "hi" is written as "104,105\n".
// Output from the child is reassembled into lines, decoded, and delivered to
// callbacks; stderr output and the process exit are delivered too.
//
// # Basic Usage
//
//	b, err := linebridge.New("scripts/peer.py",
//	    linebridge.WithInterpreter("python3"),
//	    linebridge.WithOnData(func(text string) {
//	        fmt.Println("child says:", text)
//	    }),
//	    linebridge.WithOnClose(func(code int) {
//	        fmt.Println("child exited with", code)
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	b.Send("Hello, World!")
//	b.Close() // half-close stdin; the child exits on its own
//
//	code, _ := b.Wait(ctx)
//
// # Reconfiguration
//
// Configure swaps the whole callback set at once. Callbacks that are not
// passed are removed, so the latest call is the only one in effect:
//
//	b.Configure(linebridge.WithOnData(handleReply), linebridge.WithLogging(false))
//
// # Diagnostics
//
// Traffic is traced to a diagnostic sink (a colored console on stderr by
// default) unless WithLogging(false) is given. Write failures, malformed
// inbound messages and read errors are always reported to the sink. For
// structured debug output, use WithLogger:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	b, err := linebridge.New(path, linebridge.WithLogger(logger))
//
// # Error Handling
//
//	b, err := linebridge.New(path)
//	if notFound, ok := errors.AsType[*linebridge.TargetNotFoundError](err); ok {
//	    log.Fatalf("no such program: %s", notFound.Path)
//	}
//
// Send never panics; it returns a *WriteError (also reported to the sink)
// when the child's stdin is closed or broken.
//
// The child side of the protocol for Go programs lives in package peer.
package linebridge
