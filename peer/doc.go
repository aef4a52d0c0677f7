// Package peer is the child-side end of a line bridge.
//
// A Go program launched by a bridge uses a Communicator to read the wire
// messages arriving on its stdin and to reply on its stdout:
//
//	c := peer.New(
//	    peer.WithOnMessage(func(text string) error {
//	        return c.Send("Echo: " + text)
//	    }),
//	)
//	if err := c.Listen(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Stdout carries wire messages only. Diagnostics go to the slog logger,
// which writes nowhere unless one is configured with WithLogger.
package peer
