package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wagiedev/linebridge"
)

var runCmd = &cobra.Command{
	Use:   "run <target>",
	Short: "Run a program and bridge stdin/stdout to it",
	Long: `Run starts the interpreter with the target program and forwards each
line read from stdin as one message. Decoded replies are printed to stdout
and the child's stderr is copied to stderr. When stdin ends the child's
input is closed and run exits with the child's exit code.

Examples:
  # Chat with a Python peer
  linebridge run scripts/peer.py -i python3

  # Pipe a batch of messages without traffic traces
  printf 'one\ntwo\n' | linebridge run scripts/peer.py -q`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

var runQuiet bool

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("interpreter", "i", "", "interpreter used to launch the target (default \"python\")")
	runCmd.Flags().StringP("dir", "d", "", "working directory of the child process")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "disable traffic tracing on stderr")

	_ = viper.BindPFlag(keyInterpreter, runCmd.Flags().Lookup("interpreter"))
	_ = viper.BindPFlag(keyDir, runCmd.Flags().Lookup("dir"))
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := LoadRunConfig()
	if runQuiet {
		cfg.Logging = false
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	// Traces and child stderr share the writer from different goroutines.
	errOut := &lockedWriter{w: cmd.ErrOrStderr()}

	b, err := linebridge.Start(ctx, args[0],
		linebridge.WithInterpreter(cfg.Interpreter),
		linebridge.WithDir(cfg.Dir),
		linebridge.WithLogging(cfg.Logging),
		linebridge.WithSink(linebridge.NewConsoleSink(errOut)),
		linebridge.WithOnData(func(text string) {
			_, _ = fmt.Fprintln(out, text)
		}),
		linebridge.WithOnError(func(text string) {
			_, _ = fmt.Fprint(errOut, text)
		}),
	)
	if err != nil {
		return err
	}

	go forwardInput(cmd, b)

	code, err := b.Wait(context.WithoutCancel(ctx))
	if err != nil {
		return err
	}

	if code != 0 {
		return &ExitError{Code: code}
	}

	return nil
}

// forwardInput sends every stdin line as one message, then half-closes the
// child's input.
func forwardInput(cmd *cobra.Command, b *linebridge.Bridge) {
	scanner := bufio.NewScanner(cmd.InOrStdin())

	for scanner.Scan() {
		// Failures are already reported to the sink.
		_ = b.Send(scanner.Text())
	}

	_ = b.Close()
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.w.Write(p)
}
