package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wagiedev/linebridge"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [text...]",
	Short: "Print the wire form of each argument (or each stdin line)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return eachInput(cmd, args, func(w io.Writer, text string) error {
			_, err := fmt.Fprintln(w, linebridge.Encode(text))

			return err
		})
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode [wire...]",
	Short: "Print the text of each wire message argument (or each stdin line)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return eachInput(cmd, args, func(w io.Writer, wire string) error {
			text, err := linebridge.Decode(wire)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(w, text)

			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
}

// eachInput applies fn to every argument, or to every stdin line when there
// are no arguments.
func eachInput(cmd *cobra.Command, args []string, fn func(io.Writer, string) error) error {
	out := cmd.OutOrStdout()

	if len(args) > 0 {
		for _, arg := range args {
			if err := fn(out, arg); err != nil {
				return err
			}
		}

		return nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if err := fn(out, scanner.Text()); err != nil {
			return err
		}
	}

	return scanner.Err()
}
