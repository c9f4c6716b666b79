package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/danmuck/midi2/internal/config"
	"github.com/danmuck/midi2/internal/observability"
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/bytestream"
	"github.com/danmuck/midi2/protocol/ump"
)

func newConvertCmd(opts *options) *cobra.Command {
	var to string
	var group uint8
	cmd := &cobra.Command{
		Use:   "convert --to ump|bytes HEX...",
		Short: "Translate messages between the MIDI 1.0 byte stream and UMP",
		Long: `Translate MIDI 1.0 channel voice, system common and sysex7 messages
between the byte stream and UMP. --to ump reads bytes, --to bytes reads UMP
words. Each converted message is printed on its own line.`,
		Example: `umpconv convert --to ump --group 3 D609
umpconv convert --to bytes 20D60900`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("group") {
				group = opts.cfg.Group
			}
			if group > 15 {
				return errors.Errorf("group %d out of range 0-15", group)
			}
			var lines []string
			var err error
			switch to {
			case config.InputUmp:
				lines, err = toUmp(args, group)
			case config.InputBytes:
				lines, err = toBytes(args)
			default:
				return errors.Errorf("--to must be %q or %q, got %q", config.InputUmp, config.InputBytes, to)
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&to, "to", config.InputUmp, "target form: ump or bytes")
	cmd.Flags().Uint8Var(&group, "group", 0, "UMP group for byte-stream input (defaults to the config group)")
	return cmd
}

// toUmp converts every message it can and returns the first error after
// converting the rest.
func toUmp(args []string, group uint8) ([]string, error) {
	data, err := parseBytes(args)
	if err != nil {
		return nil, err
	}
	var lines []string
	var first error
	for rest := data; len(rest) > 0; {
		m, next, err := bytestream.Next(rest)
		rest = next
		if err == nil {
			var out ump.Message
			out, err = bytestream.ToUmp(m, group, buffer.NewGrowable[uint32]())
			if err == nil {
				lines = append(lines, formatWords(out.Data()))
			}
		}
		observability.RecordConverted(config.InputBytes, config.InputUmp, err == nil)
		if err != nil {
			log.Warn().Err(err).Msg("convert to ump failed")
			if first == nil {
				first = errors.Wrap(err, "convert to ump")
			}
		}
	}
	return lines, first
}

func toBytes(args []string) ([]string, error) {
	words, err := parseWords(args)
	if err != nil {
		return nil, err
	}
	var lines []string
	var first error
	for rest := words; len(rest) > 0; {
		m, next, err := ump.Next(rest)
		rest = next
		if err == nil {
			var out bytestream.Message
			out, err = bytestream.ToBytes(m, buffer.NewGrowable[uint8]())
			if err == nil {
				lines = append(lines, formatBytes(out.Data()))
			}
		}
		observability.RecordConverted(config.InputUmp, config.InputBytes, err == nil)
		if err != nil {
			log.Warn().Err(err).Msg("convert to bytes failed")
			if first == nil {
				first = errors.Wrap(err, "convert to bytes")
			}
		}
	}
	return lines, first
}
