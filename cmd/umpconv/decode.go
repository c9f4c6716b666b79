package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
	"gitlab.com/gomidi/midi/v2"

	"github.com/danmuck/midi2/internal/config"
	"github.com/danmuck/midi2/internal/observability"
	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/bytestream"
	"github.com/danmuck/midi2/protocol/inspect"
	"github.com/danmuck/midi2/protocol/ump"
)

func newDecodeCmd(opts *options) *cobra.Command {
	var input, output, file string
	cmd := &cobra.Command{
		Use:   "decode [--file PATH | HEX...]",
		Short: "Decode a UMP word stream or a MIDI 1.0 byte stream",
		Example: `umpconv decode 2AB73637 0x3016_0001 02030405 30340607 08090000
umpconv decode --input bytes D609 F8
umpconv decode --file capture.ump`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (file == "") == (len(args) == 0) {
				return errors.New("give either --file or hex arguments")
			}
			cfg := opts.cfg
			if cmd.Flags().Changed("input") {
				cfg.Input = input
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			var records []entry
			var rejected int
			var err error
			if file != "" {
				records, rejected, err = decodeFile(cfg.Input, file)
			} else {
				records, rejected, err = decode(cfg.Input, args)
			}
			if err != nil {
				return err
			}
			if err := writeRecords(cmd.OutOrStdout(), cfg.Output, records); err != nil {
				return err
			}
			if rejected > 0 {
				return errors.Errorf("%d input(s) rejected", rejected)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", config.InputUmp, "input form: ump or bytes")
	cmd.Flags().StringVar(&output, "output", config.OutputText, "output encoding: text, json or msgpack")
	cmd.Flags().StringVar(&file, "file", "", "read raw binary input from PATH (UMP words big endian)")
	return cmd
}

// entry is one decoded message. Midi carries the gomidi rendering of
// byte-stream messages.
type entry struct {
	inspect.Record `msgpack:",inline"`
	Midi           string `json:"midi,omitempty" msgpack:"midi,omitempty"`
}

// collector accumulates decoded records and counts rejections.
type collector struct {
	input    string
	records  []entry
	rejected int
}

func (c *collector) reject(err error) {
	c.rejected++
	observability.RecordRejected(c.input, protocol.Reason(err))
	log.Warn().Err(err).Str("input", c.input).Msg("skipping rejected input")
}

func (c *collector) accept(r inspect.Record, midi string) {
	observability.RecordDecoded(c.input, r.Category, r.Kind)
	c.records = append(c.records, entry{Record: r, Midi: midi})
}

func (c *collector) bytes(data []byte) {
	for rest := data; len(rest) > 0; {
		m, next, err := bytestream.Next(rest)
		rest = next
		if err != nil {
			c.reject(err)
			continue
		}
		c.accept(inspect.Describe[uint8](m), midi.Message(m.Data()).String())
	}
}

func decode(input string, args []string) ([]entry, int, error) {
	c := &collector{input: input}
	if input == config.InputBytes {
		data, err := parseBytes(args)
		if err != nil {
			return nil, 0, err
		}
		c.bytes(data)
		return c.records, c.rejected, nil
	}

	words, err := parseWords(args)
	if err != nil {
		return nil, 0, err
	}
	for rest := words; len(rest) > 0; {
		m, next, err := ump.Next(rest)
		rest = next
		if err != nil {
			c.reject(err)
			continue
		}
		c.accept(inspect.Describe[uint32](m), "")
	}
	return c.records, c.rejected, nil
}

func decodeFile(input, path string) ([]entry, int, error) {
	c := &collector{input: input}
	if input == config.InputBytes {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "read %s", path)
		}
		c.bytes(data)
		return c.records, c.rejected, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	r := ump.NewReader(bufio.NewReader(f), ump.DefaultLimits())
	for {
		m, err := r.ReadMessage()
		switch {
		case err == nil:
			c.accept(inspect.Describe[uint32](m), "")
		case errors.Is(err, io.EOF):
			return c.records, c.rejected, nil
		case errors.Is(err, protocol.ErrInvalidData):
			c.reject(err)
		default:
			return c.records, c.rejected, errors.Wrapf(err, "read %s", path)
		}
	}
}

func writeRecords(w io.Writer, output string, records []entry) error {
	switch output {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(records), "encode json")
	case config.OutputMsgpack:
		return errors.Wrap(msgpack.NewEncoder(w).Encode(records), "encode msgpack")
	default:
		for _, r := range records {
			line := r.String()
			if r.Midi != "" {
				line += "  # " + r.Midi
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
}
