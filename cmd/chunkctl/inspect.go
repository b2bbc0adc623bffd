package main

import (
	"fmt"
	"strconv"

	"github.com/danmuck/chunkctl/internal/protocol/chunktype"
	"github.com/spf13/cobra"
)

type tagReport struct {
	Tag chunktype.Tag `json:"tag"`
	chunktype.Flags
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <tag>...",
		Short: "Parse text tags and report their flags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reports := make([]tagReport, 0, len(args))
			for _, raw := range args {
				t, err := a.parse(raw)
				if err != nil {
					return err
				}
				reports = append(reports, tagReport{Tag: t, Flags: t.Flags()})
			}
			return a.writeReports(reports)
		},
	}
}

func newBytesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bytes <b0> <b1> <b2> <b3>",
		Short: "Build a tag from four byte values (decimal or 0x hex)",
		Args:  cobra.ExactArgs(chunktype.Size),
		RunE: func(_ *cobra.Command, args []string) error {
			var b [chunktype.Size]byte
			for i, raw := range args {
				v, err := strconv.ParseUint(raw, 0, 8)
				if err != nil {
					return fmt.Errorf("byte %d: %q is not a value in 0-255", i, raw)
				}
				b[i] = byte(v)
			}
			t, err := chunktype.FromBytes(b)
			if err != nil {
				return err
			}
			return a.writeReports([]tagReport{{Tag: t, Flags: t.Flags()}})
		},
	}
}

func (a *app) writeReports(reports []tagReport) error {
	if a.wantJSON() {
		return a.printJSON(reports)
	}
	for _, r := range reports {
		a.printf(
			"%s critical=%t public=%t reserved_bit_valid=%t safe_to_copy=%t valid=%t\n",
			r.Tag,
			r.Critical,
			r.Public,
			r.ReservedBitValid,
			r.SafeToCopy,
			r.Valid,
		)
	}
	return nil
}
