package main

import (
	"errors"

	"github.com/danmuck/chunkctl/internal/protocol/chunkpolicy"
	"github.com/danmuck/chunkctl/internal/protocol/chunktype"
	"github.com/spf13/cobra"
)

type decision struct {
	Tag    chunktype.Tag `json:"tag"`
	Decode string        `json:"decode"`
	Reason string        `json:"reason,omitempty"`
	Copy   string        `json:"copy"`
}

func newDecideCmd(a *app) *cobra.Command {
	var criticalModified bool
	cmd := &cobra.Command{
		Use:   "decide <tag>...",
		Short: "Report how a decoder and an editor handle each chunk type",
		Long:  `Prints the decode action (process, skip or abort) and the copy action for each tag. Exits non-zero when any tag aborts decoding.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			policy, err := a.policy.Policy()
			if err != nil {
				return err
			}
			decisions := make([]decision, 0, len(args))
			var firstAbort error
			for _, raw := range args {
				t, err := a.parse(raw)
				if err != nil {
					return err
				}
				d := decision{Tag: t, Copy: policy.CopyAction(t, criticalModified).String()}
				action, err := policy.Decide(t)
				var de chunkpolicy.DecisionError
				switch {
				case errors.As(err, &de):
					d.Decode = "abort"
					d.Reason = de.Reason
					if firstAbort == nil {
						firstAbort = err
					}
				case err != nil:
					return err
				default:
					d.Decode = action.String()
				}
				decisions = append(decisions, d)
			}
			if err := a.writeDecisions(decisions); err != nil {
				return err
			}
			return firstAbort
		},
	}
	cmd.Flags().BoolVar(&criticalModified, "critical-modified", false, "the edit changed a critical chunk")
	return cmd
}

func (a *app) writeDecisions(decisions []decision) error {
	if a.wantJSON() {
		return a.printJSON(decisions)
	}
	for _, d := range decisions {
		if d.Reason != "" {
			a.printf("%s decode=%s (%s) copy=%s\n", d.Tag, d.Decode, d.Reason, d.Copy)
			continue
		}
		a.printf("%s decode=%s copy=%s\n", d.Tag, d.Decode, d.Copy)
	}
	return nil
}
