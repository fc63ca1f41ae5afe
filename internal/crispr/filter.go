package crispr

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Thresholds are the minimum number of each element a group needs to be kept.
// Zero means no threshold.
type Thresholds struct {
	Spacers  int
	Repeats  int
	Flankers int
	Contigs  int
}

// data is whether any threshold needs the group's data section.
func (t Thresholds) data() bool {
	return t.Spacers > 0 || t.Repeats > 0 || t.Flankers > 0
}

// FilterCmd is for removing groups with too few spacers, repeats, flankers or contigs.
func FilterCmd(cmd *cobra.Command, args []string) error {
	flags, err := parseFilterFlags(cmd, args)
	if err != nil {
		return err
	}

	doc, err := Read(flags.in)
	if err != nil {
		return err
	}

	filtered, removed, err := Filter(doc, flags.thresholds)
	if err != nil {
		return err
	}

	stderr.WithFields(logrus.Fields{
		"file":    flags.out,
		"removed": len(removed),
	}).Debug("filtered")

	return filtered.Write(flags.out)
}

// Filter returns a new document with the groups that meet every threshold,
// and the ids of the groups that didn't.
//
// A group is removed when a threshold is strictly greater than its count: a
// group with 3 spacers survives "-s 3" but a group with 2 doesn't.
func Filter(d *Document, t Thresholds) (*Document, []string, error) {
	filtered := NewDocument()
	var removed []string

	err := ForEachGroup(d, AllGroups, func(g *Group) error {
		drop, err := belowThreshold(g, t)
		if err != nil {
			return err
		}

		if drop {
			removed = append(removed, g.label())
			return nil
		}

		filtered.AddGroup(g)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	filtered.indent()
	return filtered, removed, nil
}

// belowThreshold is whether the group fails any threshold.
func belowThreshold(g *Group, t Thresholds) (bool, error) {
	if t.data() {
		data := g.Data()
		if data == nil {
			return false, newError(StructuralError, g.label(), "there is no data section")
		}

		if t.Repeats > len(data.Repeats()) {
			return true, nil
		}
		if t.Spacers > len(data.Spacers()) {
			return true, nil
		}
		if t.Flankers > len(data.Flankers()) {
			return true, nil
		}
	}

	if t.Contigs > 0 {
		contigs := 0
		if asm := g.Assembly(); asm != nil {
			contigs = len(asm.Contigs())
		}
		if t.Contigs > contigs {
			return true, nil
		}
	}

	return false, nil
}
