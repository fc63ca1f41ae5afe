package crispr

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// MergeReport summarizes a merge.
type MergeReport struct {
	// Groups is the number of groups in the merged document
	Groups int

	// Collisions are group ids seen more than once (strict mode only)
	Collisions []*Error
}

// MergeCmd is for combining the groups of multiple .crispr files into one.
func MergeCmd(cmd *cobra.Command, args []string) error {
	flags, conf, err := parseMergeFlags(cmd, args)
	if err != nil {
		return err
	}

	merged, _, err := MergeFiles(flags.ins, flags.sanitise, conf.prefixes)
	if err != nil {
		return err
	}

	return merged.Write(flags.out)
}

// MergeFiles reads each file, in order, and merges their groups.
func MergeFiles(paths []string, sanitise bool, prefixes Prefixes) (*Document, *MergeReport, error) {
	if len(paths) < 2 {
		return nil, nil, newError(InputError, "", "you must provide at least two input files to merge")
	}

	var docs []*Document
	for _, path := range paths {
		d, err := Read(path)
		if err != nil {
			return nil, nil, err
		}
		docs = append(docs, d)
	}

	return Merge(docs, sanitise, prefixes)
}

// Merge copies the groups of each document into a new one, in argument order
// then document order.
//
// With sanitise every group gets a new id from a single counter shared by all
// the sources, so ids are unique by construction. Without it ids are kept as
// they are and a group whose id was already merged is reported as a collision
// and dropped: the first group with an id wins.
func Merge(docs []*Document, sanitise bool, prefixes Prefixes) (*Document, *MergeReport, error) {
	if len(docs) < 2 {
		return nil, nil, newError(InputError, "", "you must provide at least two input files to merge")
	}

	merged := NewDocument()
	report := &MergeReport{}
	r := NewRemapper(prefixes)
	seen := make(map[string]bool)

	for _, d := range docs {
		err := ForEachGroup(d, AllGroups, func(g *Group) error {
			if sanitise {
				copied := merged.AddGroup(g)
				old, _ := g.ID()
				copied.SetID(r.Assign(CategoryGroup, old))
				report.Groups++
				return nil
			}

			gid, _ := g.ID()
			if seen[gid] {
				e := newError(
					CollisionWarning,
					d.Path(),
					"group IDs conflict, %s seen more than once. Try using -s or 'crisprtools sanitise' to avoid this",
					gid,
				)
				report.Collisions = append(report.Collisions, e)
				return e
			}
			seen[gid] = true
			merged.AddGroup(g)
			report.Groups++
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
	}

	merged.indent()
	stderr.WithFields(logrus.Fields{
		"groups":     report.Groups,
		"collisions": len(report.Collisions),
	}).Debug("merged")

	return merged, report, nil
}
