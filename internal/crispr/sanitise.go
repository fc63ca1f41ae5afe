package crispr

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// SanitiseOptions are the categories of id to renumber.
type SanitiseOptions struct {
	Groups   bool
	Repeats  bool
	Spacers  bool
	Flankers bool
	Contigs  bool
}

// data is whether anything in the data section gets renumbered.
func (o SanitiseOptions) data() bool {
	return o.Repeats || o.Spacers || o.Flankers
}

// assembly is whether the assembly needs a pass. Contigs reference spacers,
// flankers and repeats so it does whenever any of those change.
func (o SanitiseOptions) assembly() bool {
	return o.Contigs || o.data()
}

// SanitiseReport summarizes a sanitise pass.
type SanitiseReport struct {
	// Groups is the number of groups visited
	Groups int

	// Dangling are the references that couldn't be resolved and were left as is
	Dangling []*Error
}

// SanitiseCmd is for renumbering the ids of a .crispr file.
func SanitiseCmd(cmd *cobra.Command, args []string) error {
	flags, conf, err := parseSanitiseFlags(cmd, args)
	if err != nil {
		return err
	}

	doc, err := Read(flags.in)
	if err != nil {
		return err
	}

	report, err := Sanitise(doc, flags.opts, conf.prefixes)
	if err != nil {
		return err
	}

	if err = doc.Write(flags.out); err != nil {
		return err
	}

	stderr.WithFields(logrus.Fields{
		"file":     flags.out,
		"groups":   report.Groups,
		"dangling": len(report.Dangling),
	}).Debug("sanitised")
	return nil
}

// Sanitise renumbers the ids of every group in the document, in place.
//
// For each group the data section is renumbered first (repeats, spacers,
// flankers, each in document order) then the assembly: contig ids, the
// spacer each contig spacer points to and the spacers, flankers and repeats
// of its links. References that don't resolve are reported and left alone.
func Sanitise(d *Document, opts SanitiseOptions, prefixes Prefixes) (*SanitiseReport, error) {
	report := &SanitiseReport{}
	r := NewRemapper(prefixes)

	err := ForEachGroup(d, AllGroups, func(g *Group) error {
		r.Reset()
		report.Groups++
		return sanitiseGroup(g, opts, r, report)
	})
	if err != nil {
		return report, err
	}

	return report, nil
}

// sanitiseGroup rewrites one group's subtree.
func sanitiseGroup(g *Group, opts SanitiseOptions, r *Remapper, report *SanitiseReport) error {
	if opts.Groups {
		old, _ := g.ID()
		g.SetID(r.Assign(CategoryGroup, old))
	}

	if opts.data() {
		data := g.Data()
		if data == nil {
			return newError(StructuralError, g.label(), "there is no data section to sanitise")
		}

		if opts.Repeats {
			renumberLeaves(g, data.Repeats(), r)
		}
		if opts.Spacers {
			renumberLeaves(g, data.Spacers(), r)
		}
		if opts.Flankers {
			renumberLeaves(g, data.Flankers(), r)
		}
	}

	if !opts.assembly() {
		return nil
	}

	asm := g.Assembly()
	if asm == nil {
		return nil
	}

	for _, c := range asm.Contigs() {
		if opts.Contigs {
			old, _ := c.ID()
			c.SetID(r.Assign(CategoryContig, old))
		}

		for _, cs := range c.Spacers() {
			if opts.Spacers {
				rewrite(g, r, report, CategorySpacer, cs.SpacerID, cs.SetSpacerID)
			}

			for _, l := range cs.Links() {
				if (l.Target == CategorySpacer && opts.Spacers) || (l.Target == CategoryFlanker && opts.Flankers) {
					rewrite(g, r, report, l.Target, l.TargetID, l.SetTargetID)
				}
				if opts.Repeats {
					rewrite(g, r, report, CategoryRepeat, l.RepeatID, l.SetRepeatID)
				}
			}
		}
	}

	return nil
}

// renumberLeaves gives each leaf the next id of its category.
func renumberLeaves(g *Group, leaves []*Leaf, r *Remapper) {
	for _, l := range leaves {
		old, ok := l.ID()
		newID := r.Next(l.Category)
		if ok {
			r.Remember(l.Category, old, newID)
		} else {
			stderr.WithFields(logrus.Fields{
				"group":    g.label(),
				"category": l.Category.String(),
			}).Warnf("element without an id given %s", newID)
		}
		l.SetID(newID)
	}
}

// rewrite resolves a reference through the remapper and overwrites it. Unset
// references are skipped, unresolved ones are reported and left unmodified.
func rewrite(
	g *Group,
	r *Remapper,
	report *SanitiseReport,
	c Category,
	get func() (string, bool),
	set func(string),
) {
	old, ok := get()
	if !ok {
		return
	}

	newID, err := r.Resolve(c, old)
	if err != nil {
		e := err.(*Error)
		e.Loc = g.label()
		report.Dangling = append(report.Dangling, e)
		stderr.WithFields(logrus.Fields{
			"group":    g.label(),
			"category": c.String(),
			"id":       old,
		}).Warn(e.Msg)
		return
	}

	set(newID)
}
