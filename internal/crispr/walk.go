package crispr

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Selector decides whether a group is visited from its bare number ("G12" -> "12").
type Selector func(number string) bool

// AllGroups selects every group.
func AllGroups(string) bool { return true }

// GroupSet selects the groups whose numbers are listed. A leading "G" on an
// entry is ignored, so "-g 3,G4" selects G3 and G4.
func GroupSet(ids []string) Selector {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		id = strings.TrimPrefix(strings.TrimPrefix(id, "G"), "g")
		if id != "" {
			set[id] = true
		}
	}

	return func(number string) bool {
		return set[number]
	}
}

// ForEachGroup calls visit on each selected group of the document, in document order.
//
// Errors from visit stop the walk and are returned, unless they're recoverable
// (see Recoverable): those are logged against the group and the walk
// continues with the next one.
func ForEachGroup(d *Document, sel Selector, visit func(*Group) error) error {
	if sel == nil {
		sel = AllGroups
	}

	for _, g := range d.Groups() {
		if !sel(g.Number()) {
			continue
		}

		if err := visit(g); err != nil {
			if !Recoverable(err) {
				return err
			}

			stderr.WithFields(logrus.Fields{
				"group": g.label(),
				"kind":  KindOf(err).String(),
			}).Warnf("skipping group: %v", err)
		}
	}

	return nil
}
