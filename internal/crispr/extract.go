package crispr

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ExtractOptions are the sequences to extract and how to split them into files.
type ExtractOptions struct {
	Repeats  bool
	Spacers  bool
	Flankers bool

	// SplitGroup writes each group to its own file
	SplitGroup bool

	// SplitType writes each category to its own file
	SplitType bool

	// Width is the line width of the FASTA sequences
	Width int
}

// categories are the categories to extract, all of them if none were chosen.
func (o ExtractOptions) categories() []Category {
	if !o.Repeats && !o.Spacers && !o.Flankers {
		return []Category{CategoryRepeat, CategorySpacer, CategoryFlanker}
	}

	var cats []Category
	if o.Repeats {
		cats = append(cats, CategoryRepeat)
	}
	if o.Spacers {
		cats = append(cats, CategorySpacer)
	}
	if o.Flankers {
		cats = append(cats, CategoryFlanker)
	}
	return cats
}

// fileName is the name of the FASTA file a group's category goes into.
func (o ExtractOptions) fileName(gid string, c Category) string {
	switch {
	case o.SplitGroup && o.SplitType:
		return fmt.Sprintf("%s_%s.fa", gid, c)
	case o.SplitGroup:
		return gid + ".fa"
	case o.SplitType:
		return c.String() + ".fa"
	}
	return "crispr.fa"
}

// Sink opens the named output for writing.
type Sink func(name string) (io.WriteCloser, error)

// DirSink writes each output to a file in dir, creating dir if it doesn't exist.
func DirSink(dir string) Sink {
	return func(name string) (io.WriteCloser, error) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "failed to create output directory %s", dir)
		}

		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create %s", name)
		}
		return f, nil
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// WriterSink sends every output to w.
func WriterSink(w io.Writer) Sink {
	return func(string) (io.WriteCloser, error) {
		return nopCloser{w}, nil
	}
}

// ExtractCmd is for writing the sequences of a .crispr file to FASTA.
func ExtractCmd(cmd *cobra.Command, args []string) error {
	flags, conf, err := parseExtractFlags(cmd, args)
	if err != nil {
		return err
	}
	flags.opts.Width = conf.fastaWidth

	doc, err := Read(flags.in)
	if err != nil {
		return err
	}

	var sink Sink
	switch {
	case flags.dir != "":
		sink = DirSink(flags.dir)
	case flags.opts.SplitGroup || flags.opts.SplitType:
		sink = DirSink(".")
	default:
		sink = WriterSink(os.Stdout)
	}

	return Extract(doc, flags.groups, flags.opts, sink)
}

// record is one FASTA entry.
type record struct {
	id   string
	desc string
	seq  string
}

// Extract writes the repeats, spacers and/or flankers of each selected group
// as FASTA records named "<gid>_<id>". Spacers with a coverage have it in
// their description. An unreadable coverage is logged and left out.
func Extract(d *Document, sel Selector, opts ExtractOptions, sink Sink) error {
	var names []string // in the order first written to
	files := make(map[string][]record)

	err := ForEachGroup(d, sel, func(g *Group) error {
		data := g.Data()
		if data == nil {
			return newError(DataError, g.label(), "there is no data section to extract from")
		}

		gid := g.label()
		type entry struct {
			name string
			rec  record
		}
		var entries []entry // only kept if the whole group is extracted

		for _, c := range opts.categories() {
			var leaves []*Leaf
			switch c {
			case CategoryRepeat:
				leaves = data.Repeats()
			case CategorySpacer:
				leaves = data.Spacers()
			case CategoryFlanker:
				leaves = data.Flankers()
			}

			name := opts.fileName(gid, c)
			for _, l := range leaves {
				rec, err := leafRecord(gid, l)
				if err != nil {
					return err
				}
				entries = append(entries, entry{name, rec})
			}
		}

		for _, e := range entries {
			if _, ok := files[e.name]; !ok {
				names = append(names, e.name)
			}
			files[e.name] = append(files[e.name], e.rec)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := writeFasta(sink, name, files[name], opts.Width); err != nil {
			return err
		}
	}
	return nil
}

// leafRecord makes a FASTA record from a repeat, spacer or flanker.
func leafRecord(gid string, l *Leaf) (record, error) {
	id, _ := l.ID()
	seq, ok := l.Seq()
	if !ok {
		return record{}, newError(DataError, gid, "%s %s has no sequence", l.Category, id)
	}

	rec := record{id: gid + "_" + id, seq: seq}
	if l.Category == CategorySpacer {
		cov, ok, err := l.Coverage()
		switch {
		case err != nil:
			// the spacer is still written, just without its coverage
			stderr.WithFields(logrus.Fields{"group": gid, "id": id}).Warn(err)
		case ok:
			rec.desc = "cov=" + strconv.FormatFloat(cov, 'f', -1, 64)
		}
	}
	return rec, nil
}

// writeFasta writes the records to the sink's output of the name passed.
func writeFasta(sink Sink, name string, records []record, width int) (err error) {
	out, err := sink(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "failed to close %s", name)
		}
	}()

	if width < 1 {
		width = 60
	}
	w := fasta.NewWriter(out, width)
	for _, r := range records {
		s := linear.NewSeq(r.id, alphabet.BytesToLetters([]byte(r.seq)), alphabet.DNAredundant)
		s.Desc = r.desc
		if _, err = w.Write(s); err != nil {
			return errors.Wrapf(err, "failed to write %s to %s", r.id, name)
		}
	}
	return nil
}
