package crispr

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// element and attribute names of the .crispr format
const (
	tagRoot       = "crispr"
	tagLegacyRoot = "crass_assem"
	tagGroup      = "group"
	tagData       = "data"
	tagRepeats    = "drs"
	tagRepeat     = "dr"
	tagSpacers    = "spacers"
	tagSpacer     = "spacer"
	tagFlankers   = "flankers"
	tagFlanker    = "flanker"
	tagAssembly   = "assembly"
	tagContig     = "contig"
	tagCSpacer    = "cspacer"
	tagBSpacers   = "bspacers"
	tagFSpacers   = "fspacers"
	tagBFlankers  = "bflankers"
	tagFFlankers  = "fflankers"

	attrVersion   = "version"
	attrGroupID   = "gid"
	attrConsensus = "drseq"
	attrRepeatID  = "drid"
	attrSpacerID  = "spid"
	attrFlankerID = "flid"
	attrContigID  = "cid"
	attrSeq       = "seq"
	attrCoverage  = "cov"

	// version written on the root of new documents
	documentVersion = "1.1"
)

// NodeKind is the closed set of element kinds in a .crispr document.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindRoot
	KindGroup
	KindData
	KindRepeats
	KindSpacers
	KindFlankers
	KindRepeat
	KindSpacer
	KindFlanker
	KindAssembly
	KindContig
	KindContigSpacer
	KindLinks
)

var tagKinds = map[string]NodeKind{
	tagRoot:       KindRoot,
	tagLegacyRoot: KindRoot,
	tagGroup:      KindGroup,
	tagData:       KindData,
	tagRepeats:    KindRepeats,
	tagSpacers:    KindSpacers,
	tagFlankers:   KindFlankers,
	tagRepeat:     KindRepeat,
	tagSpacer:     KindSpacer,
	tagFlanker:    KindFlanker,
	tagAssembly:   KindAssembly,
	tagContig:     KindContig,
	tagCSpacer:    KindContigSpacer,
	tagBSpacers:   KindLinks,
	tagFSpacers:   KindLinks,
	tagBFlankers:  KindLinks,
	tagFFlankers:  KindLinks,
}

// NodeKindOf is the one discriminator used to decide what an element is.
func NodeKindOf(el *etree.Element) NodeKind {
	if el == nil {
		return KindUnknown
	}
	return tagKinds[el.Tag]
}

// attr returns an element's attribute and whether it was set.
func attr(el *etree.Element, key string) (string, bool) {
	a := el.SelectAttr(key)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// childrenOf returns the element children of el with the kind passed, in document order.
func childrenOf(el *etree.Element, kind NodeKind) (children []*etree.Element) {
	for _, c := range el.ChildElements() {
		if NodeKindOf(c) == kind {
			children = append(children, c)
		}
	}
	return
}

// firstOf returns the first element child of el with the kind passed or nil.
func firstOf(el *etree.Element, kind NodeKind) *etree.Element {
	for _, c := range el.ChildElements() {
		if NodeKindOf(c) == kind {
			return c
		}
	}
	return nil
}

// Document is a parsed .crispr file.
type Document struct {
	doc  *etree.Document
	root *etree.Element

	// path the document was read from, empty for new documents
	path string
}

// NewDocument returns an empty document with a versioned crispr root.
func NewDocument() *Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(tagRoot)
	root.CreateAttr(attrVersion, documentVersion)
	return &Document{doc: doc, root: root}
}

// Parse a .crispr document from its bytes.
func Parse(b []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, newError(StructuralError, "", "failed to parse xml: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, newError(StructuralError, "", "empty XML document")
	}
	if NodeKindOf(root) != KindRoot {
		return nil, newError(StructuralError, "", "unrecognized root element <%s>", root.Tag)
	}

	return &Document{doc: doc, root: root}, nil
}

// Read a .crispr document from the local filesystem.
func Read(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(InputError, path, "failed to read input file: %v", err)
	}

	d, err := Parse(b)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.Loc = path
		}
		return nil, err
	}
	d.path = path
	return d, nil
}

// Path is where the document was read from.
func (d *Document) Path() string {
	return d.path
}

// Groups returns the document's groups in document order.
func (d *Document) Groups() (groups []*Group) {
	for _, el := range childrenOf(d.root, KindGroup) {
		groups = append(groups, &Group{el: el})
	}
	return
}

// AddGroup appends a deep copy of g to the document and returns the copy.
func (d *Document) AddGroup(g *Group) *Group {
	el := g.el.Copy()
	d.root.AddChild(el)
	return &Group{el: el}
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	b, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize document")
	}
	return b, nil
}

// Write the document to path, creating its parent directory if needed.
func (d *Document) Write(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create output directory %s", dir)
		}
	}

	b, err := d.Bytes()
	if err != nil {
		return err
	}

	if err = os.WriteFile(path, b, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// indent re-indents new documents built from imported groups.
func (d *Document) indent() {
	d.doc.Indent(2)
}

// Group is a single CRISPR locus.
type Group struct {
	el *etree.Element
}

// ID is the group's gid, eg "G12".
func (g *Group) ID() (string, bool) {
	return attr(g.el, attrGroupID)
}

// SetID overwrites the group's gid.
func (g *Group) SetID(id string) {
	g.el.CreateAttr(attrGroupID, id)
}

// Number is the group's id without its leading category letter, "G12" -> "12".
func (g *Group) Number() string {
	id, _ := g.ID()
	if len(id) < 2 {
		return ""
	}
	return id[1:]
}

// Consensus is the group's consensus direct repeat.
func (g *Group) Consensus() (string, bool) {
	return attr(g.el, attrConsensus)
}

// Data returns the group's data section or nil.
func (g *Group) Data() *Data {
	if el := firstOf(g.el, KindData); el != nil {
		return &Data{el: el}
	}
	return nil
}

// Assembly returns the group's assembly section or nil.
func (g *Group) Assembly() *Assembly {
	if el := firstOf(g.el, KindAssembly); el != nil {
		return &Assembly{el: el}
	}
	return nil
}

// label is the group's id for messages.
func (g *Group) label() string {
	if id, ok := g.ID(); ok {
		return id
	}
	return "<group without gid>"
}

// Data holds a group's repeats, spacers and flankers.
type Data struct {
	el *etree.Element
}

// Repeats are the group's direct repeats.
func (d *Data) Repeats() []*Leaf {
	return d.leaves(KindRepeats, KindRepeat, CategoryRepeat)
}

// Spacers are the group's spacers.
func (d *Data) Spacers() []*Leaf {
	return d.leaves(KindSpacers, KindSpacer, CategorySpacer)
}

// Flankers are the group's flanking sequences.
func (d *Data) Flankers() []*Leaf {
	return d.leaves(KindFlankers, KindFlanker, CategoryFlanker)
}

// leaves gathers the leaves from every collection of the kind passed.
func (d *Data) leaves(collection, leaf NodeKind, c Category) (leaves []*Leaf) {
	for _, coll := range childrenOf(d.el, collection) {
		for _, el := range childrenOf(coll, leaf) {
			leaves = append(leaves, &Leaf{el: el, Category: c})
		}
	}
	return
}

// Leaf is a repeat, spacer or flanker in a group's data section.
type Leaf struct {
	el *etree.Element

	// Category is the kind of sequence: repeat, spacer or flanker
	Category Category
}

// ID is the leaf's drid, spid or flid.
func (l *Leaf) ID() (string, bool) {
	return attr(l.el, l.Category.idAttr())
}

// SetID overwrites the leaf's id attribute.
func (l *Leaf) SetID(id string) {
	l.el.CreateAttr(l.Category.idAttr(), id)
}

// Seq is the leaf's sequence.
func (l *Leaf) Seq() (string, bool) {
	return attr(l.el, attrSeq)
}

// Coverage is a spacer's coverage. ok is false if it wasn't set.
func (l *Leaf) Coverage() (cov float64, ok bool, err error) {
	raw, ok := attr(l.el, attrCoverage)
	if !ok {
		return 0, false, nil
	}

	if cov, err = parseFloat(raw); err != nil {
		id, _ := l.ID()
		return 0, false, newError(DataError, id, "unable to convert coverage %q to a number", raw)
	}
	return cov, true, nil
}

func parseFloat(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

// Assembly holds a group's contigs.
type Assembly struct {
	el *etree.Element
}

// Contigs in document order.
func (a *Assembly) Contigs() (contigs []*Contig) {
	for _, el := range childrenOf(a.el, KindContig) {
		contigs = append(contigs, &Contig{el: el})
	}
	return
}

// Contig is an assembled arrangement of spacers.
type Contig struct {
	el *etree.Element
}

// ID is the contig's cid.
func (c *Contig) ID() (string, bool) {
	return attr(c.el, attrContigID)
}

// SetID overwrites the contig's cid.
func (c *Contig) SetID(id string) {
	c.el.CreateAttr(attrContigID, id)
}

// Spacers are the contig's spacer references in document order.
func (c *Contig) Spacers() (spacers []*ContigSpacer) {
	for _, el := range childrenOf(c.el, KindContigSpacer) {
		spacers = append(spacers, &ContigSpacer{el: el})
	}
	return
}

// ContigSpacer is a reference from a contig to a spacer and its neighbors.
type ContigSpacer struct {
	el *etree.Element
}

// SpacerID is the id of the spacer referenced.
func (cs *ContigSpacer) SpacerID() (string, bool) {
	return attr(cs.el, attrSpacerID)
}

// SetSpacerID overwrites the referenced spacer id.
func (cs *ContigSpacer) SetSpacerID(id string) {
	cs.el.CreateAttr(attrSpacerID, id)
}

// Links returns every link of the contig spacer, collection by collection.
func (cs *ContigSpacer) Links() (links []*Link) {
	for _, coll := range childrenOf(cs.el, KindLinks) {
		target, forward := linkCollections[coll.Tag].target, linkCollections[coll.Tag].forward
		for _, el := range coll.ChildElements() {
			links = append(links, &Link{el: el, Target: target, Forward: forward})
		}
	}
	return
}

var linkCollections = map[string]struct {
	target  Category
	forward bool
}{
	tagBSpacers:  {CategorySpacer, false},
	tagFSpacers:  {CategorySpacer, true},
	tagBFlankers: {CategoryFlanker, false},
	tagFFlankers: {CategoryFlanker, true},
}

// Link is a bare reference from a contig spacer to a neighboring spacer or flanker.
type Link struct {
	el *etree.Element

	// Target is CategorySpacer or CategoryFlanker
	Target Category

	// Forward is false for the backward (bspacers, bflankers) collections
	Forward bool
}

// TargetID is the id of the spacer or flanker linked to.
func (l *Link) TargetID() (string, bool) {
	return attr(l.el, l.Target.idAttr())
}

// SetTargetID overwrites the linked spacer or flanker id.
func (l *Link) SetTargetID(id string) {
	l.el.CreateAttr(l.Target.idAttr(), id)
}

// RepeatID is the direct repeat between the two linked items, if recorded.
func (l *Link) RepeatID() (string, bool) {
	return attr(l.el, attrRepeatID)
}

// SetRepeatID overwrites the link's direct repeat id.
func (l *Link) SetRepeatID(id string) {
	l.el.CreateAttr(attrRepeatID, id)
}
