// File: pkg/combine/collect.go
package combine

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Collector turns user selections into cart entries. Folder selections
// are expanded shallowly or recursively; every candidate file passes the
// extension, exclusion, and content filters before it is staged.
type Collector struct {
	classifier Classifier
	extensions ExtensionSet
	rules      *RuleSet
	mode       ExpansionMode
	logger     *zap.Logger
}

// NewCollector wires a collector. Nil rules mean no exclusions; a nil
// logger is replaced with a no-op; an empty mode defaults to recursive.
func NewCollector(classifier Classifier, extensions ExtensionSet, rules *RuleSet, mode ExpansionMode, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rules == nil {
		rules = NewRuleSet(logger)
	}
	if mode == "" {
		mode = ExpandRecursive
	}
	return &Collector{
		classifier: classifier,
		extensions: extensions,
		rules:      rules,
		mode:       mode,
		logger:     logger,
	}
}

// AddSelections processes file and folder selections in order, staging
// the survivors in cart. Every candidate yields exactly one Decision; a
// selection that cannot be accessed yields a Decision instead of aborting
// the batch. Exclusion rules apply to folder expansion only, never to a
// file the user named explicitly.
func (c *Collector) AddSelections(cart *Cart, selections []string) []Decision {
	decisions := make([]Decision, 0, len(selections))
	for _, sel := range selections {
		p, err := NewPath(sel)
		if err != nil {
			decisions = append(decisions, Decision{Path: Path(sel), Disposition: SkippedUnreadable, Reason: err.Error()})
			continue
		}

		info, err := os.Stat(string(p))
		if err != nil {
			c.logger.Warn("selection cannot be accessed", zap.String("path", p.String()), zap.Error(err))
			decisions = append(decisions, Decision{Path: p, Disposition: SkippedUnreadable, Reason: err.Error()})
			continue
		}

		if info.IsDir() {
			decisions = append(decisions, c.expandDir(cart, p)...)
			continue
		}
		if !info.Mode().IsRegular() {
			decisions = append(decisions, Decision{Path: p, Disposition: SkippedFiltered, Reason: "not a regular file"})
			continue
		}
		decisions = append(decisions, c.addFile(cart, p))
	}
	return decisions
}

// RemoveSelections drops paths from the cart and returns how many were
// actually removed. Unknown or unresolvable paths are ignored.
func (c *Collector) RemoveSelections(cart *Cart, selections []string) int {
	removed := 0
	for _, sel := range selections {
		p, err := NewPath(sel)
		if err != nil {
			continue
		}
		if cart.Remove(p) {
			removed++
			c.logger.Debug("removed from selection", zap.String("path", p.String()))
		}
	}
	return removed
}

// addFile runs the filters on one regular file and stages it on success.
// Classification is recomputed on every add, so a file that changed on
// disk is judged by its current content.
func (c *Collector) addFile(cart *Cart, p Path) Decision {
	if !c.extensions.Match(p) {
		return Decision{Path: p, Disposition: SkippedFiltered, Reason: "extension not allowed"}
	}

	class, err := c.classifier.Classify(p)
	if err != nil {
		c.logger.Warn("cannot sample file", zap.String("path", p.String()), zap.Error(err))
		return Decision{Path: p, Disposition: SkippedUnreadable, Reason: err.Error()}
	}
	c.logger.Debug("classified file", zap.String("path", p.String()), zap.String("class", class.String()))
	if class == Binary {
		return Decision{Path: p, Disposition: SkippedFiltered, Reason: "binary content"}
	}

	if !cart.Add(p) {
		return Decision{Path: p, Disposition: SkippedDuplicate, Reason: "already selected"}
	}
	c.logger.Debug("added to selection", zap.String("path", p.String()))
	return Decision{Path: p, Disposition: Included}
}

func (c *Collector) expandDir(cart *Cart, dir Path) []Decision {
	c.logger.Debug("expanding folder",
		zap.String("dir", dir.String()),
		zap.String("mode", string(c.mode)))
	if c.mode == ExpandShallow {
		return c.expandShallow(cart, dir)
	}
	return c.expandRecursive(cart, dir)
}

// expandShallow stages the immediate children of dir. Subdirectories are
// not descended into.
func (c *Collector) expandShallow(cart *Cart, dir Path) []Decision {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		c.logger.Warn("cannot list folder", zap.String("dir", dir.String()), zap.Error(err))
		return []Decision{{Path: dir, Disposition: SkippedUnreadable, Reason: err.Error()}}
	}

	var decisions []Decision
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		child := Path(filepath.Join(string(dir), entry.Name()))
		if c.rules.Excluded(entry.Name(), false) {
			decisions = append(decisions, Decision{Path: child, Disposition: SkippedFiltered, Reason: "excluded by pattern"})
			continue
		}
		if d := c.resolveEntry(cart, child, entry.Type()); d != nil {
			decisions = append(decisions, *d)
		}
	}
	return decisions
}

// expandRecursive walks the whole subtree under dir in lexical order.
// Excluded directories are pruned without descending; a subtree that
// cannot be listed is reported and the walk continues with its siblings.
func (c *Collector) expandRecursive(cart *Cart, dir Path) []Decision {
	var decisions []Decision
	root := string(dir)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			c.logger.Warn("error during folder walk", zap.String("path", path), zap.Error(err))
			decisions = append(decisions, Decision{Path: Path(path), Disposition: SkippedUnreadable, Reason: err.Error()})
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = d.Name()
		}

		if d.IsDir() {
			if c.rules.Excluded(rel, true) {
				c.logger.Debug("pruning excluded folder", zap.String("dir", path))
				return filepath.SkipDir
			}
			return nil
		}
		if c.rules.Excluded(rel, false) {
			decisions = append(decisions, Decision{Path: Path(path), Disposition: SkippedFiltered, Reason: "excluded by pattern"})
			return nil
		}
		if dec := c.resolveEntry(cart, Path(path), d.Type()); dec != nil {
			decisions = append(decisions, *dec)
		}
		return nil
	})
	if err != nil {
		c.logger.Warn("folder walk aborted", zap.String("dir", root), zap.Error(err))
	}
	return decisions
}

// resolveEntry stages one directory entry. Symbolic links to regular
// files are followed; links to anything else are skipped quietly, since
// the walk does not descend through links.
func (c *Collector) resolveEntry(cart *Cart, p Path, mode fs.FileMode) *Decision {
	switch {
	case mode.IsRegular():
		d := c.addFile(cart, p)
		return &d
	case mode&fs.ModeSymlink != 0:
		info, err := os.Stat(string(p))
		if err != nil {
			return &Decision{Path: p, Disposition: SkippedUnreadable, Reason: err.Error()}
		}
		if !info.Mode().IsRegular() {
			c.logger.Debug("skipping symlink", zap.String("path", p.String()))
			return nil
		}
		d := c.addFile(cart, p)
		return &d
	default:
		return &Decision{Path: p, Disposition: SkippedFiltered, Reason: "not a regular file"}
	}
}
