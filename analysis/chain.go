package analysis

import "github.com/zeu5/mab-sim/core"

// ChainComparator hands the same datasets to several comparators in order
type ChainComparator struct {
	comparators []core.Comparator
}

var _ core.Comparator = &ChainComparator{}

func Chain(comparators ...core.Comparator) *ChainComparator {
	out := &ChainComparator{}
	for _, c := range comparators {
		if chain, ok := c.(*ChainComparator); ok {
			out.comparators = append(out.comparators, chain.comparators...)
			continue
		}
		out.comparators = append(out.comparators, c)
	}
	return out
}

func (c *ChainComparator) Compare(names []string, datasets []core.DataSet) error {
	for _, cmp := range c.comparators {
		if err := cmp.Compare(names, datasets); err != nil {
			return err
		}
	}
	return nil
}
