package analysis

import (
	"path"

	"github.com/gosimple/slug"

	"github.com/zeu5/mab-sim/core"
	"github.com/zeu5/mab-sim/util"
)

// JSONComparator saves the datasets of all experiments, keyed by experiment
// name, to a single file.
type JSONComparator struct {
	savePath string
}

var _ core.Comparator = &JSONComparator{}

func NewJSONComparator(saveDir, analysis string) *JSONComparator {
	return &JSONComparator{
		savePath: path.Join(saveDir, slug.Make(analysis)+".json"),
	}
}

func (j *JSONComparator) Path() string {
	return j.savePath
}

func (j *JSONComparator) Compare(experimentNames []string, datasets []core.DataSet) error {
	out := make(map[string]core.DataSet)
	for i, name := range experimentNames {
		out[name] = datasets[i]
	}
	return util.SaveJson(j.savePath, out)
}
